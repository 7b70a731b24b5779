package report

import (
	"fmt"
	"time"

	reportsvc "github.com/amirasaad/bankoffice/pkg/service/report"
	"github.com/amirasaad/bankoffice/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	contentTypePDF   = "application/pdf"
	contentTypeOctet = "application/octet-stream"
)

// Routes registers the report download endpoints under /api/v1/reports. now
// stamps the attachment names.
func Routes(app *fiber.App, reportSvc *reportsvc.Service, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	reports := app.Group("/api/v1/reports")
	reports.Get("/pdf/client/:dni/account-details", AccountDetails(reportSvc, now))
	reports.Get("/pdf/client/:dni/transactions", Transactions(reportSvc, now))
	reports.Get("/excel/client/:dni/transactions/filterByDateRange", TransactionsByDateRange(reportSvc))
}

func sendAttachment(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(body)
}

// AccountDetails returns a handler rendering a client's account as PDF.
// @Summary Account details PDF
// @Tags reports
// @Produce application/pdf
// @Param dni path string true "Client DNI"
// @Success 200 {file} file "AccountDetails_<dni>_<date>.pdf"
// @Failure 404 {object} common.ProblemDetails "Client or account not found"
// @Failure 500 {object} common.ProblemDetails "Rendering failed"
// @Router /api/v1/reports/pdf/client/{dni}/account-details [get]
func AccountDetails(reportSvc *reportsvc.Service, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		body, err := reportSvc.AccountDetails(c.UserContext(), dni)
		if err != nil {
			log.Errorf("Failed to render account details for %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to generate report", err)
		}
		name := fmt.Sprintf("AccountDetails_%s_%s.pdf", dni, now().Format(common.DateLayout))
		return sendAttachment(c, name, contentTypePDF, body)
	}
}

// Transactions returns a handler rendering a client's recent history as PDF.
// @Summary Account transactions PDF
// @Tags reports
// @Produce application/pdf
// @Param dni path string true "Client DNI"
// @Success 200 {file} file "AccountTransactions_<dni>_<date>.pdf"
// @Failure 404 {object} common.ProblemDetails "Client or account not found"
// @Failure 409 {object} common.ProblemDetails "Account not active"
// @Router /api/v1/reports/pdf/client/{dni}/transactions [get]
func Transactions(reportSvc *reportsvc.Service, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		body, err := reportSvc.Transactions(c.UserContext(), dni)
		if err != nil {
			log.Errorf("Failed to render transactions for %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to generate report", err)
		}
		name := fmt.Sprintf("AccountTransactions_%s_%s.pdf", dni, now().Format(common.DateLayout))
		return sendAttachment(c, name, contentTypePDF, body)
	}
}

// TransactionsByDateRange returns a handler exporting a client's history
// between two days as an XLSX workbook.
// @Summary Filtered transactions spreadsheet
// @Tags reports
// @Produce application/octet-stream
// @Param dni path string true "Client DNI"
// @Param fromDate query string true "First day, YYYY-MM-DD"
// @Param toDate query string true "Last day, YYYY-MM-DD"
// @Success 200 {file} file "AccountTransactions_Filtered_<dni>_FromDate_<from>_ToDate_<to>.xlsx"
// @Failure 400 {object} common.ProblemDetails "Invalid dates"
// @Failure 404 {object} common.ProblemDetails "Client or account not found"
// @Router /api/v1/reports/excel/client/{dni}/transactions/filterByDateRange [get]
func TransactionsByDateRange(reportSvc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dni := c.Params("dni")
		from, to, err := common.ParseDateRange(c.Query("fromDate"), c.Query("toDate"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid date range", err)
		}
		body, err := reportSvc.TransactionsByDateRange(c.UserContext(), dni, from, to)
		if err != nil {
			log.Errorf("Failed to export transactions for %s: %v", dni, err)
			return common.ProblemDetailsJSON(c, "Failed to generate report", err)
		}
		name := fmt.Sprintf("AccountTransactions_Filtered_%s_FromDate_%s_ToDate_%s.xlsx",
			dni, from.Format(common.DateLayout), to.Format(common.DateLayout))
		return sendAttachment(c, name, contentTypeOctet, body)
	}
}

package report_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/amirasaad/bankoffice/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"github.com/tealeg/xlsx"
)

const reportsPath = "/api/v1/reports"

type ReportTestSuite struct {
	suite.Suite
	app    *testutils.TestApp
	number string
	today  string
}

func (s *ReportTestSuite) SetupTest() {
	s.app = testutils.NewTestApp(s.T())
	s.number = s.app.RegisterClient(s.T(), "111", "ana@example.com")
	s.today = time.Now().UTC().Format(time.DateOnly)
}

func TestReportTestSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (s *ReportTestSuite) read(resp *http.Response) []byte {
	defer resp.Body.Close() //nolint: errcheck
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return body
}

func (s *ReportTestSuite) TestAccountDetailsPDF() {
	resp := s.app.Do(fiber.MethodGet, reportsPath+"/pdf/client/111/account-details", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get(fiber.HeaderContentType))
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "AccountDetails_111_")
	s.True(bytes.HasPrefix(s.read(resp), []byte("%PDF-")))

	s.Run("Unknown client", func() {
		resp := s.app.Do(fiber.MethodGet, reportsPath+"/pdf/client/999/account-details", "")
		s.Require().Equal(fiber.StatusNotFound, resp.StatusCode)
		testutils.DecodeProblem(s.T(), resp)
	})
}

func (s *ReportTestSuite) TestTransactionsPDF() {
	s.app.Recharge(s.T(), s.number, "40")

	resp := s.app.Do(fiber.MethodGet, reportsPath+"/pdf/client/111/transactions", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "AccountTransactions_111_")
	s.True(bytes.HasPrefix(s.read(resp), []byte("%PDF-")))

	s.Run("Inactive account", func() {
		resp := s.app.Do(fiber.MethodPut, "/api/v1/accounts/account/"+s.number+"/status/blocked", "")
		resp.Body.Close() //nolint: errcheck
		resp = s.app.Do(fiber.MethodGet, reportsPath+"/pdf/client/111/transactions", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusConflict, resp.StatusCode)
	})
}

func (s *ReportTestSuite) TestTransactionsXLSX() {
	s.app.Recharge(s.T(), s.number, "40")
	s.app.Recharge(s.T(), s.number, "2.5")

	path := reportsPath + "/excel/client/111/transactions/filterByDateRange?fromDate=" + s.today + "&toDate=" + s.today
	resp := s.app.Do(fiber.MethodGet, path, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("application/octet-stream", resp.Header.Get(fiber.HeaderContentType))
	s.Contains(resp.Header.Get(fiber.HeaderContentDisposition),
		"AccountTransactions_Filtered_111_FromDate_"+s.today+"_ToDate_"+s.today+".xlsx")

	book, err := xlsx.OpenBinary(s.read(resp))
	s.Require().NoError(err)
	s.Require().Len(book.Sheets, 1)
	// header row plus one row per transaction
	s.Len(book.Sheets[0].Rows, 3)

	s.Run("Inverted range", func() {
		resp := s.app.Do(fiber.MethodGet, reportsPath+
			"/excel/client/111/transactions/filterByDateRange?fromDate=2024-02-02&toDate=2024-02-01", "")
		s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)
		testutils.DecodeProblem(s.T(), resp)
	})

	s.Run("Missing dates", func() {
		resp := s.app.Do(fiber.MethodGet, reportsPath+"/excel/client/111/transactions/filterByDateRange", "")
		defer resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}

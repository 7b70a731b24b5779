// Package report renders client and ledger data as PDF and XLSX documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
	"github.com/jung-kurt/gofpdf"
)

// MaxPDFTransactions caps the rows of the transactions PDF.
const MaxPDFTransactions = 20

// NoTransactionsPDF is printed when the account has no entries.
const NoTransactionsPDF = "No transactions available for this account."

const (
	bankHeader = "BANK OFFICE - Client Services"
	bankFooter = "Generated automatically. Balances are shown as of the generation date."
)

type rgb struct{ r, g, b int }

var (
	black    = rgb{0, 0, 0}
	darkGray = rgb{64, 64, 64}
	red      = rgb{255, 0, 0}
	green    = rgb{0, 128, 0}
	navy     = rgb{0, 0, 128}
	headerBg = rgb{230, 161, 255}
)

// TypeColor returns the text color of a transaction type in the PDF.
func TypeColor(t account.Type) (r, g, b int) {
	c := black
	switch t {
	case account.TypeRecharge:
		c = green
	case account.TypeWithdrawal:
		c = red
	case account.TypeTransfer:
		c = navy
	}
	return c.r, c.g, c.b
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(darkGray.r, darkGray.g, darkGray.b)
		pdf.SetFillColor(headerBg.r, headerBg.g, headerBg.b)
		pdf.CellFormat(0, 8, bankHeader, "", 1, "C", true, 0, "")
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(darkGray.r, darkGray.g, darkGray.b)
		pdf.CellFormat(0, 10, bankFooter, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return pdf
}

func title(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(black.r, black.g, black.b)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
}

// field prints "label: value". Highlighted values are printed in red.
func field(pdf *gofpdf.Fpdf, label, value string, highlight bool) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(darkGray.r, darkGray.g, darkGray.b)
	pdf.CellFormat(50, 7, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	c := black
	if highlight {
		c = red
	}
	pdf.SetTextColor(c.r, c.g, c.b)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func clientSection(pdf *gofpdf.Fpdf, c *client.Client) {
	title(pdf, "Client Details")
	field(pdf, "DNI", c.Dni, false)
	field(pdf, "Name", c.Name, false)
	field(pdf, "Email", c.Email, false)
	field(pdf, "Address", c.Address, false)
	field(pdf, "Client Status", c.Status.String(), !c.IsActive())
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AccountDetailsPDF renders the client and account summary.
func AccountDetailsPDF(c *client.Client) ([]byte, error) {
	if c.Account == nil {
		return nil, fmt.Errorf("client %s has no account", c.Dni)
	}
	pdf := newDocument()
	clientSection(pdf, c)

	acc := c.Account
	title(pdf, "Account Details")
	field(pdf, "Account Number", acc.Number, false)
	field(pdf, "Account Status", acc.Status.String(), !acc.IsActive())
	field(pdf, "Account Opened Date", acc.OpenedOn.Format("2006-01-02"), false)
	if acc.ClosedOn != nil {
		field(pdf, "Account Closing Date", acc.ClosedOn.Format("2006-01-02"), false)
	}
	field(pdf, "Withdrawal Limit", "$"+acc.WithdrawalLimit.StringFixed(2), false)
	field(pdf, "Balance", "$"+acc.Balance.StringFixed(2), false)
	return output(pdf)
}

// TransactionsPDF renders the client details followed by the most recent
// MaxPDFTransactions entries of txs, in chronological order.
func TransactionsPDF(c *client.Client, txs []*account.Transaction) ([]byte, error) {
	pdf := newDocument()
	clientSection(pdf, c)
	title(pdf, "Account Transactions")

	if len(txs) == 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(red.r, red.g, red.b)
		pdf.CellFormat(0, 10, NoTransactionsPDF, "", 1, "C", false, 0, "")
		return output(pdf)
	}
	if len(txs) > MaxPDFTransactions {
		txs = txs[len(txs)-MaxPDFTransactions:]
	}

	widths := []float64{50, 45, 40, 45}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(black.r, black.g, black.b)
	for i, h := range []string{"Transaction Type", "Date", "Time", "Amount"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, tx := range txs {
		pdf.SetTextColor(TypeColor(tx.Type))
		pdf.CellFormat(widths[0], 7, tx.Type.String(), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(black.r, black.g, black.b)
		pdf.CellFormat(widths[1], 7, tx.Date(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, tx.Time(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, "$"+tx.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	return output(pdf)
}

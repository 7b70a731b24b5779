package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/tealeg/xlsx"
)

const (
	// SheetName is the name of the only sheet of the transactions workbook.
	SheetName = "Transactions Info"
	// NoTransactionsXLSX fills the row after the header when there is no data.
	NoTransactionsXLSX = "No transactions found"
)

// XLSXHeader is the header row of the transactions workbook.
var XLSXHeader = []string{"#", "Transaction Type", "Date", "Time", "Amount"}

func headerStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	style.Font = *xlsx.NewFont(12, "Calibri")
	style.Font.Bold = true
	style.Font.Color = "FFFFFFFF"
	style.Fill = *xlsx.NewFill("solid", "FF4472C4", "FF4472C4")
	style.ApplyFont = true
	style.ApplyFill = true
	return style
}

// TransactionsXLSX renders txs as a workbook with one row per entry.
func TransactionsXLSX(txs []*account.Transaction) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	style := headerStyle()
	row := sheet.AddRow()
	for _, h := range XLSXHeader {
		cell := row.AddCell()
		cell.SetValue(h)
		cell.SetStyle(style)
	}

	if len(txs) == 0 {
		sheet.AddRow().AddCell().SetValue(NoTransactionsXLSX)
	}
	for i, tx := range txs {
		row = sheet.AddRow()
		row.AddCell().SetValue(strconv.Itoa(i + 1))
		row.AddCell().SetValue(tx.Type.String())
		row.AddCell().SetValue(tx.Date())
		row.AddCell().SetValue(tx.Time())
		row.AddCell().SetValue(tx.Amount.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// Package export builds the Excel register workbook: one sheet per
// collection, invoices and inspections, for offline bookkeeping.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/obeidat/fahs/internal/domain"
)

const (
	invoiceSheet    = "Invoices"
	inspectionSheet = "Inspections"
)

var invoiceHeaders = []string{
	"Invoice Number", "Invoice Date", "Due Date", "Client", "Property",
	"Subtotal", "Tax", "Total", "Paid", "Balance", "Status",
}

var inspectionHeaders = []string{
	"Inspection Date", "Client", "Property", "Type", "Inspector",
	"Areas", "Items", "Failed Items",
}

// Workbook renders both register sheets into a single workbook and returns
// the xlsx payload.
func Workbook(invoices []domain.Invoice, inspections []domain.Inspection) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, fmt.Errorf("failed to create invoice sheet: %w", err)
	}
	if _, err := f.NewSheet(inspectionSheet); err != nil {
		return nil, fmt.Errorf("failed to create inspection sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook styles: %w", err)
	}

	if err := writeSheet(f, invoiceSheet, "Invoice Register", invoiceHeaders, invoiceRows(invoices), styles); err != nil {
		return nil, err
	}
	if err := writeSheet(f, inspectionSheet, "Inspection Register", inspectionHeaders, inspectionRows(inspections), styles); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title  int
	header int
	data   int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	data, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	if err != nil {
		return sheetStyles{}, err
	}
	return sheetStyles{title: title, header: header, data: data}, nil
}

func writeSheet(f *excelize.File, sheet, title string, headers []string, rows [][]interface{}, styles sheetStyles) error {
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write sheet title: %w", err)
	}
	f.SetCellStyle(sheet, "A1", "A1", styles.title)
	f.SetRowHeight(sheet, 1, 28)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	for colIdx, header := range headers {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 4)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, styles.header)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheet, col, col, 20)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			if err != nil {
				return fmt.Errorf("failed to resolve data cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
			f.SetCellStyle(sheet, cell, cell, styles.data)
		}
	}
	return nil
}

func invoiceRows(invoices []domain.Invoice) [][]interface{} {
	rows := make([][]interface{}, 0, len(invoices))
	for _, inv := range invoices {
		sub, _ := inv.Subtotal.Float64()
		tax, _ := inv.Tax.Float64()
		total, _ := inv.TotalAmount.Float64()
		paid, _ := inv.AmountPaid.Float64()
		balance, _ := inv.BalanceDue().Float64()
		rows = append(rows, []interface{}{
			inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate, inv.ClientName,
			inv.PropertyLocation, sub, tax, total, paid, balance, string(inv.Status),
		})
	}
	return rows
}

func inspectionRows(inspections []domain.Inspection) [][]interface{} {
	rows := make([][]interface{}, 0, len(inspections))
	for _, insp := range inspections {
		items, failed := 0, 0
		for _, area := range insp.Areas {
			items += len(area.Items)
			for _, item := range area.Items {
				if item.Status == domain.StatusFail {
					failed++
				}
			}
		}
		rows = append(rows, []interface{}{
			insp.InspectionDate, insp.ClientName, insp.PropertyLocation,
			string(insp.PropertyType), insp.InspectorName,
			len(insp.Areas), items, failed,
		})
	}
	return rows
}

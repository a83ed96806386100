// Package xlsx renders the order collection as a spreadsheet download.
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/csvcodec"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
)

const (
	// ContentType is the media type of exported workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SheetName names the single worksheet holding the orders.
	SheetName = "Orders"
)

// Filename returns the export file name for the given day.
func Filename(t time.Time) string {
	return "dentallab_orders_" + t.Format("2006-01-02") + ".xlsx"
}

// Write renders orders as one worksheet using the CSV column layout and
// writes the workbook to w.
func Write(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]interface{}, 0, len(csvcodec.Columns))
	for _, c := range csvcodec.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{o.ID, o.Clinic, o.Contact, o.Type, o.ReceivedDate, o.DueDate, string(o.Status), o.Notes}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

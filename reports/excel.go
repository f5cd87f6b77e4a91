package reports

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderExcel writes the report as a styled single-sheet workbook and
// returns the xlsx bytes.
func RenderExcel(r *Report) ([]byte, error) {
	if r == nil {
		return nil, errors.New("reports: nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1976D2"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	_ = f.SetCellValue(sheet, "A1", r.Title)
	_ = f.MergeCell(sheet, "A1", "F1")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "A2", "Generated on "+r.GeneratedAt.Format("January 2, 2006 at 15:04"))

	headers := []string{"ID", "Name", "Category", "Location", "Condition", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A4", "F4", headerStyle)

	for i, it := range r.Items {
		row := i + 5
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), it.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), it.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), it.Category)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), it.Location)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), it.Condition)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), it.Notes)
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "D", 24)
	_ = f.SetColWidth(sheet, "E", "E", 14)
	_ = f.SetColWidth(sheet, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

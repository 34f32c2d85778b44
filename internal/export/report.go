// Package export renders finished department reports as Excel workbooks.
package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

// ColumnConfig defines one column of the report sheet.
type ColumnConfig struct {
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// ReportLayout is the configurable shape of the workbook. The five
// columns map, in order, to employee id, first name, last name, salary
// and bonus.
type ReportLayout struct {
	SheetName  string         `yaml:"sheet_name"`
	TotalLabel string         `yaml:"total_label"`
	Columns    []ColumnConfig `yaml:"columns"`
}

// DefaultLayout returns the layout used when no YAML template is given.
func DefaultLayout() ReportLayout {
	return ReportLayout{
		SheetName:  "Payroll",
		TotalLabel: "Total",
		Columns: []ColumnConfig{
			{Header: "Emp ID", Width: 10},
			{Header: "First Name", Width: 16},
			{Header: "Last Name", Width: 16},
			{Header: "Salary", Width: 12},
			{Header: "Bonus", Width: 12},
		},
	}
}

// LoadLayout reads a ReportLayout from a YAML file. Missing fields fall
// back to the default layout.
func LoadLayout(path string) (ReportLayout, error) {
	layout := DefaultLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("failed to read layout template: %w", err)
	}

	var loaded ReportLayout
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return layout, fmt.Errorf("failed to parse layout template: %w", err)
	}

	if loaded.SheetName != "" {
		layout.SheetName = loaded.SheetName
	}
	if loaded.TotalLabel != "" {
		layout.TotalLabel = loaded.TotalLabel
	}
	if len(loaded.Columns) == len(layout.Columns) {
		layout.Columns = loaded.Columns
	}
	return layout, nil
}

// BuildDepartmentReport renders one department report as a workbook:
// a header row, one row per traced employee, and a final total row.
func BuildDepartmentReport(layout ReportLayout, report *domain.DepartmentReport) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := layout.SheetName
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, col := range layout.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return nil, err
		}
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return nil, err
			}
		}
	}
	headerEnd, err := excelize.CoordinatesToCellName(len(layout.Columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", headerEnd, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range report.Rows {
		var bonus int64
		if row.Bonus != nil {
			bonus = *row.Bonus
		}
		values := []interface{}{row.EmployeeID, row.FirstName, row.LastName, row.Salary, bonus}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(report.Rows) + 2
	labelCell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, labelCell, layout.TotalLabel); err != nil {
		return nil, err
	}
	totalCell, err := excelize.CoordinatesToCellName(4, totalRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, totalCell, report.Total); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, labelCell, totalCell, headerStyle); err != nil {
		return nil, err
	}

	return f, nil
}

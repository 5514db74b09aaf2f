package report

import (
	"fmt"
	"io"

	"impact-mcp/internal/impact"

	"github.com/tealeg/xlsx/v2"
)

const (
	sheetInputs     = "Inputs"
	sheetOutputs    = "Outputs"
	sheetComparison = "Comparison"
)

// WriteXLSX writes the estimate as a workbook with an Inputs and an Outputs sheet.
// Undefined outputs are written as the text "n/a" so spreadsheets never see a division fault.
func (e *Estimate) WriteXLSX(w io.Writer) error {
	f := xlsx.NewFile()

	inputs, err := f.AddSheet(sheetInputs)
	if err != nil {
		return fmt.Errorf("xlsx: add inputs sheet: %w", err)
	}
	addStrings(inputs.AddRow(), "Key", "Input", "Value")
	for _, row := range InputRows(e.Inputs) {
		addStrings(inputs.AddRow(), row.Key, row.Label, row.Value)
	}

	outputs, err := f.AddSheet(sheetOutputs)
	if err != nil {
		return fmt.Errorf("xlsx: add outputs sheet: %w", err)
	}
	addStrings(outputs.AddRow(), "Key", "Metric", "Value", "Unit")
	for _, field := range e.Outputs.Fields() {
		row := outputs.AddRow()
		addStrings(row, field.Key, field.Label)
		addValue(row, field.Value)
		addStrings(row, field.Unit)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

// WriteComparisonXLSX writes one column per scenario on a single sheet.
func WriteComparisonXLSX(w io.Writer, cols []Column) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetComparison)
	if err != nil {
		return fmt.Errorf("xlsx: add comparison sheet: %w", err)
	}

	header := sheet.AddRow()
	addStrings(header, "Metric")
	for _, c := range cols {
		addStrings(header, c.Name)
	}

	if len(cols) > 0 {
		for i, field := range cols[0].Outputs.Fields() {
			row := sheet.AddRow()
			addStrings(row, field.Label)
			for _, c := range cols {
				addValue(row, c.Outputs.Fields()[i].Value)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func addStrings(row *xlsx.Row, values ...string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addValue(row *xlsx.Row, v impact.Value) {
	cell := row.AddCell()
	if f, ok := v.Get(); ok {
		cell.SetFloat(f)
		return
	}
	cell.SetString("n/a")
}

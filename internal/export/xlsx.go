package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/soapworks/internal/formulation"
)

// Sheet names of the formulation workbook.
const (
	SheetRecipe     = "Recipe"
	SheetQualities  = "Qualities"
	SheetFattyAcids = "Fatty Acids"
)

// FormulationXLSX writes a workbook with the recipe, its qualities and its
// fatty acid profile on separate sheets.
func FormulationXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRecipe); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetQualities, SheetFattyAcids} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	if err := writeRecipeSheet(f, rep); err != nil {
		return err
	}
	if err := writeQualitiesSheet(f, rep.Result); err != nil {
		return err
	}
	if err := writeFattyAcidSheet(f, rep.Result); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRecipeSheet(f *excelize.File, rep Report) error {
	res := rep.Result
	unit := string(res.Unit)

	rows := [][]any{
		{rep.Title},
		{"Report", rep.ID},
		{"Created", rep.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"Lye", rep.Request.LyeType.Label()},
		{"Water", WaterLabel(rep.Request.Water)},
		{"Superfat %", rep.Request.SuperfatPercent},
		{"Fragrance oz/lb", rep.Request.FragranceRatio},
		{},
		{"Oil", "%", unit, "Lye " + unit},
	}
	for _, line := range res.Oils {
		rows = append(rows, []any{line.Oil.Name, line.Percentage, line.Amount, line.Lye})
	}
	rows = append(rows,
		[]any{},
		[]any{"Oil weight", res.TotalOilWeight, unit},
		[]any{"Lye", res.Lye, unit},
		[]any{"Water", res.Water, unit},
		[]any{"Fragrance", res.Fragrance, string(res.FragranceUnit)},
		[]any{"Total batch", res.TotalBatchWeight, unit},
	)
	for _, warn := range rep.Warnings {
		rows = append(rows, []any{"Warning", warn.Message})
	}

	if err := writeRows(f, SheetRecipe, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetRecipe, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeQualitiesSheet(f *excelize.File, res formulation.Result) error {
	rows := [][]any{{"Property", "Low", "High", "Your recipe", "In range"}}
	for _, q := range formulation.QualityRanges {
		v := res.Qualities.Value(q.Name)
		rows = append(rows, []any{q.Name, q.Low, q.High, v, q.Contains(v)})
	}
	return writeRows(f, SheetQualities, rows)
}

func writeFattyAcidSheet(f *excelize.File, res formulation.Result) error {
	rows := [][]any{{"Fatty acid", "Value"}}
	for _, fa := range res.FattyAcids.Named() {
		rows = append(rows, []any{fa.Name, fa.Value})
	}
	rows = append(rows,
		[]any{"Saturated", res.Saturated},
		[]any{"Unsaturated", res.Unsaturated},
	)
	return writeRows(f, SheetFattyAcids, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

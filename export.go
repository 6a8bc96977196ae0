package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const resultSheet = "Teams"

var resultHeaders = []string{"Rank", "Score", "Cost", "Units", "Tanks", "Carries", "Team", "Origins", "Classes"}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func traitList(traits []ActiveTrait) string {
	parts := make([]string, 0, len(traits))
	for _, t := range traits {
		parts = append(parts, fmt.Sprintf("%s %d", t.Name, t.Count))
	}
	return strings.Join(parts, ", ")
}

// ExportResultsXLSX writes at most limit teams (all when limit <= 0) to a
// workbook at path, creating parent directories as needed.
func ExportResultsXLSX(path string, results []TeamResult, limit int) error {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range resultHeaders {
		if err := f.SetCellValue(resultSheet, fmt.Sprintf("%s1", colName(i+1)), h); err != nil {
			return err
		}
	}
	for i := range results {
		r := &results[i]
		row := []any{
			i + 1,
			r.Score,
			r.TotalCost,
			r.Size,
			r.TankCount,
			r.CarryCount,
			strings.Join(r.Names(), ", "),
			traitList(r.Origins()),
			traitList(r.Classes()),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(resultSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	_ = f.SetPanes(resultSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

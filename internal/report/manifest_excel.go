package report

import (
	"fmt"
	"sort"

	"github.com/spacecargo/stowage/internal/model"
	"github.com/xuri/excelize/v2"
)

// GenerateWorkbook writes a two-sheet workbook — "Placements" and
// "Unplaced" — summarizing result, the column layout mirroring the
// teacher's importer sheet conventions inverted into a writer.
func GenerateWorkbook(path string, result model.PlacementResult, items map[string]model.Item, containers map[string]model.Container) error {
	f := excelize.NewFile()
	defer f.Close()

	placementsSheet := "Placements"
	f.SetSheetName("Sheet1", placementsSheet)
	writePlacementsSheet(f, placementsSheet, result, items, containers)

	unplacedSheet := "Unplaced"
	f.NewSheet(unplacedSheet)
	writeUnplacedSheet(f, unplacedSheet, result, items)

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	return style
}

func writePlacementsSheet(f *excelize.File, sheet string, result model.PlacementResult, items map[string]model.Item, containers map[string]model.Container) {
	headers := []string{"Item ID", "Item Name", "Container", "Zone", "Start X", "Start Y", "Start Z", "End X", "End Y", "End Z", "Voxels", "Priority"}
	style := headerStyle(f)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", columnLetter(len(headers))), style)

	placements := append([]model.Placement(nil), result.Placements...)
	sort.Slice(placements, func(i, j int) bool { return placements[i].ItemID < placements[j].ItemID })

	for row, p := range placements {
		it := items[p.ItemID]
		c := containers[p.ContainerID]
		values := []interface{}{
			p.ItemID, it.Name, p.ContainerID, c.Zone,
			p.Position.Start.X, p.Position.Start.Y, p.Position.Start.Z,
			p.Position.End.X, p.Position.End.Y, p.Position.End.Z,
			p.Position.Volume(), it.Priority,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	for i := range headers {
		col := columnLetter(i + 1)
		f.SetColWidth(sheet, col, col, 14)
	}
}

func writeUnplacedSheet(f *excelize.File, sheet string, result model.PlacementResult, items map[string]model.Item) {
	headers := []string{"Item ID", "Item Name", "Volume", "Priority", "Reason"}
	style := headerStyle(f)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", columnLetter(len(headers))), style)

	budgetExceeded := make(map[string]bool, len(result.BudgetExceeded))
	for _, id := range result.BudgetExceeded {
		budgetExceeded[id] = true
	}

	unplaced := append([]string(nil), result.Unplaced...)
	sort.Strings(unplaced)

	for row, id := range unplaced {
		it := items[id]
		reason := "no fitting position found"
		if budgetExceeded[id] {
			reason = "fit-search budget exhausted"
		}
		values := []interface{}{id, it.Name, it.Volume(), it.Priority, reason}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	for i := range headers {
		col := columnLetter(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
}

func columnLetter(n int) string {
	col, _ := excelize.ColumnNumberToName(n)
	return col
}

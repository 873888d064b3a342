// Package report renders a PlacementResult into human-facing artifacts —
// PDF manifests, Excel workbooks, and QR-coded cargo tags. None of it is
// consumed by the placement or retrieval logic; it exists purely for
// callers that want a document to hand a crew member.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/spacecargo/stowage/internal/engine"
	"github.com/spacecargo/stowage/internal/model"
)

// itemColor is one entry of the fixed per-item color palette used to
// distinguish placed items in a container's footprint diagram.
type itemColor struct{ R, G, B int }

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
	{R: 255, G: 235, B: 59},
	{R: 121, G: 85, B: 72},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// containerPlacements groups a result's placements by container id.
func containerPlacements(result model.PlacementResult) map[string][]model.Placement {
	grouped := make(map[string][]model.Placement)
	for _, p := range result.Placements {
		grouped[p.ContainerID] = append(grouped[p.ContainerID], p)
	}
	return grouped
}

// GenerateManifest writes a PDF with one page per container used by
// result — a top-down (x,y) footprint diagram colored by item, a
// placement table, and an efficiency line — followed by a summary page.
func GenerateManifest(path string, result model.PlacementResult, items map[string]model.Item, containers map[string]model.Container) error {
	grouped := containerPlacements(result)
	if len(grouped) == 0 {
		return fmt.Errorf("no placements to report")
	}

	containerIDs := make([]string, 0, len(grouped))
	for id := range grouped {
		containerIDs = append(containerIDs, id)
	}
	sort.Strings(containerIDs)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, id := range containerIDs {
		pdf.AddPage()
		renderContainerPage(pdf, containers[id], grouped[id], items)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, items)

	return pdf.OutputFileAndClose(path)
}

func renderContainerPage(pdf *fpdf.Fpdf, c model.Container, placements []model.Placement, items map[string]model.Item) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %s — zone %s (%d x %d x %d)", c.ID, c.Zone, c.Dims.W, c.Dims.D, c.Dims.H)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	efficiency := 0.0
	if c.TotalVolume > 0 {
		efficiency = float64(c.OccupiedVolume) / float64(c.TotalVolume) * 100.0
	}
	stats := fmt.Sprintf("Items: %d | Occupied: %d voxels | Total: %d voxels | Efficiency: %.1f%%",
		len(placements), c.OccupiedVolume, c.TotalVolume, efficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := 90.0
	scaleX := drawWidth / float64(c.Dims.W)
	scaleY := drawHeight / float64(c.Dims.D)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(c.Dims.W) * scale
	canvasH := float64(c.Dims.D) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(210, 210, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	sort.Slice(placements, func(i, j int) bool { return placements[i].ItemID < placements[j].ItemID })
	for i, p := range placements {
		col := itemColors[i%len(itemColors)]
		dims := p.Position.Dims()
		pw := float64(dims.W) * scale
		ph := float64(dims.D) * scale
		px := offsetX + float64(p.Position.Start.X)*scale
		py := offsetY + float64(p.Position.Start.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 6 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(0, 0, 0)
			label := p.ItemID
			if it, ok := items[p.ItemID]; ok && it.Name != "" {
				label = it.Name
			}
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	y := offsetY + canvasH + 10
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	colWidths := []float64{40, 60, 90, 40}
	headers := []string{"Item", "Name", "Position (start-end)", "Voxels"}
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range placements {
		name := ""
		if it, ok := items[p.ItemID]; ok {
			name = it.Name
		}
		row := []string{
			p.ItemID,
			name,
			fmt.Sprintf("(%d,%d,%d)-(%d,%d,%d)", p.Position.Start.X, p.Position.Start.Y, p.Position.Start.Z, p.Position.End.X, p.Position.End.Y, p.Position.End.Z),
			fmt.Sprintf("%d", p.Position.Volume()),
		}
		xPos = marginLeft
		for i, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "L", false, 0, "")
			xPos += colWidths[i]
		}
		y += 6
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlacementResult, items map[string]model.Item) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Stowage Manifest Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 10)

	rows := []struct{ label, value string }{
		{"Success", fmt.Sprintf("%v", result.Success)},
		{"Items Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Items Unplaced", fmt.Sprintf("%d", len(result.Unplaced))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", engine.Efficiency(result, items)*100)},
	}
	for _, r := range rows {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, r.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Unplaced items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range result.Unplaced {
			name := id
			if it, ok := items[id]; ok && it.Name != "" {
				name = it.Name
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s", name), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cargoplan", "", 0, "C", false, 0, "")
}

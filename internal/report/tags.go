package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"github.com/spacecargo/stowage/internal/engine"
	"github.com/spacecargo/stowage/internal/model"
)

// Avery 5160 label sheet grid geometry.
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	qrSize          = 20.0
	labelPadding    = 2.0
)

// tagPayload is what gets encoded into each item's QR code.
type tagPayload struct {
	ItemID        string `json:"item_id"`
	ContainerID   string `json:"container_id"`
	Position      string `json:"position"`
	RetrievalCost int    `json:"retrieval_steps"`
}

// GenerateTags writes Avery-5160-compatible pages of QR-coded cargo tags,
// one label per placed item and 30 labels per page.
func GenerateTags(path string, session *engine.Session, result model.PlacementResult) error {
	placed := append([]model.Placement(nil), result.Placements...)
	sort.Slice(placed, func(i, j int) bool { return placed[i].ItemID < placed[j].ItemID })
	if len(placed) == 0 {
		return fmt.Errorf("no placed items to tag")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	perPage := labelCols * labelRows
	for pageStart := 0; pageStart < len(placed); pageStart += perPage {
		pdf.AddPage()
		end := pageStart + perPage
		if end > len(placed) {
			end = len(placed)
		}
		for i, p := range placed[pageStart:end] {
			idx := pageStart + i
			row := (idx % perPage) / labelCols
			col := (idx % perPage) % labelCols
			x := labelMarginLeft + float64(col)*labelWidth
			y := labelMarginTop + float64(row)*labelHeight
			if err := renderTag(pdf, x, y, session, p); err != nil {
				return err
			}
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderTag(pdf *fpdf.Fpdf, x, y float64, session *engine.Session, p model.Placement) error {
	item := session.Items[p.ItemID]

	retrievalCost := 0
	if plan, err := engine.Analyze(session, p.ItemID); err == nil {
		retrievalCost = len(plan)
	}

	payload := tagPayload{
		ItemID:        p.ItemID,
		ContainerID:   p.ContainerID,
		Position:      fmt.Sprintf("(%d,%d,%d)", p.Position.Start.X, p.Position.Start.Y, p.Position.Start.Z),
		RetrievalCost: retrievalCost,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr for %s: %w", p.ItemID, err)
	}
	png, err := qr.PNG(256)
	if err != nil {
		return err
	}

	imgName := fmt.Sprintf("qr-%s", p.ItemID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelPadding, y+labelPadding, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding + qrSize + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetXY(textX, y+labelPadding)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.MultiCell(textW, 4, item.Name, "", "L", false)

	pdf.SetXY(textX, y+labelPadding+8)
	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(textW, 3.5, fmt.Sprintf("Item: %s\nContainer: %s\nSteps to retrieve: %d", p.ItemID, p.ContainerID, retrievalCost), "", "L", false)

	return nil
}

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/formulation"
)

// Page layout constants for A4 portrait sheets.
const (
	pageMargin  = 15.0
	contentW    = 180.0
	rowHeight   = 6.0
	qrSize      = 32.0
	headerColor = 5 // index into palette
)

var palette = [][3]int{
	{255, 255, 255},
	{245, 245, 244},
	{220, 38, 38},
	{22, 101, 52},
	{120, 113, 108},
	{6, 95, 70},
}

// FormulationPDF writes a one-page printable sheet for a computed
// formulation, with a QR code holding its share code.
func FormulationPDF(w io.Writer, rep Report) error {
	pdf := newDocument(rep.Title)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	res := rep.Result
	unit := string(res.Unit)

	drawTitle(pdf, tr(rep.Title), fmt.Sprintf("Report %s - %s", rep.ID, rep.CreatedAt.Format("2006-01-02 15:04 MST")))

	share, err := rep.ShareJSON()
	if err != nil {
		return fmt.Errorf("encode share code: %w", err)
	}
	if err := drawQR(pdf, "share_"+rep.ID, string(share), pageMargin+contentW-qrSize, pageMargin); err != nil {
		return err
	}

	sectionHeading(pdf, "Settings")
	keyValue(pdf, "Lye", rep.Request.LyeType.Label())
	keyValue(pdf, "Oil weight", FormatNumber(res.TotalOilWeight, 2)+" "+unit)
	keyValue(pdf, "Water", WaterLabel(rep.Request.Water))
	keyValue(pdf, "Superfat", FormatNumber(rep.Request.SuperfatPercent, 1)+"%")
	keyValue(pdf, "Fragrance ratio", FormatNumber(rep.Request.FragranceRatio, 2)+" oz/lb")

	sectionHeading(pdf, "Oils")
	tableHeader(pdf, []string{"Oil", "%", unit, "Lye " + unit}, []float64{90, 30, 30, 30})
	for _, line := range res.Oils {
		name := line.Oil.Name
		if line.Missing {
			name += " (not in catalog)"
		}
		tableRow(pdf, []string{
			tr(name),
			FormatNumber(line.Percentage, 1),
			FormatNumber(line.Amount, 2),
			FormatNumber(line.Lye, 3),
		}, []float64{90, 30, 30, 30})
	}

	sectionHeading(pdf, "Batch")
	keyValue(pdf, "Lye", FormatNumber(res.Lye, 3)+" "+unit)
	keyValue(pdf, "Water", FormatNumber(res.Water, 2)+" "+unit)
	keyValue(pdf, "Fragrance", FormatNumber(res.Fragrance, 2)+" "+string(res.FragranceUnit))
	keyValue(pdf, "Total batch", FormatNumber(res.TotalBatchWeight, 2)+" "+unit)

	sectionHeading(pdf, "Soap qualities")
	tableHeader(pdf, []string{"Property", "Range", "Your recipe"}, []float64{80, 50, 50})
	for _, q := range formulation.QualityRanges {
		v := res.Qualities.Value(q.Name)
		tableRow(pdf, []string{
			q.Name,
			FormatNumber(q.Low, 0) + " - " + FormatNumber(q.High, 0),
			FormatNumber(math.Round(v), 0),
		}, []float64{80, 50, 50})
	}

	sectionHeading(pdf, "Fatty acids")
	for _, fa := range res.FattyAcids.Named() {
		keyValue(pdf, fa.Name, FormatNumber(math.Round(fa.Value), 0))
	}
	keyValue(pdf, "Sat : Unsat", FormatNumber(math.Round(res.Saturated), 0)+" : "+FormatNumber(math.Round(res.Unsaturated), 0))

	if len(rep.Warnings) > 0 {
		sectionHeading(pdf, "Warnings")
		setColor(pdf, 2)
		for _, warn := range rep.Warnings {
			pdf.MultiCell(contentW, rowHeight, tr(warn.Message), "", "L", false)
		}
		setColor(pdf, -1)
	}

	return finish(pdf, w)
}

// RecipePDF writes a printable recipe card scaled to the given batch
// size, with a QR code linking to the recipe source.
func RecipePDF(w io.Writer, r catalog.Recipe, scale float64) error {
	scale = catalog.ClampScale(scale)
	pdf := newDocument(r.Name)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	drawTitle(pdf, tr(r.Name), fmt.Sprintf("%s - batch %d%%", r.Type, int(math.Round(scale*100))))
	if r.SourceURL != "" {
		if err := drawQR(pdf, "source_"+r.Slug, r.SourceURL, pageMargin+contentW-qrSize, pageMargin); err != nil {
			return err
		}
	}
	if r.Benefits != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(contentW-qrSize-5, rowHeight, tr(r.Benefits), "", "L", false)
	}

	sectionHeading(pdf, "Ingredients")
	pdf.SetFont("Helvetica", "", 10)
	if len(r.StructuredIngredients) > 0 {
		for _, ing := range r.StructuredIngredients {
			pdf.MultiCell(contentW, rowHeight, tr("- "+ing.Display(scale)), "", "L", false)
		}
	} else {
		for _, line := range r.Ingredients.Lines() {
			pdf.MultiCell(contentW, rowHeight, tr("- "+line), "", "L", false)
		}
	}

	sectionHeading(pdf, "Method")
	pdf.SetFont("Helvetica", "", 10)
	for _, step := range r.Steps() {
		text := step.Text
		if step.IsStep() {
			text = fmt.Sprintf("%d. %s", step.Number, step.Text)
		}
		pdf.MultiCell(contentW, rowHeight, tr(text), "", "L", false)
		pdf.Ln(1)
	}

	if r.SourceURL != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 8)
		setColor(pdf, 4)
		pdf.CellFormat(contentW, rowHeight, tr("Source: "+r.SourceURL), "", 1, "L", false, 0, r.SourceURL)
		setColor(pdf, -1)
	}

	return finish(pdf, w)
}

func newDocument(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("soapworks", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	return pdf
}

func finish(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawTitle(pdf *fpdf.Fpdf, title, subtitle string) {
	pdf.SetFont("Helvetica", "B", 18)
	setColor(pdf, headerColor)
	pdf.MultiCell(contentW-qrSize-5, 9, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	setColor(pdf, 4)
	pdf.CellFormat(contentW-qrSize-5, rowHeight, subtitle, "", 1, "L", false, 0, "")
	setColor(pdf, -1)
	// leave room for the QR code before the first section
	if y := pageMargin + qrSize + 2; pdf.GetY() < y {
		pdf.SetY(y)
	}
}

func drawQR(pdf *fpdf.Fpdf, name, content string, x, y float64) error {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, opts, 0, "")
	return nil
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	setColor(pdf, headerColor)
	pdf.CellFormat(contentW, 8, title, "B", 1, "L", false, 0, "")
	setColor(pdf, -1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(1)
}

func keyValue(pdf *fpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, rowHeight, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-60, rowHeight, value, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func tableHeader(pdf *fpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	c := palette[1]
	pdf.SetFillColor(c[0], c[1], c[2])
	for i, col := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], rowHeight, col, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func tableRow(pdf *fpdf.Fpdf, cols []string, widths []float64) {
	for i, col := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], rowHeight, col, "", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// setColor switches the text color to a palette entry; -1 resets to black.
func setColor(pdf *fpdf.Fpdf, idx int) {
	if idx < 0 {
		pdf.SetTextColor(0, 0, 0)
		return
	}
	c := palette[idx]
	pdf.SetTextColor(c[0], c[1], c[2])
}

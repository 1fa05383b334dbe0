package render

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"

	"jobforge-backend/resume/model"
)

// Letter page with 0.6in side and 0.5in top/bottom margins, in points.
const (
	pdfMarginX = 43.2
	pdfMarginY = 36.0

	bulletIndent = 12.0
)

// renderPDF lays the resume out as a single-column PDF. The creation and
// modification dates are pinned to the epoch so output bytes depend only
// on the resume content.
func renderPDF(resume model.TailoredResume) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetModificationDate(time.Unix(0, 0))
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	pdf.SetAutoPageBreak(true, pdfMarginY)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	style := applyPDFStyle(pdf, "name")
	pdf.CellFormat(0, style.LineHeight, tr(resume.Name), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if resume.Title != "" {
		style = applyPDFStyle(pdf, "title")
		pdf.CellFormat(0, style.LineHeight, tr(resume.Title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	style = applyPDFStyle(pdf, "contact")
	contact := resume.Email + "  |  " + resume.Phone + "  |  " + resume.Location
	pdf.CellFormat(0, style.LineHeight, tr(contact), "", 1, "C", false, 0, "")
	if resume.LinkedIn != "" {
		pdf.CellFormat(0, style.LineHeight, tr(resume.LinkedIn), "", 1, "C", false, 0, "")
	}
	pdf.Ln(12)

	sectionHeading(pdf, tr, "PROFESSIONAL SUMMARY")
	style = applyPDFStyle(pdf, "body")
	pdf.MultiCell(0, style.LineHeight, tr(resume.Summary), "", "L", false)

	sectionHeading(pdf, tr, "TECHNICAL SKILLS")
	for _, group := range resume.Skills {
		label := applyPDFStyle(pdf, "skillLabel")
		pdf.Write(label.LineHeight, tr(group.Category+": "))
		applyPDFStyle(pdf, "body")
		pdf.Write(label.LineHeight, tr(group.Items))
		pdf.Ln(label.LineHeight + 4)
	}

	sectionHeading(pdf, tr, "PROFESSIONAL EXPERIENCE")
	for _, exp := range resume.Experience {
		style = applyPDFStyle(pdf, "expTitle")
		pdf.CellFormat(0, style.LineHeight, tr(exp.Title+" | "+exp.Dates), "", 1, "L", false, 0, "")

		style = applyPDFStyle(pdf, "expMeta")
		pdf.CellFormat(0, style.LineHeight, tr(exp.Company+" - "+exp.Location), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		style = applyPDFStyle(pdf, "bullet")
		pdf.SetLeftMargin(pdfMarginX + bulletIndent)
		pdf.SetX(pdfMarginX + bulletIndent)
		for _, point := range exp.Points {
			pdf.MultiCell(0, style.LineHeight, tr("• "+point), "", "L", false)
			pdf.Ln(2)
		}
		pdf.SetLeftMargin(pdfMarginX)
		pdf.SetX(pdfMarginX)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionHeading(pdf *fpdf.Fpdf, tr func(string) string, heading string) {
	pdf.Ln(10)
	style := applyPDFStyle(pdf, "section")
	pdf.CellFormat(0, style.LineHeight, tr(heading), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func applyPDFStyle(pdf *fpdf.Fpdf, name string) textStyle {
	style := pdfStyles[name]
	pdf.SetFont("Helvetica", style.Style, style.Size)
	pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
	return style
}

package export

import (
	"fmt"
	"io"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/go-pdf/fpdf"
)

// PDFExporter writes a one or two page A4 report using the core
// Helvetica font.
type PDFExporter struct{}

func (PDFExporter) Ext() string         { return ".pdf" }
func (PDFExporter) ContentType() string { return "application/pdf" }

const (
	pdfLine   = 6.0
	chartH    = 50.0
	pdfMargin = 15.0
)

func (PDFExporter) Export(w io.Writer, s Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Assessment report", true)
	pdf.SetAuthor(s.Profile.Name, true)
	pdf.SetCreator("mentor", true)
	pdf.SetCreationDate(s.GeneratedAt)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr("Assessment report"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, pdfLine, tr(fmt.Sprintf("Student: %s   Roll no: %s   Class: %s   Attendance: %d%%",
		orDash(s.Profile.Name), orDash(s.Profile.RollNo), orDash(s.Profile.Class), s.Profile.Attendance)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, pdfLine, s.GeneratedAt.Format("Generated 2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(s.Subjects) > 0 {
		heading(pdf, tr, contentW, "Unit tests")
		widths := []float64{contentW * 0.55, contentW * 0.15, contentW * 0.15, contentW * 0.15}
		tableHeader(pdf, widths, []string{"Subject", "UT1", "UT2", "Average"})
		for _, sub := range s.Subjects {
			style := ""
			if sub.Name == s.Weakest {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, 10)
			pdf.CellFormat(widths[0], pdfLine, tr(sub.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], pdfLine, fmt.Sprint(sub.UT1), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], pdfLine, fmt.Sprint(sub.UT2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], pdfLine, fmt.Sprintf("%.1f", sub.Average), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if s.Diagnostic != nil {
		heading(pdf, tr, contentW, "Results: "+s.Weakest)
		widths := []float64{contentW * 0.25, contentW * 0.15, contentW * 0.15, contentW * 0.15, contentW * 0.15, contentW * 0.15}
		tableHeader(pdf, widths, []string{"", "Score", "Percent", "Grade", "Risk", "Prediction"})
		pdf.SetFont("Helvetica", "", 10)
		resultRow(pdf, widths, "Diagnostic", s.Diagnostic, s.Before)
		if s.Post != nil {
			resultRow(pdf, widths, "Post-test", s.Post, s.After)
		}
		if s.Improvement != nil {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(contentW, pdfLine, fmt.Sprintf("Improvement: %+d", *s.Improvement), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(s.Curve) > 0 {
		heading(pdf, tr, contentW, "Risk forecast")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, pdfLine, fmt.Sprintf("Day 1: %.1f%%   Day %d: %.1f%%   Reduction: %.1f points",
			s.Forecast.Start, len(s.Curve), s.Forecast.End, s.Forecast.Reduction), "", 1, "L", false, 0, "")
		riskChart(pdf, s.Curve, contentW)
		pdf.Ln(4)
	}

	if len(s.Plan) > 0 {
		heading(pdf, tr, contentW, fmt.Sprintf("Study plan (%d of %d days practised)", s.PracticeDays(), len(s.Plan)))
		widths := []float64{contentW * 0.1, contentW * 0.75, contentW * 0.15}
		tableHeader(pdf, widths, []string{"Day", "Topic", "Practice"})
		pdf.SetFont("Helvetica", "", 9)
		for _, d := range s.Plan {
			practice := "-"
			if d.Practice != nil {
				practice = fmt.Sprintf("%d", *d.Practice)
			}
			pdf.CellFormat(widths[0], 5, fmt.Sprint(d.Day), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[1], 5, tr(d.Topic), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 5, practice, "1", 1, "R", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, w float64, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(w, 8, tr(text), "", 1, "L", false, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 240)
	for i, l := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], pdfLine, l, "1", ln, "C", true, 0, "")
	}
}

func resultRow(pdf *fpdf.Fpdf, widths []float64, label string, q *QuizLine, r *forecast.Rating) {
	grade, risk, pred := "-", "-", "-"
	if r != nil {
		grade, risk, pred = string(r.Grade), string(r.Risk), r.Prediction()
	}
	cells := []string{label, fmt.Sprintf("%d/%d", q.Score, q.Total), fmt.Sprintf("%.0f%%", q.Percent), grade, risk, pred}
	for i, c := range cells {
		ln, align := 0, "C"
		if i == 0 {
			align = "L"
		}
		if i == len(cells)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], pdfLine, c, "1", ln, align, false, 0, "")
	}
}

// riskChart draws the curve as a polyline on a 0-100% grid.
func riskChart(pdf *fpdf.Fpdf, curve []float64, w float64) {
	left, _, _, _ := pdf.GetMargins()
	top := pdf.GetY() + 2
	if _, pageH := pdf.GetPageSize(); top+chartH+8 > pageH-pdfMargin {
		pdf.AddPage()
		top = pdf.GetY()
	}
	x0 := left + 10
	cw := w - 10

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.SetFont("Helvetica", "", 7)
	for _, pct := range []float64{0, 25, 50, 75, 100} {
		y := top + chartH - pct/100*chartH
		pdf.Line(x0, y, x0+cw, y)
		pdf.SetXY(left, y-2)
		pdf.CellFormat(9, 4, fmt.Sprintf("%.0f", pct), "", 0, "R", false, 0, "")
	}

	if len(curve) > 1 {
		step := cw / float64(len(curve)-1)
		pdf.SetDrawColor(200, 40, 40)
		pdf.SetLineWidth(0.5)
		for i := 1; i < len(curve); i++ {
			pdf.Line(
				x0+step*float64(i-1), top+chartH-curve[i-1]/100*chartH,
				x0+step*float64(i), top+chartH-curve[i]/100*chartH,
			)
		}
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(x0, top+chartH+1)
	pdf.CellFormat(cw/2, 4, "Day 1", "", 0, "L", false, 0, "")
	pdf.CellFormat(cw/2, 4, fmt.Sprintf("Day %d", len(curve)), "", 1, "R", false, 0, "")
}

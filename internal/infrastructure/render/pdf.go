package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/johnquangdev/meeting-reporter/internal/domain/entities"
)

// PDFRenderer produces a letter-format PDF report
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(summary *entities.MeetingSummary, transcript *entities.MeetingTranscript, outputDir string) (string, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252; transcripts and summaries arrive as UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Meeting Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	meta := summary.Metadata
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s  |  %s", meta.Title, meta.Date)), "", 1, "C", false, 0, "")
	if len(meta.Participants) > 0 {
		pdf.CellFormat(0, 6, tr("Participants: "+strings.Join(meta.Participants, ", ")), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Language: "+meta.Language), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generated %s by %s", meta.GeneratedAt.Format("2006-01-02 15:04 MST"), meta.Model)), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	r.heading(pdf, "Executive Summary")
	pdf.SetFont("Helvetica", "", 11)
	body := summary.ExecutiveSummary
	if body == "" {
		body = "No summary available."
	}
	pdf.MultiCell(0, 5.5, tr(body), "", "L", false)
	pdf.Ln(2)

	for _, sec := range sections(summary) {
		if len(sec.items) == 0 {
			continue
		}
		r.heading(pdf, sec.title)
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range sec.items {
			pdf.MultiCell(0, 5.5, tr("• "+item), "", "L", false)
		}
		pdf.Ln(2)
	}

	metrics := summary.QualityMetrics
	r.heading(pdf, "Quality Metrics")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"Decisions: %d   Action items: %d   Deadlines mentioned: %s   Assignees mentioned: %s",
		metrics.DecisionCount, metrics.ActionItemCount,
		yesNo(metrics.HasDeadlines), yesNo(metrics.HasAssignees),
	), "", "L", false)
	pdf.Ln(2)

	if transcript != nil && len(transcript.Segments) > 0 {
		pdf.AddPage()
		r.heading(pdf, "Full Transcript")
		for _, seg := range transcript.Segments {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(seg.Speaker+":"), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(seg.Text), "", "L", false)
			pdf.Ln(1)
		}
	}

	outputPath := filepath.Join(outputDir, reportFilename("pdf"))
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write pdf report: %w", err)
	}
	return outputPath, nil
}

func (r *PDFRenderer) heading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(180, 180, 180)
	x, y := pdf.GetX(), pdf.GetY()
	pdf.Line(x, y, x+170, y)
	pdf.Ln(2)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

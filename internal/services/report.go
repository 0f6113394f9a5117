package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"pitchlens/submission-evaluator/internal/models"
)

// ReportRenderer turns a stored evaluation into a downloadable PDF
// document. Rendering is pure with respect to the record: the same
// evaluation always yields the same report.
type ReportRenderer interface {
	Render(eval *models.Evaluation) ([]byte, error)
}

type reportRenderer struct{}

func NewReportRenderer() ReportRenderer {
	return &reportRenderer{}
}

func (r *reportRenderer) Render(eval *models.Evaluation) ([]byte, error) {
	if err := validateForReport(eval); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Pin the document date to the record so identical records render
	// byte-identical reports.
	pdf.SetCreationDate(eval.CreatedAt)
	pdf.SetModificationDate(eval.CreatedAt)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Presentation Evaluation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("File: %s", eval.OriginalName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Theme: %s", eval.Theme), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Pitch Readiness: %d/10", eval.PitchReadinessScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Evaluated: %s", eval.CreatedAt.Format("2 January 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "Project Insights")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, eval.ProjectTitle, "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, eval.ProjectSummary, "", "L", false)
	if len(eval.Keywords) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Keywords: "+strings.Join(eval.Keywords, ", "), "", "L", false)
	}
	pdf.Ln(4)

	sectionTitle(pdf, "Score Breakdown")
	r.scoreTable(pdf, eval)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Score: %d / 60    Grade: %s", eval.TotalScore, eval.Grade), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "Visual Quality")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, eval.VisualQualityComment, "", "L", false)
	pdf.Ln(4)

	sectionTitle(pdf, "Feedback Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, eval.FeedbackSummary, "", "L", false)
	pdf.Ln(4)

	sectionTitle(pdf, "Improvement Suggestions")
	numberedList(pdf, eval.ImprovementSuggestions)
	pdf.Ln(4)

	sectionTitle(pdf, "Recommended Resources")
	numberedList(pdf, eval.RecommendedResources)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Reason: fmt.Sprintf("pdf generation failed: %v", err)}
	}

	return buf.Bytes(), nil
}

func (r *reportRenderer) scoreTable(pdf *fpdf.Fpdf, eval *models.Evaluation) {
	rows := []struct {
		label string
		value int
	}{
		{"Clarity", eval.Scores.Clarity},
		{"Innovation", eval.Scores.Innovation},
		{"Feasibility", eval.Scores.Feasibility},
		{"Presentation Quality", eval.Scores.Presentation},
		{"Impact", eval.Scores.Impact},
		{"Theme Alignment", eval.Scores.ThemeAlignment},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(110, 7, "Criterion", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Score", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(110, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d / 10", row.value), "1", 1, "C", false, 0, "")
	}
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(180, 180, 180)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 195, y)
	pdf.Ln(2)
}

func numberedList(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	for i, item := range items {
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, item), "", "L", false)
		pdf.Ln(1)
	}
}

func validateForReport(eval *models.Evaluation) error {
	switch {
	case eval == nil:
		return &RenderError{Reason: "missing evaluation record"}
	case eval.OriginalName == "":
		return &RenderError{Reason: "evaluation has no source file name"}
	case eval.Grade == "":
		return &RenderError{Reason: "evaluation has no grade"}
	case len(eval.ImprovementSuggestions) == 0:
		return &RenderError{Reason: "evaluation has no improvement suggestions"}
	case len(eval.RecommendedResources) == 0:
		return &RenderError{Reason: "evaluation has no recommended resources"}
	}

	scores := []int{
		eval.Scores.Clarity,
		eval.Scores.Innovation,
		eval.Scores.Feasibility,
		eval.Scores.Presentation,
		eval.Scores.Impact,
		eval.Scores.ThemeAlignment,
	}
	for _, s := range scores {
		if s < 1 || s > 10 {
			return &RenderError{Reason: fmt.Sprintf("rubric score %d outside valid range", s)}
		}
	}

	return nil
}

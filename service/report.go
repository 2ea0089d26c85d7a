package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// paragraph is one line of report content, stored as markup with &, < and >
// escaped so the story can be embedded in markup-based renderers unchanged.
type paragraph struct {
	Markup string
}

// ReportService renders a block of text into a minimal single-column
// paginated PDF: a fixed title line, then one paragraph per non-empty line.
type ReportService struct {
	title string
}

func NewReportService(title string) *ReportService {
	return &ReportService{title: title}
}

// escapeMarkup escapes the three characters with meaning in the paragraph
// markup. This is the only content transformation the renderer applies.
func escapeMarkup(line string) string {
	line = strings.ReplaceAll(line, "&", "&amp;")
	line = strings.ReplaceAll(line, "<", "&lt;")
	line = strings.ReplaceAll(line, ">", "&gt;")
	return line
}

// unescapeMarkup reverses escapeMarkup when the story is drawn.
func unescapeMarkup(markup string) string {
	markup = strings.ReplaceAll(markup, "&lt;", "<")
	markup = strings.ReplaceAll(markup, "&gt;", ">")
	markup = strings.ReplaceAll(markup, "&amp;", "&")
	return markup
}

// buildStory turns the summary text into the ordered list of escaped
// paragraphs that make up the report body. Empty lines are dropped.
func buildStory(text string) []paragraph {
	var story []paragraph
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		story = append(story, paragraph{Markup: escapeMarkup(line)})
	}
	return story
}

// Render produces the downloadable report as a byte buffer positioned at its
// start.
func (s *ReportService) Render(summary string) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, s.title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range buildStory(summary) {
		pdf.MultiCell(0, 6, unescapeMarkup(p.Markup), "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &buf, nil
}

// ReportFilename names the download after the detected document category.
func ReportFilename(category string) string {
	if category == "" {
		category = "Document"
	}
	return category + "_Summary.pdf"
}

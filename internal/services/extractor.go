package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"pitchlens/submission-evaluator/internal/models"
)

type DocumentFormat string

const (
	FormatPDF          DocumentFormat = "pdf"
	FormatPresentation DocumentFormat = "presentation"
)

// ExtractedDocument is the in-memory result of text extraction. It is
// consumed once by the orchestrator and not persisted on its own.
type ExtractedDocument struct {
	Text  string
	Stats models.ExtractionStats
}

type TextExtractor interface {
	Extract(data []byte, format DocumentFormat) (*ExtractedDocument, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (x *textExtractor) Extract(data []byte, format DocumentFormat) (*ExtractedDocument, error) {
	var text string

	switch format {
	case FormatPDF:
		// Single pass, no retry. A corrupt PDF fails the request.
		extracted, err := extractPDFText(data)
		if err != nil {
			return nil, &ExtractionError{Format: "pdf", Err: err}
		}
		text = extracted
	case FormatPresentation:
		// Structured OOXML pass first; the byte heuristic is an
		// accepted best-effort result, not an error.
		extracted, err := extractSlideText(data)
		if err != nil {
			extracted = extractPrintableText(data)
		}
		text = extracted
	default:
		return nil, &ExtractionError{Format: string(format), Err: fmt.Errorf("unsupported document format")}
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	return &ExtractedDocument{
		Text:  text,
		Stats: computeStats(text),
	}, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
var notesPartPattern = regexp.MustCompile(`^ppt/notesSlides/notesSlide(\d+)\.xml$`)

// extractSlideText pulls the text runs out of the OOXML slide parts of
// a PPTX archive, slides in order, notes after their slide.
func extractSlideText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid OOXML archive: %w", err)
	}

	slides := map[int]*zip.File{}
	notes := map[int]*zip.File{}
	var order []int

	for _, file := range archive.File {
		if m := slidePartPattern.FindStringSubmatch(file.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slides[n] = file
			order = append(order, n)
		} else if m := notesPartPattern.FindStringSubmatch(file.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			notes[n] = file
		}
	}

	if len(slides) == 0 {
		return "", fmt.Errorf("no slide parts found in archive")
	}

	sort.Ints(order)

	var textBuilder strings.Builder
	for _, n := range order {
		slideText, err := readSlidePart(slides[n])
		if err != nil {
			continue
		}

		var notesText string
		if notesFile, ok := notes[n]; ok {
			if extracted, err := readSlidePart(notesFile); err == nil {
				notesText = strings.TrimSpace(extracted)
			}
		}

		// Slides with no text at all contribute nothing, so a deck of
		// blank slides still counts as empty content.
		if strings.TrimSpace(slideText) == "" && notesText == "" {
			continue
		}

		textBuilder.WriteString(fmt.Sprintf("--- Slide %d ---\n", n))
		textBuilder.WriteString(slideText)
		if notesText != "" {
			textBuilder.WriteString(fmt.Sprintf("[Slide Notes: %s]\n", notesText))
		}
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// readSlidePart collects the character data of every DrawingML text
// run (<a:t>) in a slide part.
func readSlidePart(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open slide part: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)

	var textBuilder strings.Builder
	inTextRun := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed slide XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inTextRun = false
			}
			// A paragraph end is a line break in the flat text
			if t.Name.Local == "p" && textBuilder.Len() > 0 {
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}

// extractPrintableText is the degraded path for presentation files the
// structured extractor cannot read: strip everything but letters,
// digits and common punctuation and collapse the runs of whitespace
// left behind.
func extractPrintableText(data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data))

	for _, b := range data {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			builder.WriteByte(b)
		case bytes.IndexByte([]byte(" .,!?;:'\"()-"), b) >= 0:
			builder.WriteByte(b)
		default:
			builder.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

func computeStats(text string) models.ExtractionStats {
	return models.ExtractionStats{
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
		LineCount: strings.Count(text, "\n") + 1,
	}
}

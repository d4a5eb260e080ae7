package service

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"CO-PO-Mapping-Backend/internal/model"
)

// ErrPdfExtraction marks a PDF that could not be read at all. A readable
// PDF with zero matching lines is not an error; the caller decides how to
// report an empty result.
var ErrPdfExtraction = errors.New("pdf extraction failed")

// Matches an optional question marker ("Q"/"Question"), a number and an
// optional punctuation separator; the remainder is the question text.
var questionLinePattern = regexp.MustCompile(`(?i)^\s*(?:q(?:uestion)?\s*)?(\d+)\s*[.):\-]?\s*(.*)$`)

var bulletPrefixes = []string{"•", "-", "*"}

// QuestionExtractor scans page text of an uploaded exam paper and keeps
// the lines that look like questions.
type QuestionExtractor struct {
	// Number of leading characters removed from a bullet line. The fixed
	// two-character offset mirrors the original behavior and mis-trims
	// bullets that are not followed by a space; kept configurable rather
	// than silently fixed.
	BulletStrip int
}

func NewQuestionExtractor() *QuestionExtractor {
	return &QuestionExtractor{BulletStrip: 2}
}

// Extract walks the PDF page by page, in order, and returns every line
// classified as a question together with its page number.
func (e *QuestionExtractor) Extract(data []byte) (questions []model.ExtractedQuestion, err error) {
	// The pdf library panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			questions = nil
			err = fmt.Errorf("%w: %v", ErrPdfExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPdfExtraction, err)
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPdfExtraction, pageNum, err)
		}
		questions = append(questions, e.scanPage(text, pageNum)...)
	}
	return questions, nil
}

func (e *QuestionExtractor) scanPage(text string, pageNum int) []model.ExtractedQuestion {
	var found []model.ExtractedQuestion
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if q, ok := e.classifyLine(line); ok {
			found = append(found, model.ExtractedQuestion{Text: q, Page: pageNum})
		}
	}
	return found
}

// classifyLine reports whether the line is a question and returns its text
// with the leading marker stripped.
func (e *QuestionExtractor) classifyLine(line string) (string, bool) {
	if m := questionLinePattern.FindStringSubmatch(line); m != nil {
		text := strings.TrimSpace(m[2])
		return text, text != ""
	}

	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			runes := []rune(line)
			if len(runes) <= e.BulletStrip {
				return "", false
			}
			text := strings.TrimSpace(string(runes[e.BulletStrip:]))
			return text, text != ""
		}
	}
	return "", false
}

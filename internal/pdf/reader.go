package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	errs "github.com/a3tai/resume-extractor/internal/errors"
)

const defaultMaxTextSize = 10 * 1024 * 1024 // 10MB text limit

// TextExtractor turns a PDF file into one string holding the text of every
// page in page order
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Reader extracts page text with github.com/ledongthuc/pdf
type Reader struct {
	maxFileSize int64
	maxTextSize int
	validator   *Validator
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: defaultMaxTextSize,
		validator:   NewValidator(maxFileSize),
	}
}

// ExtractText implements TextExtractor
func (r *Reader) ExtractText(ctx context.Context, path string) (string, error) {
	result, err := r.ReadFile(ctx, PDFReadFileRequest{Path: path})
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// ReadFile extracts text content from a PDF file. Pages are concatenated
// without separators. A document without a text layer yields empty content
// and no error.
func (r *Reader) ReadFile(ctx context.Context, req PDFReadFileRequest) (result *PDFReadFileResult, err error) {
	fileInfo, err := r.validator.checkFile(req.Path)
	if err != nil {
		return nil, errs.Unreadable(req.Path, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errs.Unreadable(req.Path, fmt.Errorf("pdf parser panic: %v", rec)).
				WithDiagnosis(r.validator.Diagnose(req.Path))
		}
	}()

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, errs.Unreadable(req.Path, fmt.Errorf("failed to open PDF: %w", err)).
			WithDiagnosis(r.validator.Diagnose(req.Path))
	}
	defer f.Close()

	content, err := r.extractTextContent(ctx, pdfReader)
	if err != nil {
		return nil, err
	}

	return &PDFReadFileResult{
		Content: content,
		Path:    req.Path,
		Pages:   pdfReader.NumPage(),
		Size:    fileInfo.Size(),
	}, nil
}

// extractTextContent concatenates the plain text of every page
func (r *Reader) extractTextContent(ctx context.Context, pdfReader *pdf.Reader) (string, error) {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(truncateUTF8(content, remaining))
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)
	}

	return CleanText(builder.String()), nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CleanText applies NFKC normalization so ligatures and full-width forms
// emitted by PDF fonts become plain characters
func CleanText(text string) string {
	return norm.NFKC.String(text)
}

package pdf

import (
	"context"
	"fmt"

	"code.sajari.com/docconv"

	errs "github.com/a3tai/resume-extractor/internal/errors"
)

// DocconvReader extracts text with code.sajari.com/docconv, which shells out
// to pdftotext. It handles some documents ledongthuc cannot decode.
type DocconvReader struct {
	validator *Validator
}

// NewDocconvReader creates a docconv backed extractor
func NewDocconvReader(maxFileSize int64) *DocconvReader {
	return &DocconvReader{validator: NewValidator(maxFileSize)}
}

// ExtractText implements TextExtractor
func (d *DocconvReader) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := d.validator.checkFile(path); err != nil {
		return "", errs.Unreadable(path, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", errs.Unreadable(path, fmt.Errorf("docconv: %w", err)).
			WithDiagnosis(d.validator.Diagnose(path))
	}

	return CleanText(res.Body), nil
}

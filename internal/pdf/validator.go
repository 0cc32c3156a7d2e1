package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfHeader = []byte("%PDF-")

// Validator handles PDF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs validation on a PDF file. Validation problems are
// reported in the result, not as an error.
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	if _, err := v.checkFile(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	if diagnosis := v.Diagnose(req.Path); diagnosis != "" {
		result.Message = diagnosis
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// checkFile performs the cheap checks that do not parse the document
func (v *Validator) checkFile(filePath string) (os.FileInfo, error) {
	if filePath == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return fileInfo, nil
}

// Diagnose explains why a document cannot be read. It returns an empty
// string when pdfcpu accepts the file.
func (v *Validator) Diagnose(filePath string) string {
	ok, err := hasPDFHeader(filePath)
	if err != nil {
		return err.Error()
	}
	if !ok {
		return "missing %PDF header, file is not a PDF"
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(filePath, conf); err != nil {
		return fmt.Sprintf("pdfcpu validation failed: %v", err)
	}

	return ""
}

// hasPDFHeader reports whether the file starts with the %PDF- marker
func hasPDFHeader(filePath string) (bool, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(pdfHeader))
	if _, err := io.ReadFull(f, head); err != nil {
		return false, nil //nolint:nilerr // Short files simply lack the header
	}

	return bytes.Equal(head, pdfHeader), nil
}

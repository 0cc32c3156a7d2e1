package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const pdfExtension = ".pdf"

// Search handles PDF discovery in a folder
type Search struct{}

// NewSearch creates a new PDF search handler
func NewSearch() *Search {
	return &Search{}
}

// SearchDirectory lists the immediate children of a directory whose names end
// in ".pdf". Matching is case-sensitive unless IgnoreCase is set. Files are
// not opened or validated here so every match reaches the record builder.
func (s *Search) SearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	entries, err := os.ReadDir(absDirectory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	pdfFiles := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsPDFName(entry.Name(), req.IgnoreCase) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// The entry vanished between listing and stat; keep it so it
			// still yields a failed record downstream.
			pdfFiles = append(pdfFiles, FileInfo{
				Path: filepath.Join(absDirectory, entry.Name()),
				Name: entry.Name(),
			})
			continue
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         filepath.Join(absDirectory, entry.Name()),
			Name:         entry.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	return &PDFSearchDirectoryResult{
		Files:      pdfFiles,
		TotalCount: len(pdfFiles),
		Directory:  absDirectory,
	}, nil
}

// IsPDFName reports whether a file name carries the .pdf extension
func IsPDFName(name string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.HasSuffix(strings.ToLower(name), pdfExtension)
	}
	return strings.HasSuffix(name, pdfExtension)
}

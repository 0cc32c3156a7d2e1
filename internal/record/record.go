package record

import (
	"path/filepath"
)

const (
	// NotFound marks a field the extractors could not locate
	NotFound = "Not Found"

	// ExtractionFailed marks every field of a document that could not be read
	ExtractionFailed = "Extraction Failed"
)

// Status summarizes how a document was processed
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoText Status = "no_text"
	StatusFailed Status = "failed"
)

// Record is the flat set of fields extracted from one document
type Record struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Filename   string   `json:"filename"`

	Path   string `json:"path"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RecordSet is the ordered result of a batch run
type RecordSet []Record

// New returns a record for path with every scalar field set to NotFound
func New(path string) Record {
	return Record{
		Name:       NotFound,
		Email:      NotFound,
		Phone:      NotFound,
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Filename:   filepath.Base(path),
		Path:       path,
		Status:     StatusOK,
	}
}

// Failed returns a record for a document that could not be read
func Failed(path string, err error) Record {
	r := New(path)
	r.Name = ExtractionFailed
	r.Email = ExtractionFailed
	r.Phone = ExtractionFailed
	r.Status = StatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// NoText returns a record for a document without a text layer. err, when
// set, replaces the default error text.
func NoText(path string, err error) Record {
	r := New(path)
	r.Status = StatusNoText
	r.Error = "no text content could be extracted"
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Succeeded reports whether fields were extracted from the document
func (r Record) Succeeded() bool {
	return r.Status == StatusOK
}

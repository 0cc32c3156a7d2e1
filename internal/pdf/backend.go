package pdf

import "fmt"

// Backend names a text extraction library
type Backend string

const (
	BackendLedongthuc Backend = "ledongthuc"
	BackendDocconv    Backend = "docconv"
)

// Backends lists the supported backends
func Backends() []Backend {
	return []Backend{BackendLedongthuc, BackendDocconv}
}

// NewTextExtractor creates the extractor for the named backend
func NewTextExtractor(backend Backend, maxFileSize int64) (TextExtractor, error) {
	switch backend {
	case BackendLedongthuc, "":
		return NewReader(maxFileSize), nil
	case BackendDocconv:
		return NewDocconvReader(maxFileSize), nil
	default:
		return nil, fmt.Errorf("unknown text backend: %s", backend)
	}
}

package batch

import (
	"github.com/a3tai/resume-extractor/internal/record"
)

// Summary counts records by status
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	NoText    int `json:"no_text"`
	Failed    int `json:"failed"`
}

// Summarize tallies a record set
func Summarize(records record.RecordSet) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case record.StatusOK:
			s.Succeeded++
		case record.StatusNoText:
			s.NoText++
		case record.StatusFailed:
			s.Failed++
		}
	}
	return s
}

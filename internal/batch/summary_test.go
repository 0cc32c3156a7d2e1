package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/resume-extractor/internal/record"
)

func TestSummarize(t *testing.T) {
	records := record.RecordSet{
		record.New("a.pdf"),
		record.New("b.pdf"),
		record.NoText("c.pdf", nil),
		record.Failed("d.pdf", nil),
	}

	assert.Equal(t, Summary{Total: 4, Succeeded: 2, NoText: 1, Failed: 1}, Summarize(records))
	assert.Equal(t, Summary{}, Summarize(nil))
}

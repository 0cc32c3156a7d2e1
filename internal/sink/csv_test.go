package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/a3tai/resume-extractor/internal/errors"
	"github.com/a3tai/resume-extractor/internal/record"
)

func sampleRecord(name string) record.Record {
	r := record.New("/cvs/" + strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".pdf")
	r.Name = name
	r.Email = "someone@example.com"
	r.Skills = []string{"data", "management"}
	r.Experience = []string{"Two years of experience, mostly backend."}
	r.Education = []string{"BS from FAST.", "Studied at college."}
	return r
}

func TestCSVSink_Append(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaExtended, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, sink.Append(path, sampleRecord("John Smith")))
	require.NoError(t, sink.Append(path, sampleRecord("Jane Doe")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,email,phone,skills,experience,education,filename", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "John Smith,"))
	assert.True(t, strings.HasPrefix(lines[2], "Jane Doe,"))
}

func TestCSVSink_AppendToEmptyFile(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaMinimal, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	require.NoError(t, sink.Append(path, sampleRecord("John Smith")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,email,phone,filename\nJohn Smith,someone@example.com,Not Found,john_smith.pdf\n", string(data))
}

func TestCSVSink_AppendHeaderMismatch(t *testing.T) {
	tests := []struct {
		name          string
		schema        record.Schema
		includeStatus bool
	}{
		{name: "minimal onto extended", schema: record.SchemaMinimal, includeStatus: false},
		{name: "status columns toggled", schema: record.SchemaExtended, includeStatus: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing, err := NewCSVSink(record.SchemaExtended, false)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "out.csv")
			require.NoError(t, existing.Append(path, sampleRecord("John Smith")))
			before, err := os.ReadFile(path)
			require.NoError(t, err)

			other, err := NewCSVSink(tt.schema, tt.includeStatus)
			require.NoError(t, err)

			err = other.Append(path, sampleRecord("Jane Doe"))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.KindWriteFailure))
			assert.Contains(t, err.Error(), "does not match columns")

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestCSVSink_AppendToForeignFile(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaMinimal, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,score\n1,2\n"), 0644))

	err = sink.Append(path, sampleRecord("John Smith"))
	assert.True(t, errs.Is(err, errs.KindWriteFailure))
}

func TestCSVSink_WriteAllTruncates(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaExtended, true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0644))

	records := record.RecordSet{
		sampleRecord("John Smith"),
		record.Failed("/cvs/broken.pdf", assert.AnError),
	}
	require.NoError(t, sink.WriteAll(path, records))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "John Smith", got[0].Name)
	assert.Equal(t, []string{"data", "management"}, got[0].Skills)
	assert.Equal(t, []string{"Two years of experience, mostly backend."}, got[0].Experience)
	assert.Equal(t, []string{"BS from FAST.", "Studied at college."}, got[0].Education)
	assert.Equal(t, record.StatusOK, got[0].Status)

	assert.Equal(t, record.ExtractionFailed, got[1].Name)
	assert.Equal(t, record.StatusFailed, got[1].Status)
	assert.Equal(t, assert.AnError.Error(), got[1].Error)
	assert.Empty(t, got[1].Skills)
}

func TestCSVSink_WriteQuotesDelimiters(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaMinimal, false)
	require.NoError(t, err)

	r := sampleRecord("John Smith")
	r.Name = `Smith, "JJ"`

	var buf bytes.Buffer
	require.NoError(t, sink.Write(&buf, record.RecordSet{r}, false))
	assert.Equal(t, "\"Smith, \"\"JJ\"\"\",someone@example.com,Not Found,john_smith.pdf\n", buf.String())
}

func TestCSVSink_WriteFailure(t *testing.T) {
	sink, err := NewCSVSink(record.SchemaMinimal, false)
	require.NoError(t, err)

	missingDir := filepath.Join(t.TempDir(), "missing", "out.csv")

	err = sink.WriteAll(missingDir, record.RecordSet{sampleRecord("John Smith")})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindWriteFailure))

	err = sink.Append(missingDir, sampleRecord("John Smith"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindWriteFailure))
}

func TestNewCSVSink_UnknownSchema(t *testing.T) {
	_, err := NewCSVSink("wide", false)
	assert.Error(t, err)
}

// Package sink persists extracted records as CSV.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	errs "github.com/a3tai/resume-extractor/internal/errors"
	"github.com/a3tai/resume-extractor/internal/record"
)

// CSVSink writes records with a fixed column layout
type CSVSink struct {
	columns []string
}

// NewCSVSink creates a sink for the given schema
func NewCSVSink(schema record.Schema, includeStatus bool) (*CSVSink, error) {
	cols, err := record.Columns(schema, includeStatus)
	if err != nil {
		return nil, err
	}
	return &CSVSink{columns: cols}, nil
}

// Columns returns the header written by the sink
func (s *CSVSink) Columns() []string {
	return append([]string(nil), s.columns...)
}

// WriteAll replaces the file at path with a header and one row per record
func (s *CSVSink) WriteAll(path string, records record.RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.WriteFailure(path, err)
	}

	if err := s.write(f, records, true); err != nil {
		f.Close()
		return errs.WriteFailure(path, err)
	}

	if err := f.Close(); err != nil {
		return errs.WriteFailure(path, err)
	}
	return nil
}

// Append adds rows to the file at path, creating it with a header when it
// does not exist or is empty. A non-empty file must start with the sink's
// header.
func (s *CSVSink) Append(path string, records ...record.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return errs.WriteFailure(path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return errs.WriteFailure(path, err)
	}

	if info.Size() > 0 {
		if err := s.checkHeader(f); err != nil {
			f.Close()
			return errs.WriteFailure(path, err)
		}
	}

	if err := s.write(f, records, info.Size() == 0); err != nil {
		f.Close()
		return errs.WriteFailure(path, err)
	}

	if err := f.Close(); err != nil {
		return errs.WriteFailure(path, err)
	}
	return nil
}

func (s *CSVSink) checkHeader(r io.Reader) error {
	header, err := csv.NewReader(r).Read()
	if err != nil {
		return fmt.Errorf("failed to read existing header: %w", err)
	}
	if !slices.Equal(header, s.columns) {
		return fmt.Errorf("existing header %q does not match columns %q",
			strings.Join(header, ","), strings.Join(s.columns, ","))
	}
	return nil
}

// Write encodes records to w, with a leading header when header is set
func (s *CSVSink) Write(w io.Writer, records record.RecordSet, header bool) error {
	return s.write(w, records, header)
}

func (s *CSVSink) write(w io.Writer, records []record.Record, header bool) error {
	cw := csv.NewWriter(w)

	if header {
		if err := cw.Write(s.columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, r := range records {
		row, err := r.Row(s.columns)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Filename, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses a CSV file written by the sink back into records. Lists are
// split on the separators used when writing.
func Read(path string) (record.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return record.RecordSet{}, nil
	}

	header := rows[0]
	out := make(record.RecordSet, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var r record.Record
		for i, col := range header {
			if i >= len(row) {
				break
			}
			v := row[i]
			switch col {
			case record.ColumnName:
				r.Name = v
			case record.ColumnEmail:
				r.Email = v
			case record.ColumnPhone:
				r.Phone = v
			case record.ColumnSkills:
				r.Skills = record.SplitList(v, record.SkillsSeparator)
			case record.ColumnExperience:
				r.Experience = record.SplitList(v, record.SentenceSeparator)
			case record.ColumnEducation:
				r.Education = record.SplitList(v, record.SentenceSeparator)
			case record.ColumnFilename:
				r.Filename = v
			case record.ColumnStatus:
				r.Status = record.Status(v)
			case record.ColumnError:
				r.Error = v
			}
		}
		out = append(out, r)
	}
	return out, nil
}

package record

import (
	"fmt"
	"strings"
)

const (
	// SkillsSeparator joins the skills list in serialized form
	SkillsSeparator = ", "

	// SentenceSeparator joins experience and education sentences
	SentenceSeparator = " | "
)

// Schema names a column layout for serialized records
type Schema string

const (
	SchemaMinimal  Schema = "minimal"
	SchemaExtended Schema = "extended"
)

// Column names
const (
	ColumnName       = "name"
	ColumnEmail      = "email"
	ColumnPhone      = "phone"
	ColumnSkills     = "skills"
	ColumnExperience = "experience"
	ColumnEducation  = "education"
	ColumnFilename   = "filename"
	ColumnStatus     = "status"
	ColumnError      = "error"
)

// Columns returns the header for a schema, optionally followed by the
// status and error columns
func Columns(schema Schema, includeStatus bool) ([]string, error) {
	var cols []string
	switch schema {
	case SchemaMinimal:
		cols = []string{ColumnName, ColumnEmail, ColumnPhone, ColumnFilename}
	case SchemaExtended, "":
		cols = []string{ColumnName, ColumnEmail, ColumnPhone, ColumnSkills, ColumnExperience, ColumnEducation, ColumnFilename}
	default:
		return nil, fmt.Errorf("unknown column schema: %s", schema)
	}

	if includeStatus {
		cols = append(cols, ColumnStatus, ColumnError)
	}
	return cols, nil
}

// Value returns the serialized value of one column
func (r Record) Value(column string) (string, error) {
	switch column {
	case ColumnName:
		return r.Name, nil
	case ColumnEmail:
		return r.Email, nil
	case ColumnPhone:
		return r.Phone, nil
	case ColumnSkills:
		return JoinList(r.Skills, SkillsSeparator), nil
	case ColumnExperience:
		return JoinList(r.Experience, SentenceSeparator), nil
	case ColumnEducation:
		return JoinList(r.Education, SentenceSeparator), nil
	case ColumnFilename:
		return r.Filename, nil
	case ColumnStatus:
		return string(r.Status), nil
	case ColumnError:
		return r.Error, nil
	default:
		return "", fmt.Errorf("unknown column: %s", column)
	}
}

// Row serializes the record in column order
func (r Record) Row(columns []string) ([]string, error) {
	row := make([]string, len(columns))
	for i, col := range columns {
		v, err := r.Value(col)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// JoinList flattens a list field for storage
func JoinList(values []string, sep string) string {
	return strings.Join(values, sep)
}

// SplitList reverses JoinList. The round trip is exact only when no value
// contains sep.
func SplitList(value, sep string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, sep)
}

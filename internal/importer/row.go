package importer

import (
	"errors"
	"fmt"
	"strings"
)

// Column names of the import file format. The template header uses them verbatim.
const (
	FieldText               = "text"
	FieldType               = "type"
	FieldDifficulty         = "difficulty"
	FieldPoints             = "points"
	FieldNegativePoints     = "negativePoints"
	FieldSubject            = "subject"
	FieldCorrectExplanation = "correctExplanation"
	FieldWrongExplanation   = "wrongExplanation"
	FieldTags               = "tags"
	FieldYear               = "year"
	FieldSource             = "source"
)

// AnswerField returns the column name of the n-th answer (1-based).
func AnswerField(n int) string {
	return fmt.Sprintf("answer%d", n)
}

// AnswerCorrectField returns the column name of the n-th correctness marker (1-based).
func AnswerCorrectField(n int) string {
	return fmt.Sprintf("answer%dCorrect", n)
}

// ErrEmptyFile is returned when a file has no non-blank line to use as header.
var ErrEmptyFile = errors.New("file has no header row")

// ImportRow maps header names to trimmed values for one data line.
type ImportRow map[string]string

// Get returns the value of a field, or "" when the column is absent.
func (r ImportRow) Get(field string) string {
	return r[field]
}

// Materialize zips header names with the values of one data line.
// Positions missing from values default to the empty string.
func Materialize(header, values RawRow) ImportRow {
	row := make(ImportRow, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value := ""
		if i < len(values) {
			value = strings.TrimSpace(values[i])
		}
		row[name] = value
	}
	return row
}

// NumberedRow is an ImportRow together with the line number shown to operators.
type NumberedRow struct {
	Number int
	Data   ImportRow
}

// ParsedFile is the header plus the numbered data rows of one file.
type ParsedFile struct {
	Header RawRow
	Rows   []NumberedRow
}

// Parse tokenizes file content. Whitespace-only lines are dropped first; the
// first remaining line is the header and data rows are numbered from 2 over
// the remaining lines, so blank lines leave no gaps.
func Parse(text string) (*ParsedFile, error) {
	var lines []string
	for _, line := range SplitLines(text) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	parsed := &ParsedFile{Header: SplitLine(lines[0])}
	for index, line := range lines[1:] {
		parsed.Rows = append(parsed.Rows, NumberedRow{
			Number: index + 2,
			Data:   Materialize(parsed.Header, SplitLine(line)),
		})
	}

	return parsed, nil
}

// ParseRecords is Parse for input that is already split into cells, such as
// spreadsheet rows. Rows with only blank cells are dropped before numbering.
func ParseRecords(records [][]string) (*ParsedFile, error) {
	var kept [][]string
	for _, record := range records {
		if !isBlankRecord(record) {
			kept = append(kept, record)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyFile
	}

	parsed := &ParsedFile{Header: RawRow(kept[0])}
	for index, record := range kept[1:] {
		parsed.Rows = append(parsed.Rows, NumberedRow{
			Number: index + 2,
			Data:   Materialize(parsed.Header, RawRow(record)),
		})
	}

	return parsed, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize(t *testing.T) {
	header := RawRow{" text ", "type", "difficulty", "answer1"}
	row := Materialize(header, RawRow{"  Una domanda lunga  ", "OPEN_TEXT"})

	assert.Equal(t, "Una domanda lunga", row.Get(FieldText))
	assert.Equal(t, "OPEN_TEXT", row.Get(FieldType))
	assert.Equal(t, "", row.Get(FieldDifficulty))
	assert.Equal(t, "", row.Get("answer1"))
	assert.Equal(t, "", row.Get("notAColumn"))
	assert.Len(t, row, 4)
}

func TestParse_RowNumbersSkipBlankLines(t *testing.T) {
	text := "text,type\nfirst question,OPEN_TEXT\n\n   \nsecond question,OPEN_TEXT\n"

	parsed, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 2)

	assert.Equal(t, 2, parsed.Rows[0].Number)
	assert.Equal(t, "first question", parsed.Rows[0].Data.Get(FieldText))
	assert.Equal(t, 3, parsed.Rows[1].Number)
	assert.Equal(t, "second question", parsed.Rows[1].Data.Get(FieldText))
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse("\n   \n\r\n")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_LeadingBlankLinesBeforeHeader(t *testing.T) {
	parsed, err := Parse("\n  \ntext,type\nprima domanda,OPEN_TEXT\n")
	require.NoError(t, err)

	assert.Equal(t, RawRow{"text", "type"}, parsed.Header)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, 2, parsed.Rows[0].Number)
	assert.Equal(t, "prima domanda", parsed.Rows[0].Data.Get(FieldText))
}

func TestParse_HeaderOnly(t *testing.T) {
	parsed, err := Parse("text,type,difficulty\n")
	require.NoError(t, err)
	assert.Empty(t, parsed.Rows)
}

func TestParseRecords(t *testing.T) {
	records := [][]string{
		{"text", "type"},
		{"prima domanda", "OPEN_TEXT"},
		{"", "  "},
		{"terza domanda"},
	}

	parsed, err := ParseRecords(records)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, 2, parsed.Rows[0].Number)
	assert.Equal(t, 3, parsed.Rows[1].Number)
	assert.Equal(t, "", parsed.Rows[1].Data.Get(FieldType))

	_, err = ParseRecords(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	parsed, err = ParseRecords([][]string{{"", ""}, {"text", "type"}, {"prima domanda", "OPEN_TEXT"}})
	require.NoError(t, err)
	assert.Equal(t, RawRow{"text", "type"}, parsed.Header)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, 2, parsed.Rows[0].Number)
}

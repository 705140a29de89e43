package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceRow(questionType string, answers ...[2]string) ImportRow {
	row := ImportRow{
		FieldText:       "Quale di queste risposte è corretta?",
		FieldType:       questionType,
		FieldDifficulty: "medium",
	}
	for i, a := range answers {
		row[AnswerField(i+1)] = a[0]
		row[AnswerCorrectField(i+1)] = a[1]
	}
	return row
}

func TestIsCorrectMarker(t *testing.T) {
	for _, m := range []string{"true", "TRUE", "True", "1", "si", "SI", "sì", "SÌ", " true "} {
		assert.True(t, IsCorrectMarker(m), m)
	}
	for _, m := range []string{"", "false", "0", "no", "yes", "x", "vero"} {
		assert.False(t, IsCorrectMarker(m), m)
	}
}

func TestParseQuestionTypeAndDifficulty(t *testing.T) {
	qt, ok := ParseQuestionType("single_choice")
	assert.True(t, ok)
	assert.Equal(t, "SINGLE_CHOICE", string(qt))

	_, ok = ParseQuestionType("TRUE_FALSE")
	assert.False(t, ok)

	d, ok := ParseDifficulty("Hard")
	assert.True(t, ok)
	assert.Equal(t, "HARD", string(d))

	_, ok = ParseDifficulty("extreme")
	assert.False(t, ok)
}

func TestValidate_SingleChoiceRequiresExactlyOneCorrect(t *testing.T) {
	v := NewValidator(Options{})
	row := choiceRow("SINGLE_CHOICE", [2]string{"A", "true"}, [2]string{"B", "true"})

	result := v.Validate(row, 2)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "esattamente 1")
}

func TestValidate_MultipleChoiceMinimumOneCorrect(t *testing.T) {
	v := NewValidator(Options{})

	ok := v.Validate(choiceRow("MULTIPLE_CHOICE",
		[2]string{"A", "si"}, [2]string{"B", "no"}, [2]string{"C", "no"}), 2)
	assert.True(t, ok.IsValid)
	assert.Empty(t, ok.Errors)

	none := v.Validate(choiceRow("MULTIPLE_CHOICE",
		[2]string{"A", "no"}, [2]string{"B", "no"}), 3)
	assert.False(t, none.IsValid)
	assert.Contains(t, none.Errors[0], "almeno 1")
}

func TestValidate_ChoiceNeedsTwoAnswers(t *testing.T) {
	v := NewValidator(Options{})
	result := v.Validate(choiceRow("SINGLE_CHOICE", [2]string{"Solo una", "true"}), 2)

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "almeno 2")
}

func TestValidate_AnswersWithoutTextAreIgnored(t *testing.T) {
	v := NewValidator(Options{})
	row := choiceRow("SINGLE_CHOICE", [2]string{"A", "true"}, [2]string{"", "true"}, [2]string{"C", "false"})

	result := v.Validate(row, 2)
	assert.True(t, result.IsValid, result.Errors)
}

func TestValidate_OpenTextSkipsAnswerRules(t *testing.T) {
	v := NewValidator(Options{})
	row := ImportRow{
		FieldText:       "Descrivi il ciclo dell'acqua.",
		FieldType:       "open_text",
		FieldDifficulty: "HARD",
	}

	result := v.Validate(row, 2)
	assert.True(t, result.IsValid)

	// Even with other errors present, no answer-set errors appear.
	row[FieldText] = "corto"
	result = v.Validate(row, 2)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.NotContains(t, result.Errors[0], "risposte")
}

func TestValidate_AccumulatesErrorsInOrder(t *testing.T) {
	v := NewValidator(Options{})
	result := v.Validate(ImportRow{FieldType: "bogus", FieldDifficulty: "impossible"}, 7)

	assert.Equal(t, 7, result.RowNumber)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "testo")
	assert.Contains(t, result.Errors[1], "Tipo")
	assert.Contains(t, result.Errors[2], "Difficoltà")
}

func TestValidate_TextLengthCountsCharacters(t *testing.T) {
	v := NewValidator(Options{})
	row := ImportRow{FieldType: "OPEN_TEXT", FieldDifficulty: "EASY"}

	row[FieldText] = "àèìòùàèìò" // 9 characters, 18 bytes
	assert.False(t, v.Validate(row, 2).IsValid)

	row[FieldText] = "àèìòùàèìòù"
	assert.True(t, v.Validate(row, 2).IsValid)
}

func TestValidate_IsTotal(t *testing.T) {
	v := NewValidator(Options{StrictNumeric: true})
	rows := []ImportRow{
		nil,
		{},
		{FieldText: strings.Repeat("x", 10000)},
		{FieldType: "MULTIPLE_CHOICE"},
		{FieldType: "SINGLE_CHOICE", AnswerField(1): "a", AnswerCorrectField(1): "\x00"},
		{FieldPoints: "abc", FieldYear: "?", FieldNegativePoints: "--"},
	}

	for i, row := range rows {
		assert.NotPanics(t, func() {
			result := v.Validate(row, i+2)
			assert.Equal(t, len(result.Errors) == 0, result.IsValid)
		})
	}
}

func TestValidate_NumericWarningsAndStrictMode(t *testing.T) {
	row := ImportRow{
		FieldText:           "Spiega il teorema di Pitagora.",
		FieldType:           "OPEN_TEXT",
		FieldDifficulty:     "EASY",
		FieldPoints:         "uno",
		FieldNegativePoints: "-0,25",
		FieldYear:           "duemila",
	}

	lenient := NewValidator(Options{}).Validate(row, 2)
	assert.True(t, lenient.IsValid)
	assert.Len(t, lenient.Warnings, 2)

	strict := NewValidator(Options{StrictNumeric: true}).Validate(row, 2)
	assert.False(t, strict.IsValid)
	assert.Len(t, strict.Errors, 2)
	assert.Empty(t, strict.Warnings)
}

func TestValidate_NonFiniteNumbersAreNotNumeric(t *testing.T) {
	row := ImportRow{
		FieldText:           "Spiega il teorema di Pitagora.",
		FieldType:           "OPEN_TEXT",
		FieldDifficulty:     "EASY",
		FieldPoints:         "NaN",
		FieldNegativePoints: "Inf",
		FieldYear:           "-1",
	}

	lenient := NewValidator(Options{}).Validate(row, 2)
	assert.True(t, lenient.IsValid)
	assert.Len(t, lenient.Warnings, 3)

	strict := NewValidator(Options{StrictNumeric: true}).Validate(row, 2)
	assert.False(t, strict.IsValid)
	assert.Len(t, strict.Errors, 3)
}

func TestValidate_LengthBounds(t *testing.T) {
	v := NewValidator(Options{})
	base := func() ImportRow {
		return ImportRow{
			FieldText:       "Spiega il teorema di Pitagora.",
			FieldType:       "OPEN_TEXT",
			FieldDifficulty: "EASY",
		}
	}

	tests := []struct {
		name  string
		field string
		value string
		valid bool
	}{
		{"subject at limit", FieldSubject, strings.Repeat("s", 255), true},
		{"subject too long", FieldSubject, strings.Repeat("s", 256), false},
		{"tag at limit", FieldTags, "geo," + strings.Repeat("t", 64), true},
		{"tag too long", FieldTags, "geo," + strings.Repeat("t", 70), false},
		{"source counts characters", FieldSource, strings.Repeat("è", 255), true},
		{"source too long", FieldSource, strings.Repeat("f", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := base()
			row[tt.field] = tt.value
			result := v.Validate(row, 2)
			assert.Equal(t, tt.valid, result.IsValid, result.Errors)
		})
	}
}

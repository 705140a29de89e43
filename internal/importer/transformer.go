package importer

import (
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

const (
	DefaultPoints         = 1.0
	DefaultNegativePoints = 0.0
)

// CorrectAnswerLetters returns the letters (A..E) of the answers marked correct,
// joined by commas in column order. Absent answers never contribute a letter.
func CorrectAnswerLetters(row ImportRow) string {
	var letters []string
	for _, c := range Candidates(row) {
		if c.IsCorrect() {
			letters = append(letters, models.AnswerLetters[c.Position-1])
		}
	}
	return strings.Join(letters, ",")
}

// Transform maps a validated row to the creation schema. Numeric columns fall
// back to defaults when they cannot be parsed.
func Transform(row ImportRow) models.CreateQuestionRequest {
	questionType, _ := ParseQuestionType(row.Get(FieldType))
	difficulty, _ := ParseDifficulty(row.Get(FieldDifficulty))

	req := models.CreateQuestionRequest{
		Title:              row.Get(FieldText),
		Type:               questionType,
		Difficulty:         difficulty,
		Points:             parseFloatOr(row.Get(FieldPoints), DefaultPoints),
		NegativePoints:     parseFloatOr(row.Get(FieldNegativePoints), DefaultNegativePoints),
		Subject:            row.Get(FieldSubject),
		CorrectExplanation: optional(row.Get(FieldCorrectExplanation)),
		WrongExplanation:   optional(row.Get(FieldWrongExplanation)),
		Tags:               splitTags(row.Get(FieldTags)),
		Year:               parseYear(row.Get(FieldYear)),
		Source:             optional(row.Get(FieldSource)),
	}

	answers := []**string{&req.AnswerA, &req.AnswerB, &req.AnswerC, &req.AnswerD, &req.AnswerE}
	for i, slot := range answers {
		*slot = optional(row.Get(AnswerField(i + 1)))
	}

	if questionType.IsChoice() {
		req.CorrectAnswers = CorrectAnswerLetters(row)
	}

	return req
}

// TransformAll maps every row in order.
func TransformAll(rows []ImportRow) []models.CreateQuestionRequest {
	requests := make([]models.CreateQuestionRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, Transform(row))
	}
	return requests
}

func parseNumber(value string) (float64, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseFloatOr(value string, fallback float64) float64 {
	if f, ok := parseNumber(value); ok {
		return f
	}
	return fallback
}

// parseYear returns nil for anything that is not a non-negative integer.
func parseYear(value string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year < 0 {
		return nil
	}
	return &year
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

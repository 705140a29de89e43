package validator

import (
	"errors"
	"testing"

	apperrors "github.com/SAP-F-2025/question-import-service/internal/errors"
	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validChoice() models.CreateQuestionRequest {
	return models.CreateQuestionRequest{
		Title:          "Qual è la formula dell'acqua?",
		Type:           models.SingleChoice,
		Difficulty:     models.DifficultyEasy,
		Points:         1,
		NegativePoints: -0.25,
		AnswerA:        strPtr("H2O"),
		AnswerB:        strPtr("CO2"),
		CorrectAnswers: "A",
	}
}

func TestParseAnswerLetters(t *testing.T) {
	indexes, ok := ParseAnswerLetters("A,C,E")
	assert.True(t, ok)
	assert.Equal(t, []int{0, 2, 4}, indexes)

	indexes, ok = ParseAnswerLetters("")
	assert.True(t, ok)
	assert.Empty(t, indexes)

	for _, bad := range []string{"F", "a", "A,A", "C,A", "AB", "A,,B"} {
		_, ok := ParseAnswerLetters(bad)
		assert.False(t, ok, bad)
	}
}

func TestValidateRequest(t *testing.T) {
	v := New()

	req := validChoice()
	assert.NoError(t, v.Question().ValidateRequest(&req))

	open := models.CreateQuestionRequest{
		Title:      "Descrivi la fotosintesi clorofilliana.",
		Type:       models.OpenText,
		Difficulty: models.DifficultyHard,
	}
	assert.NoError(t, v.Question().ValidateRequest(&open))
}

func TestValidateRequest_StructTags(t *testing.T) {
	v := New()

	req := validChoice()
	req.Type = "TRUE_FALSE"
	req.Title = "corto"

	err := v.Question().ValidateRequest(&req)
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	rules := map[string]bool{}
	for _, e := range verrs {
		rules[e.Rule] = true
	}
	assert.True(t, rules["min"])
	assert.True(t, rules["question_type"])
}

func TestValidateRequest_AnswerRules(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mutate func(r *models.CreateQuestionRequest)
	}{
		{"one answer", func(r *models.CreateQuestionRequest) { r.AnswerB = nil }},
		{"no correct answer", func(r *models.CreateQuestionRequest) { r.CorrectAnswers = "" }},
		{"two correct for single choice", func(r *models.CreateQuestionRequest) { r.CorrectAnswers = "A,B" }},
		{"correct letter without answer", func(r *models.CreateQuestionRequest) { r.CorrectAnswers = "D" }},
		{"open text with letters", func(r *models.CreateQuestionRequest) { r.Type = models.OpenText }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validChoice()
			tt.mutate(&req)
			assert.Error(t, v.Question().ValidateRequest(&req))
		})
	}

	req := validChoice()
	req.Type = models.MultipleChoice
	req.CorrectAnswers = "A,B"
	assert.NoError(t, v.Question().ValidateRequest(&req))
}

func TestValidateBatch(t *testing.T) {
	v := New()

	assert.Error(t, v.Question().ValidateBatch(&models.CreateManyRequest{}))

	bad := validChoice()
	bad.CorrectAnswers = ""
	err := v.Question().ValidateBatch(&models.CreateManyRequest{
		Questions: []models.CreateQuestionRequest{validChoice(), bad},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 2")
}

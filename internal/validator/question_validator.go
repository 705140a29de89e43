package validator

import (
	"fmt"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct {
	parent *Validator
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(parent *Validator) *QuestionValidator {
	return &QuestionValidator{parent: parent}
}

// ValidateRequest validates one creation request: struct tags first, then the
// answer-set rules tags cannot express.
func (v *QuestionValidator) ValidateRequest(req *models.CreateQuestionRequest) error {
	if err := v.parent.Validate(req); err != nil {
		return err
	}

	if !req.Type.IsChoice() {
		if req.CorrectAnswers != "" {
			return fmt.Errorf("%s questions cannot declare correct answers", req.Type)
		}
		return nil
	}

	answers := req.Answers()
	present := 0
	for _, answer := range answers {
		if answer != nil && *answer != "" {
			present++
		}
	}
	if present < 2 {
		return fmt.Errorf("must have at least 2 answers")
	}

	indexes, _ := ParseAnswerLetters(req.CorrectAnswers)
	if len(indexes) == 0 {
		return fmt.Errorf("must have at least 1 correct answer")
	}
	if req.Type == models.SingleChoice && len(indexes) != 1 {
		return fmt.Errorf("single choice questions must have exactly 1 correct answer")
	}

	for _, index := range indexes {
		if answers[index] == nil || *answers[index] == "" {
			return fmt.Errorf("correct answer %s does not match any answer", models.AnswerLetters[index])
		}
	}

	return nil
}

// ValidateBatch validates a create-many request
func (v *QuestionValidator) ValidateBatch(req *models.CreateManyRequest) error {
	if len(req.Questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i := range req.Questions {
		if err := v.ValidateRequest(&req.Questions[i]); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

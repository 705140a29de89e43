package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/question-import-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	v := &Validator{structValidator: structValidator}
	v.questionValidator = NewQuestionValidator(v)
	return v
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("answer_letters", validateAnswerLetters)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.QuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validLevel := range models.DifficultyLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func validateAnswerLetters(fl validator.FieldLevel) bool {
	_, ok := ParseAnswerLetters(fl.Field().String())
	return ok
}

// ParseAnswerLetters splits "A,C" into answer indexes. Letters must be A..E,
// unique and in ascending order.
func ParseAnswerLetters(value string) ([]int, bool) {
	if value == "" {
		return nil, true
	}

	var indexes []int
	last := -1
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if len(part) != 1 || part[0] < 'A' || part[0] >= 'A'+byte(models.MaxAnswersPerItem) {
			return nil, false
		}
		index := int(part[0] - 'A')
		if index <= last {
			return nil, false
		}
		last = index
		indexes = append(indexes, index)
	}
	return indexes, true
}

package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

const (
	MinTextLength     = 10
	MinChoiceAnswers  = 2
	maxAnswerColumns  = 5
	allowedTypes      = "SINGLE_CHOICE, MULTIPLE_CHOICE, OPEN_TEXT"
	allowedDifficulty = "EASY, MEDIUM, HARD"
)

var correctMarkers = map[string]struct{}{
	"true": {},
	"1":    {},
	"si":   {},
	"sì":   {},
}

// IsCorrectMarker reports whether an answerNCorrect value marks the answer as correct.
func IsCorrectMarker(marker string) bool {
	_, ok := correctMarkers[strings.ToLower(strings.TrimSpace(marker))]
	return ok
}

// ParseQuestionType matches a type case-insensitively.
func ParseQuestionType(value string) (models.QuestionType, bool) {
	canonical := models.QuestionType(strings.ToUpper(strings.TrimSpace(value)))
	for _, t := range models.QuestionTypes {
		if t == canonical {
			return t, true
		}
	}
	return "", false
}

// ParseDifficulty matches a difficulty level case-insensitively.
func ParseDifficulty(value string) (models.DifficultyLevel, bool) {
	canonical := models.DifficultyLevel(strings.ToUpper(strings.TrimSpace(value)))
	for _, d := range models.DifficultyLevels {
		if d == canonical {
			return d, true
		}
	}
	return "", false
}

// AnswerCandidate is one answerN/answerNCorrect pair.
type AnswerCandidate struct {
	Position          int    `json:"position"`
	Text              string `json:"text"`
	CorrectnessMarker string `json:"correctness_marker"`
}

func (c AnswerCandidate) IsCorrect() bool {
	return IsCorrectMarker(c.CorrectnessMarker)
}

// Candidates returns the answers of a row whose text is non-empty, in column order.
func Candidates(row ImportRow) []AnswerCandidate {
	var candidates []AnswerCandidate
	for n := 1; n <= maxAnswerColumns; n++ {
		text := row.Get(AnswerField(n))
		if text == "" {
			continue
		}
		candidates = append(candidates, AnswerCandidate{
			Position:          n,
			Text:              text,
			CorrectnessMarker: row.Get(AnswerCorrectField(n)),
		})
	}
	return candidates
}

// ValidationResult is the outcome of validating one data row.
type ValidationResult struct {
	RowNumber int       `json:"rowNumber"`
	IsValid   bool      `json:"isValid"`
	Errors    []string  `json:"errors"`
	Warnings  []string  `json:"warnings,omitempty"`
	Data      ImportRow `json:"data"`
}

// Options tunes the row validator.
type Options struct {
	// StrictNumeric turns unparsable points, negativePoints and year values
	// into row errors instead of warnings.
	StrictNumeric bool
}

// Validator checks materialized rows before they reach the batch boundary.
type Validator struct {
	opts Options
}

func NewValidator(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate applies the row rules in order: text, type, difficulty, answer set,
// then the length bounds of subject, tags and source.
// Every rule runs, so a row may collect several errors.
func (v *Validator) Validate(row ImportRow, rowNumber int) ValidationResult {
	result := ValidationResult{
		RowNumber: rowNumber,
		Errors:    []string{},
		Data:      row,
	}

	text := row.Get(FieldText)
	switch {
	case text == "":
		result.Errors = append(result.Errors, "Il testo della domanda è obbligatorio")
	case utf8.RuneCountInString(text) < MinTextLength:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Il testo della domanda deve contenere almeno %d caratteri", MinTextLength))
	}

	rawType := row.Get(FieldType)
	questionType, typeOK := ParseQuestionType(rawType)
	if !typeOK {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Tipo non valido: %q (valori ammessi: %s)", rawType, allowedTypes))
	}

	rawDifficulty := row.Get(FieldDifficulty)
	if _, ok := ParseDifficulty(rawDifficulty); !ok {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Difficoltà non valida: %q (valori ammessi: %s)", rawDifficulty, allowedDifficulty))
	}

	if typeOK && questionType.IsChoice() {
		result.Errors = append(result.Errors, validateAnswerSet(questionType, Candidates(row))...)
	}

	result.Errors = append(result.Errors, lengthIssues(row)...)

	numeric := numericIssues(row)
	if v.opts.StrictNumeric {
		result.Errors = append(result.Errors, numeric...)
	} else {
		result.Warnings = numeric
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func validateAnswerSet(questionType models.QuestionType, candidates []AnswerCandidate) []string {
	var errs []string

	if len(candidates) < MinChoiceAnswers {
		errs = append(errs,
			fmt.Sprintf("Le domande a scelta richiedono almeno %d risposte", MinChoiceAnswers))
	}

	correct := 0
	for _, c := range candidates {
		if c.IsCorrect() {
			correct++
		}
	}

	switch questionType {
	case models.SingleChoice:
		if correct != 1 {
			errs = append(errs,
				fmt.Sprintf("Le domande SINGLE_CHOICE devono avere esattamente 1 risposta corretta (trovate %d)", correct))
		}
	case models.MultipleChoice:
		if correct < 1 {
			errs = append(errs, "Le domande MULTIPLE_CHOICE devono avere almeno 1 risposta corretta")
		}
	}

	return errs
}

func numericIssues(row ImportRow) []string {
	var issues []string
	if value := row.Get(FieldPoints); value != "" {
		if _, ok := parseNumber(value); !ok {
			issues = append(issues, fmt.Sprintf("Punteggio non numerico: %q (verrà usato %v)", value, DefaultPoints))
		}
	}
	if value := row.Get(FieldNegativePoints); value != "" {
		if _, ok := parseNumber(value); !ok {
			issues = append(issues, fmt.Sprintf("Penalità non numerica: %q (verrà usato %v)", value, DefaultNegativePoints))
		}
	}
	if value := row.Get(FieldYear); value != "" {
		if parseYear(value) == nil {
			issues = append(issues, fmt.Sprintf("Anno non valido: %q (verrà ignorato)", value))
		}
	}
	return issues
}

// lengthIssues mirrors the bounds of models.CreateQuestionRequest, so a row
// reported valid is never rejected when the batch is created.
func lengthIssues(row ImportRow) []string {
	var issues []string
	if n := utf8.RuneCountInString(row.Get(FieldSubject)); n > models.MaxSubjectLength {
		issues = append(issues,
			fmt.Sprintf("La materia supera %d caratteri (%d)", models.MaxSubjectLength, n))
	}
	for _, tag := range splitTags(row.Get(FieldTags)) {
		if n := utf8.RuneCountInString(tag); n > models.MaxTagLength {
			issues = append(issues,
				fmt.Sprintf("Il tag %q supera %d caratteri", tag, models.MaxTagLength))
		}
	}
	if n := utf8.RuneCountInString(row.Get(FieldSource)); n > models.MaxSourceLength {
		issues = append(issues,
			fmt.Sprintf("La fonte supera %d caratteri (%d)", models.MaxSourceLength, n))
	}
	return issues
}

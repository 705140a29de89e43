package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	OpenText       QuestionType = "OPEN_TEXT"
)

// IsChoice reports whether the type carries an answer set.
func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MultipleChoice
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

var (
	QuestionTypes     = []QuestionType{SingleChoice, MultipleChoice, OpenText}
	DifficultyLevels  = []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard}
	AnswerLetters     = []string{"A", "B", "C", "D", "E"}
	MaxAnswersPerItem = len(AnswerLetters)
)

type Question struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Title      string          `json:"title" gorm:"type:text;not null;index"`
	Type       QuestionType    `json:"type" gorm:"size:32;not null;index"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"size:16;not null;index"`

	Points         float64 `json:"points" gorm:"not null;default:1"`
	NegativePoints float64 `json:"negative_points" gorm:"not null;default:0"`

	Subject            string         `json:"subject" gorm:"size:255;index"`
	CorrectExplanation *string        `json:"correct_explanation" gorm:"type:text"`
	WrongExplanation   *string        `json:"wrong_explanation" gorm:"type:text"`
	Tags               datatypes.JSON `json:"tags" gorm:"type:jsonb"` // []string
	Year               *int           `json:"year"`
	Source             *string        `json:"source" gorm:"size:255"`

	AnswerA *string `json:"answer_a" gorm:"type:text"`
	AnswerB *string `json:"answer_b" gorm:"type:text"`
	AnswerC *string `json:"answer_c" gorm:"type:text"`
	AnswerD *string `json:"answer_d" gorm:"type:text"`
	AnswerE *string `json:"answer_e" gorm:"type:text"`

	// Comma separated letters, e.g. "A,C". Empty for OPEN_TEXT.
	CorrectAnswers string `json:"correct_answers" gorm:"size:16"`

	// Metadata
	CreatedBy string         `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// Answers returns the five answer slots in letter order.
func (q *Question) Answers() []*string {
	return []*string{q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD, q.AnswerE}
}

// Length bounds enforced by the validate tags of CreateQuestionRequest.
const (
	MaxSubjectLength = 255
	MaxTagLength     = 64
	MaxSourceLength  = 255
)

// CreateQuestionRequest is the creation schema accepted by the batch boundary.
type CreateQuestionRequest struct {
	Title              string          `json:"title" validate:"required,min=10"`
	Type               QuestionType    `json:"type" validate:"required,question_type"`
	Difficulty         DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	Points             float64         `json:"points"`
	NegativePoints     float64         `json:"negativePoints"`
	Subject            string          `json:"subject,omitempty" validate:"omitempty,max=255"`
	CorrectExplanation *string         `json:"correctExplanation,omitempty"`
	WrongExplanation   *string         `json:"wrongExplanation,omitempty"`
	Tags               []string        `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
	Year               *int            `json:"year,omitempty" validate:"omitempty,min=0"`
	Source             *string         `json:"source,omitempty" validate:"omitempty,max=255"`
	AnswerA            *string         `json:"answerA,omitempty"`
	AnswerB            *string         `json:"answerB,omitempty"`
	AnswerC            *string         `json:"answerC,omitempty"`
	AnswerD            *string         `json:"answerD,omitempty"`
	AnswerE            *string         `json:"answerE,omitempty"`
	CorrectAnswers     string          `json:"correctAnswers" validate:"omitempty,answer_letters"`
}

// Answers returns the five answer slots in letter order.
func (r *CreateQuestionRequest) Answers() []*string {
	return []*string{r.AnswerA, r.AnswerB, r.AnswerC, r.AnswerD, r.AnswerE}
}

type CreateManyRequest struct {
	Questions      []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
	SkipDuplicates bool                    `json:"skipDuplicates"`
}

// ImportOutcome is what the batch boundary reports back.
type ImportOutcome struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

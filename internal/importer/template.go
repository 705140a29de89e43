package importer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-import-service/internal/models"
)

// TemplateHeader is the column layout of the downloadable template and of CSV exports.
var TemplateHeader = buildTemplateHeader()

func buildTemplateHeader() []string {
	header := []string{FieldText, FieldType, FieldDifficulty, FieldPoints, FieldNegativePoints, FieldSubject}
	for n := 1; n <= maxAnswerColumns; n++ {
		header = append(header, AnswerField(n), AnswerCorrectField(n))
	}
	return append(header, FieldCorrectExplanation, FieldWrongExplanation, FieldTags, FieldYear, FieldSource)
}

var templateExample = map[string]string{
	FieldText:               "Qual è la formula chimica dell'acqua?",
	FieldType:               "SINGLE_CHOICE",
	FieldDifficulty:         "EASY",
	FieldPoints:             "1",
	FieldNegativePoints:     "-0.25",
	FieldSubject:            "Chimica",
	AnswerField(1):          "H2O",
	AnswerCorrectField(1):   "true",
	AnswerField(2):          "CO2",
	AnswerCorrectField(2):   "false",
	AnswerField(3):          "NaCl",
	AnswerCorrectField(3):   "false",
	FieldCorrectExplanation: "L'acqua è composta da due atomi di idrogeno e uno di ossigeno.",
	FieldTags:               "chimica, base",
	FieldYear:               "2024",
	FieldSource:             "Esercitazione",
}

// TemplateExampleRow returns the example row in TemplateHeader order.
func TemplateExampleRow() []string {
	row := make([]string, len(TemplateHeader))
	for i, name := range TemplateHeader {
		row[i] = templateExample[name]
	}
	return row
}

// FormatLine renders fields as one comma separated line that SplitLine reads back.
// Fields containing a separator, a quote or a line break are quoted.
func FormatLine(fields []string) string {
	out := make([]string, len(fields))
	for i, field := range fields {
		if strings.ContainsAny(field, ",;\"\n\r") {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		out[i] = field
	}
	return strings.Join(out, ",")
}

// TemplateCSV returns the template file: header plus one example row.
func TemplateCSV() []byte {
	var b strings.Builder
	b.WriteString(FormatLine(TemplateHeader))
	b.WriteString("\n")
	b.WriteString(FormatLine(TemplateExampleRow()))
	b.WriteString("\n")
	return []byte(b.String())
}

// QuestionRecord renders a stored question in TemplateHeader order so that
// exports can be imported again.
func QuestionRecord(q *models.Question) []string {
	fields := map[string]string{
		FieldText:           q.Title,
		FieldType:           string(q.Type),
		FieldDifficulty:     string(q.Difficulty),
		FieldPoints:         strconv.FormatFloat(q.Points, 'f', -1, 64),
		FieldNegativePoints: strconv.FormatFloat(q.NegativePoints, 'f', -1, 64),
		FieldSubject:        q.Subject,
	}

	correct := make(map[string]bool)
	for _, letter := range strings.Split(q.CorrectAnswers, ",") {
		correct[strings.TrimSpace(letter)] = true
	}
	for i, answer := range q.Answers() {
		if answer == nil {
			continue
		}
		fields[AnswerField(i+1)] = *answer
		fields[AnswerCorrectField(i+1)] = strconv.FormatBool(correct[models.AnswerLetters[i]])
	}

	fields[FieldCorrectExplanation] = deref(q.CorrectExplanation)
	fields[FieldWrongExplanation] = deref(q.WrongExplanation)
	fields[FieldSource] = deref(q.Source)
	if q.Year != nil {
		fields[FieldYear] = strconv.Itoa(*q.Year)
	}

	var tags []string
	if len(q.Tags) > 0 {
		if err := json.Unmarshal(q.Tags, &tags); err == nil {
			fields[FieldTags] = strings.Join(tags, ", ")
		}
	}

	row := make([]string, len(TemplateHeader))
	for i, name := range TemplateHeader {
		row[i] = fields[name]
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

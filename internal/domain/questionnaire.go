// Package domain defines the core domain models for the triage service.
package domain

import (
	"fmt"
	"strings"
)

// AnswerSentinel is the "not yet chosen" option shown for every select field.
const AnswerSentinel = "請選擇"

// Severity labels, ordered by weight. Identical for all five questions.
var SeverityLabels = []string{"完全沒有", "輕微", "中等程度", "厲害", "非常厲害"}

// SeverityWeights maps a severity label to its score contribution.
var SeverityWeights = map[string]int{
	"完全沒有": 0,
	"輕微":   1,
	"中等程度": 2,
	"厲害":   3,
	"非常厲害": 4,
}

// Question is one item of the fixed five-question screen.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionIDSuicide identifies the suicide-ideation item, whose weight feeds
// the SuicideRisk override.
const QuestionIDSuicide = "suicide"

// Questions is the fixed screening questionnaire. Immutable for the process
// lifetime.
var Questions = []Question{
	{ID: "sleep", Text: "在過去一星期中，是否有睡眠困難譬如難以入睡、易醒或早醒？"},
	{ID: "anxiety", Text: "過去一星期中，是否有感覺緊張不安？"},
	{ID: "mood", Text: "過去一星期，是否有感覺憂鬱、心情低落？"},
	{ID: "selfworth", Text: "過去一星期，是否有感覺自己比不上別人？"},
	{ID: QuestionIDSuicide, Text: "過去一星期，是否有自殺的想法？"},
}

// QuestionByID returns the question with the given id, or nil.
func QuestionByID(id string) *Question {
	for i := range Questions {
		if Questions[i].ID == id {
			return &Questions[i]
		}
	}
	return nil
}

// Answers maps question id to the chosen severity label.
type Answers map[string]string

// AgeGroups are the permitted age brackets.
var AgeGroups = []string{"14歲(含)以下", "15~24歲", "25~44歲", "45~64歲", "65歲(含)以上"}

// Genders are the permitted gender values.
var Genders = []string{"男", "女"}

// Demographics holds the required profile fields. Both default to the
// sentinel until the user picks a value.
type Demographics struct {
	AgeGroup string `json:"age_group"`
	Gender   string `json:"gender"`
}

// NewDemographics returns demographics in the unanswered state.
func NewDemographics() Demographics {
	return Demographics{AgeGroup: AnswerSentinel, Gender: AnswerSentinel}
}

// Complete reports whether both fields carry a permitted non-sentinel value.
func (d Demographics) Complete() bool {
	return contains(AgeGroups, d.AgeGroup) && contains(Genders, d.Gender)
}

// NewAnswers returns an answer set with every question at the sentinel.
func NewAnswers() Answers {
	a := make(Answers, len(Questions))
	for _, q := range Questions {
		a[q.ID] = AnswerSentinel
	}
	return a
}

// Missing returns the ids of questions still at the sentinel, unknown to the
// weight table, or absent entirely, in questionnaire order.
func (a Answers) Missing() []string {
	var missing []string
	for _, q := range Questions {
		label, ok := a[q.ID]
		if !ok || label == AnswerSentinel {
			missing = append(missing, q.ID)
			continue
		}
		if _, ok := SeverityWeights[label]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// IncompleteInputError reports a submit attempt with unanswered fields.
type IncompleteInputError struct {
	MissingQuestions    []string
	MissingDemographics bool
}

func (e *IncompleteInputError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.MissingQuestions) > 0 {
		parts = append(parts, fmt.Sprintf("unanswered questions: %s", strings.Join(e.MissingQuestions, ", ")))
	}
	if e.MissingDemographics {
		parts = append(parts, "demographics incomplete")
	}
	return "incomplete input: " + strings.Join(parts, "; ")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

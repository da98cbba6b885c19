package service

import "github.com/Zio20687/mental-health-ai-app/internal/domain"

// Score maps a complete answer set to its total score and the weight of the
// suicide-ideation item. Pure and deterministic; every question uses the same
// weight table, including the suicide item. Only its downstream
// interpretation differs.
func Score(answers domain.Answers) (total, suicide int, err error) {
	if missing := answers.Missing(); len(missing) > 0 {
		return 0, 0, &domain.IncompleteInputError{MissingQuestions: missing}
	}

	for _, q := range domain.Questions {
		w := domain.SeverityWeights[answers[q.ID]]
		total += w
		if q.ID == domain.QuestionIDSuicide {
			suicide = w
		}
	}
	return total, suicide, nil
}

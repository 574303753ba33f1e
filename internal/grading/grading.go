// Package grading scores submitted option choices against an exam's answer key.
// It has no storage dependencies; callers load the exam tree and persist the outcome.
package grading

import (
	"math"

	"betania_backend/internal/model"
)

const (
	// PassPercentage lesson quizzes pass at or above this integer percentage.
	PassPercentage = 60
	// PassRatio standalone attempts pass when achieved/possible reaches it.
	PassRatio = 0.60
)

// Choice is one submitted (question, option) pair.
type Choice struct {
	QuestionID uint
	OptionID   uint
}

// Key holds the flagged-correct options and weight of every question of an exam.
type Key struct {
	correct map[uint]map[uint]struct{}
	weight  map[uint]float64
}

// NewKey builds the answer key. A question may have zero or several correct options;
// a choice is correct when it is a member of that set.
func NewKey(questions []model.Question) *Key {
	k := &Key{
		correct: make(map[uint]map[uint]struct{}, len(questions)),
		weight:  make(map[uint]float64, len(questions)),
	}
	for _, q := range questions {
		set := make(map[uint]struct{})
		for _, o := range q.Options {
			if o.IsCorrect {
				set[o.ID] = struct{}{}
			}
		}
		k.correct[q.ID] = set
		w := q.Score
		if w < 0 {
			w = 0
		}
		k.weight[q.ID] = w
	}
	return k
}

func (k *Key) Has(questionID uint) bool {
	_, ok := k.correct[questionID]
	return ok
}

func (k *Key) IsCorrect(questionID, optionID uint) bool {
	_, ok := k.correct[questionID][optionID]
	return ok
}

func (k *Key) Weight(questionID uint) float64 {
	return k.weight[questionID]
}

func (k *Key) QuestionCount() int {
	return len(k.correct)
}

// PossibleScore is the sum of all question weights.
func (k *Key) PossibleScore() float64 {
	var total float64
	for _, w := range k.weight {
		total += w
	}
	return total
}

// FirstDuplicate reports the first question id that appears more than once.
func FirstDuplicate(choices []Choice) (uint, bool) {
	seen := make(map[uint]struct{}, len(choices))
	for _, c := range choices {
		if _, ok := seen[c.QuestionID]; ok {
			return c.QuestionID, true
		}
		seen[c.QuestionID] = struct{}{}
	}
	return 0, false
}

type ChoiceResult struct {
	QuestionID uint `json:"pregunta_id"`
	OptionID   uint `json:"alternativa_id"`
	Correct    bool `json:"correcta"`
}

type QuizResult struct {
	Total      int
	Correct    int
	Incorrect  int
	Percentage int
	Passed     bool
	Details    []ChoiceResult
}

// GradeQuiz counts correct choices over the exam's question count.
// Choices for questions outside the key are ignored.
func GradeQuiz(k *Key, choices []Choice) QuizResult {
	res := QuizResult{Total: k.QuestionCount(), Details: make([]ChoiceResult, 0, len(choices))}
	for _, c := range choices {
		if !k.Has(c.QuestionID) {
			continue
		}
		ok := k.IsCorrect(c.QuestionID, c.OptionID)
		if ok {
			res.Correct++
		}
		res.Details = append(res.Details, ChoiceResult{QuestionID: c.QuestionID, OptionID: c.OptionID, Correct: ok})
	}
	res.Incorrect = res.Total - res.Correct
	res.Percentage = Percentage(res.Correct, res.Total)
	res.Passed = res.Percentage >= PassPercentage
	return res
}

// Percentage is round(correct*100/total), 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

type AttemptScore struct {
	Achieved   float64
	Possible   float64
	Percentage float64
	Passed     bool
}

// GradeAnswers sets Correct and Score on every stored answer in place and sums the outcome.
func GradeAnswers(k *Key, answers []model.Answer) AttemptScore {
	var achieved float64
	for i := range answers {
		a := &answers[i]
		a.Correct = k.Has(a.QuestionID) && k.IsCorrect(a.QuestionID, a.OptionID)
		a.Score = 0
		if a.Correct {
			a.Score = k.Weight(a.QuestionID)
			achieved += a.Score
		}
	}

	possible := k.PossibleScore()
	out := AttemptScore{
		Achieved: Round2(achieved),
		Possible: Round2(possible),
	}
	if possible > 0 {
		out.Percentage = Round2(achieved * 100 / possible)
		out.Passed = achieved*100 >= PassRatio*100*possible
	}
	return out
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

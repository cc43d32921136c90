package domain

import "fmt"

// Difficulty levels as produced by the generation service. The service is free
// to send other labels; they are carried through untouched.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question is one generated multiple-choice question. Its identity is its
// position in the quiz.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_option"`
	Difficulty    string   `json:"difficulty"`
}

func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Quiz is the ordered list of questions produced by one generation call.
type Quiz struct {
	questions []Question
}

// NewQuiz builds a quiz from already validated questions.
func NewQuiz(questions []Question) Quiz {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		qs[i] = q.clone()
	}
	return Quiz{questions: qs}
}

// Len returns the number of questions.
func (q Quiz) Len() int {
	return len(q.questions)
}

// Question returns a copy of the question at index i.
func (q Quiz) Question(i int) (Question, bool) {
	if i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i].clone(), true
}

// Questions returns a copy of all questions in order.
func (q Quiz) Questions() []Question {
	out := make([]Question, len(q.questions))
	for i, question := range q.questions {
		out[i] = question.clone()
	}
	return out
}

// GenerationEntry is one question as decoded from the generation service.
// Pointer and nil-slice fields distinguish "absent" from "empty".
type GenerationEntry struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption *string  `json:"correct_option"`
	Difficulty    string   `json:"difficulty"`
}

// GenerationResponse is the decoded generation reply with question order preserved.
type GenerationResponse struct {
	Entries []GenerationEntry `json:"entries"`
}

// LoadQuiz validates a generation response and turns it into a Quiz.
func LoadQuiz(resp *GenerationResponse) (Quiz, error) {
	if resp == nil || len(resp.Entries) == 0 {
		return Quiz{}, NewMalformedResponseError("generation response contains no questions", nil)
	}

	questions := make([]Question, 0, len(resp.Entries))
	for i, e := range resp.Entries {
		if len(e.Options) == 0 {
			return Quiz{}, NewMalformedResponseError(
				fmt.Sprintf("question %d (%q) has no options", i+1, e.Question), nil)
		}
		if e.CorrectOption == nil {
			return Quiz{}, NewMalformedResponseError(
				fmt.Sprintf("question %d (%q) has no correct option", i+1, e.Question), nil)
		}
		questions = append(questions, Question{
			Text:          e.Question,
			Options:       e.Options,
			CorrectAnswer: *e.CorrectOption,
			Difficulty:    e.Difficulty,
		})
	}
	return NewQuiz(questions), nil
}

// Selection maps a question index to the option the user picked.
type Selection map[int]string

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Attempt is a quiz together with the user's selections.
type Attempt struct {
	quiz      Quiz
	selection Selection
}

// NewAttempt starts an attempt with no selections.
func NewAttempt(quiz Quiz) *Attempt {
	return &Attempt{quiz: quiz, selection: make(Selection)}
}

// Quiz returns the attempted quiz.
func (a *Attempt) Quiz() Quiz {
	return a.quiz
}

// Selection returns a copy of the current selections.
func (a *Attempt) Selection() Selection {
	return a.selection.Clone()
}

// RecordSelection sets the chosen option for the question at index,
// overwriting any earlier choice.
func (a *Attempt) RecordSelection(index int, option string) error {
	if index < 0 || index >= a.quiz.Len() {
		return NewInvalidInputError(fmt.Sprintf("question index %d out of range [0, %d)", index, a.quiz.Len()))
	}
	a.selection[index] = option
	return nil
}

// Answered returns how many questions have a selection.
func (a *Attempt) Answered() int {
	n := 0
	for i := 0; i < a.quiz.Len(); i++ {
		if _, ok := a.selection[i]; ok {
			n++
		}
	}
	return n
}

// IsComplete reports whether every question has a selection.
func (a *Attempt) IsComplete() bool {
	return a.Answered() == a.quiz.Len()
}

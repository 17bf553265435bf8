package game

import (
	"github.com/aliskhannn/flags-quiz-bot/internal/domain/entities"
)

// Bank is the fixed, ordered set of questions a round draws from.
// It is never empty and holds each country name once.
type Bank struct {
	questions []entities.Question
}

// NewBank builds a bank from the given questions. Rows with an empty country
// name are skipped and, for duplicated names, the first row wins.
func NewBank(questions []entities.Question) (*Bank, error) {
	seen := make(map[string]struct{}, len(questions))
	out := make([]entities.Question, 0, len(questions))

	for _, q := range questions {
		if q.CountryName == "" {
			continue
		}
		if _, ok := seen[q.CountryName]; ok {
			continue
		}
		seen[q.CountryName] = struct{}{}
		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, ErrEmptyBank
	}

	return &Bank{questions: out}, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// At returns the question at index i.
func (b *Bank) At(i int) entities.Question {
	return b.questions[i]
}

// Questions returns a copy of all questions in bank order.
func (b *Bank) Questions() []entities.Question {
	out := make([]entities.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

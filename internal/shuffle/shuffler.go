// Package shuffle selects and orders question subsets and reorders choices
// while keeping track of where the correct choice moved.
package shuffle

import (
	"math/rand"

	"quiz-practice-service/internal/domain"
)

// PickOptions controls one selection. Count of zero (or negative) means the
// whole pool: "all questions" is a first-class mode, not an unbounded
// default. ShuffleChoices toggles per-question choice reordering; when off,
// ShuffledAnswerIndex equals OriginalAnswerIndex.
type PickOptions struct {
	Count          int
	ShuffleChoices bool
}

// Shuffler produces uniform random permutations (Fisher-Yates via rand.Rand)
// for question order and per-question choice order.
type Shuffler struct {
	rnd *rand.Rand
}

// New builds a Shuffler seeded from src.
func New(src rand.Source) *Shuffler {
	return &Shuffler{rnd: rand.New(src)}
}

// Pick shuffles the pool, takes the first Count questions (or all of them),
// and projects each into a ShuffledQuestion.
func (s *Shuffler) Pick(pool []domain.Question, opts PickOptions) []domain.ShuffledQuestion {
	if len(pool) == 0 {
		return nil
	}

	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	if opts.Count > 0 && opts.Count < n {
		n = opts.Count
	}
	selected := shuffled[:n]

	out := make([]domain.ShuffledQuestion, 0, n)
	for _, q := range selected {
		if opts.ShuffleChoices {
			out = append(out, s.shuffleChoices(q))
		} else {
			out = append(out, domain.ShuffledQuestion{
				ID:                  q.ID,
				Prompt:              q.Prompt,
				Choices:             append([]string(nil), q.Choices...),
				OriginalAnswerIndex: q.AnswerIndex,
				ShuffledAnswerIndex: q.AnswerIndex,
				Explanation:         q.Explanation,
			})
		}
	}
	return out
}

// shuffleChoices permutes the choice list and remaps the answer index to the
// permuted position of the originally correct choice. For a single-choice
// question the permutation is trivially [0].
func (s *Shuffler) shuffleChoices(q domain.Question) domain.ShuffledQuestion {
	perm := s.rnd.Perm(len(q.Choices))

	choices := make([]string, len(q.Choices))
	shuffledIndex := 0
	for pos, orig := range perm {
		choices[pos] = q.Choices[orig]
		if orig == q.AnswerIndex {
			shuffledIndex = pos
		}
	}

	return domain.ShuffledQuestion{
		ID:                  q.ID,
		Prompt:              q.Prompt,
		Choices:             choices,
		OriginalAnswerIndex: q.AnswerIndex,
		ShuffledAnswerIndex: shuffledIndex,
		Explanation:         q.Explanation,
	}
}

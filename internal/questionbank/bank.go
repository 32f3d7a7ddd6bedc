// Package questionbank holds the static per-category question pools
// and draws shuffled subsets for new interview sessions.
package questionbank

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/intervue/intervue-backend/internal/model"
)

var (
	// ErrUnknownCategory is returned for categories absent from the bank.
	ErrUnknownCategory = errors.New("unknown question category")
	// ErrInsufficientQuestions is returned when a category pool holds
	// fewer questions than requested.
	ErrInsufficientQuestions = errors.New("insufficient questions in category pool")
)

//go:embed questions.yaml
var rawBank []byte

type bankFile struct {
	Categories map[model.Category]categoryPool `yaml:"categories"`
}

type categoryPool struct {
	// Keywords is the category-level fallback set used for relevance
	// matching when a question declares none of its own.
	Keywords  []string         `yaml:"keywords"`
	Questions []model.Question `yaml:"questions"`
}

// Bank is an immutable in-memory question bank, loaded once at startup.
type Bank struct {
	pools    map[model.Category][]model.Question
	keywords map[model.Category][]string
}

// Load parses the embedded bank file.
func Load() (*Bank, error) {
	return parse(rawBank)
}

func parse(raw []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	b := &Bank{
		pools:    make(map[model.Category][]model.Question, len(f.Categories)),
		keywords: make(map[model.Category][]string, len(f.Categories)),
	}
	for cat, pool := range f.Categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("question bank: %w: %q", ErrUnknownCategory, cat)
		}
		questions := make([]model.Question, len(pool.Questions))
		for i, q := range pool.Questions {
			q.Category = cat
			if q.ID == "" {
				return nil, fmt.Errorf("question bank: category %q question %d has no id", cat, i)
			}
			questions[i] = q
		}
		b.pools[cat] = questions
		b.keywords[cat] = pool.Keywords
	}
	return b, nil
}

// Draw samples n distinct questions uniformly without replacement from
// the category pool. The caller supplies the random source, so draws
// are reproducible under a seeded rng. The bank itself is never mutated.
func (b *Bank) Draw(category model.Category, n int, rng *rand.Rand) ([]model.Question, error) {
	pool, ok := b.pools[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if len(pool) < n {
		return nil, fmt.Errorf("%w: category %q has %d, want %d",
			ErrInsufficientQuestions, category, len(pool), n)
	}

	idx := rng.Perm(len(pool))[:n]
	drawn := make([]model.Question, n)
	for i, j := range idx {
		drawn[i] = pool[j]
	}
	return drawn, nil
}

// CategoryKeywords returns the category-level keyword set used when a
// question declares no keywords of its own.
func (b *Bank) CategoryKeywords(category model.Category) []string {
	return b.keywords[category]
}

// PoolSize reports how many questions the category pool holds.
func (b *Bank) PoolSize(category model.Category) int {
	return len(b.pools[category])
}

package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/intervue/intervue-backend/internal/model"
)

// DimensionWeights weight the four scored facets of an answer.
// Weights are non-negative and must sum to 1 per category.
type DimensionWeights struct {
	Relevance    float64 `yaml:"relevance"`
	Completeness float64 `yaml:"completeness"`
	Clarity      float64 `yaml:"clarity"`
	Accuracy     float64 `yaml:"technical_accuracy"`
}

// LengthBands are the word-count thresholds for the length-based
// leniency adjustment applied to the overall score.
type LengthBands struct {
	ShortBelow     int     `yaml:"short_below"`     // words; below this a penalty applies
	IdealMin       int     `yaml:"ideal_min"`       // inclusive start of the bonus band
	IdealMax       int     `yaml:"ideal_max"`       // inclusive end of the bonus band
	VerboseAbove   int     `yaml:"verbose_above"`   // words; above this a mild penalty applies
	ShortPenalty   float64 `yaml:"short_penalty"`   // subtracted when below ShortBelow
	IdealBonus     float64 `yaml:"ideal_bonus"`     // added inside the ideal band
	VerbosePenalty float64 `yaml:"verbose_penalty"` // subtracted above VerboseAbove
}

// ScoringPolicy is the documented, externally configurable scoring
// configuration: category-aware dimension weights plus the length
// adjustment bands and non-answer patterns.
type ScoringPolicy struct {
	Weights    map[model.Category]DimensionWeights `yaml:"weights"`
	Length     LengthBands                         `yaml:"length"`
	NonAnswers []string                            `yaml:"non_answers"`
}

// DefaultScoringPolicy returns the built-in supportive-scoring policy.
// Technical interviews weight accuracy and relevance higher; behavioral
// and sales reverse the emphasis toward clarity.
func DefaultScoringPolicy() *ScoringPolicy {
	return &ScoringPolicy{
		Weights: map[model.Category]DimensionWeights{
			model.CategoryTechnical:  {Relevance: 0.30, Completeness: 0.20, Clarity: 0.15, Accuracy: 0.35},
			model.CategoryBehavioral: {Relevance: 0.25, Completeness: 0.25, Clarity: 0.30, Accuracy: 0.20},
			model.CategoryManagement: {Relevance: 0.30, Completeness: 0.25, Clarity: 0.25, Accuracy: 0.20},
			model.CategorySales:      {Relevance: 0.25, Completeness: 0.20, Clarity: 0.35, Accuracy: 0.20},
		},
		Length: LengthBands{
			ShortBelow:     10,
			IdealMin:       20,
			IdealMax:       60,
			VerboseAbove:   150,
			ShortPenalty:   1.0,
			IdealBonus:     0.5,
			VerbosePenalty: 0.5,
		},
		NonAnswers: []string{
			"i don't know", "i dont know", "idk", "no idea",
			"not sure", "dunno", "pass", "skip", "no comment",
		},
	}
}

// LoadScoringPolicy returns the default policy, overridden by the YAML
// file at path when path is non-empty. The result is validated.
func LoadScoringPolicy(path string) (*ScoringPolicy, error) {
	policy := DefaultScoringPolicy()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scoring policy: %w", err)
		}
		if err := yaml.Unmarshal(raw, policy); err != nil {
			return nil, fmt.Errorf("parse scoring policy: %w", err)
		}
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return policy, nil
}

const weightSumTolerance = 1e-6

// Validate enforces the policy invariants: every category has weights,
// weights are non-negative and sum to 1, and the length bands are ordered.
func (p *ScoringPolicy) Validate() error {
	for _, cat := range model.Categories {
		w, ok := p.Weights[cat]
		if !ok {
			return fmt.Errorf("scoring policy: missing weights for category %q", cat)
		}
		for name, v := range map[string]float64{
			"relevance":          w.Relevance,
			"completeness":       w.Completeness,
			"clarity":            w.Clarity,
			"technical_accuracy": w.Accuracy,
		} {
			if v < 0 {
				return fmt.Errorf("scoring policy: negative %s weight for category %q", name, cat)
			}
		}
		sum := w.Relevance + w.Completeness + w.Clarity + w.Accuracy
		if math.Abs(sum-1.0) > weightSumTolerance {
			return fmt.Errorf("scoring policy: weights for category %q sum to %.4f, want 1.0", cat, sum)
		}
	}

	l := p.Length
	if l.ShortBelow < 0 || l.IdealMin < l.ShortBelow || l.IdealMax < l.IdealMin || l.VerboseAbove < l.IdealMax {
		return fmt.Errorf("scoring policy: length bands must be ordered: short(%d) <= ideal(%d..%d) <= verbose(%d)",
			l.ShortBelow, l.IdealMin, l.IdealMax, l.VerboseAbove)
	}
	return nil
}

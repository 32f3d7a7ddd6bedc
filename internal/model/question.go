package model

// Question is a single interview question. Questions are created once
// from the static bank at startup and never mutated.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Text     string   `json:"text" yaml:"text"`
	// Keywords drive relevance matching. Empty means the category-level
	// keyword set is used instead.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	// ReferenceAnswer, when present, is the comparison text for the
	// embedding-similarity accuracy dimension.
	ReferenceAnswer string `json:"-" yaml:"reference_answer,omitempty"`
}

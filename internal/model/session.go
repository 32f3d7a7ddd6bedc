package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionState enumerates interview session states.
type SessionState string

const (
	SessionStateActive    SessionState = "ACTIVE"
	SessionStateCompleted SessionState = "COMPLETED"
)

// InterviewSession is one in-progress or completed interview. It is
// volatile process state: reclaimed at shutdown or evicted by the
// store's capacity policy, never persisted.
//
// Invariants, maintained by the service layer:
//
//	0 <= CurrentIndex <= len(Questions)
//	len(Results) == CurrentIndex
//	State == COMPLETED <=> CurrentIndex == len(Questions)
type InterviewSession struct {
	ID           uuid.UUID        `json:"interview_id"`
	UserID       string           `json:"user_id"`
	Category     Category         `json:"category"`
	Questions    []Question       `json:"questions"`
	CurrentIndex int              `json:"current_index"`
	Results      []QuestionResult `json:"results"`
	State        SessionState     `json:"state"`
	StartedAt    time.Time        `json:"started_at"`
	// Report caches the final report once the session completes.
	Report *FinalReport `json:"report,omitempty"`
}

// Total returns the fixed question count for the session.
func (s *InterviewSession) Total() int { return len(s.Questions) }

// CreateInterviewRequest is the payload for starting an interview.
type CreateInterviewRequest struct {
	Category string `json:"category" binding:"required,min=1,max=50"`
	UserID   string `json:"user_id" binding:"required,min=1,max=100"`
}

// SubmitAnswerRequest is the payload for answering the current question.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required"`
}

// SessionStatus is the introspection payload for one session.
type SessionStatus struct {
	InterviewID  uuid.UUID    `json:"interview_id"`
	Category     Category     `json:"category"`
	CurrentIndex int          `json:"current_index"`
	Total        int          `json:"total"`
	State        SessionState `json:"state"`
}

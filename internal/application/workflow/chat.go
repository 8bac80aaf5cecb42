package workflow

import (
	"context"
	"strings"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// ChatSession keeps an append-only transcript with the advisory assistant.
// Only one query may be outstanding at a time, so replies never interleave.
type ChatSession struct {
	mu         sync.Mutex
	backend    repository.BackendRepository
	logger     *log.Logger
	period     *PeriodSelector
	transcript []entity.ChatMessage
	busy       bool
}

// NewChatSession starts an empty conversation.
func NewChatSession(backend repository.BackendRepository, logger *log.Logger) *ChatSession {
	return &ChatSession{
		backend: backend,
		logger:  logger.WithComponent(log.ComponentWorkflow).With(log.FieldWorkflow, log.OpChat),
		period:  NewPeriodSelector(),
	}
}

// Period exposes the selector that scopes the next query. Changing it leaves the transcript alone.
func (s *ChatSession) Period() *PeriodSelector {
	return s.period
}

// SendQuery appends the user's question, asks the backend and appends exactly one bot reply.
// It returns the transcript as it stands afterwards.
func (s *ChatSession) SendQuery(ctx context.Context, query string) ([]entity.ChatMessage, error) {
	s.mu.Lock()
	if s.busy {
		transcript := s.transcriptLocked()
		s.mu.Unlock()
		return transcript, ErrBusy
	}

	period := s.period.Period()
	if strings.TrimSpace(query) == "" || !period.IsComplete() {
		transcript := s.transcriptLocked()
		s.mu.Unlock()
		return transcript, ErrIncomplete
	}

	s.transcript = append(s.transcript, entity.ChatMessage{Role: entity.RoleUser, Text: query})
	s.busy = true
	s.mu.Unlock()

	outcome := s.backend.Chat(ctx, entity.ChatQuery{Query: query, Period: period})

	reply := ChatFallbackReply
	if outcome.IsOK() {
		reply = outcome.Payload.Response
	} else {
		s.logger.Warn("chat query failed",
			log.FieldMonth, period.Month,
			log.FieldYear, period.Year,
			log.FieldOutcome, outcome.Kind.String(),
			log.FieldError, outcome.Err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, entity.ChatMessage{Role: entity.RoleBot, Text: reply})
	s.busy = false
	return s.transcriptLocked(), nil
}

// Busy reports whether a query is outstanding.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Transcript returns a copy of the conversation in display order.
func (s *ChatSession) Transcript() []entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcriptLocked()
}

func (s *ChatSession) transcriptLocked() []entity.ChatMessage {
	out := make([]entity.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

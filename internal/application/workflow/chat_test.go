package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAppendsUserThenBot(t *testing.T) {
	backend := &fakeBackend{chatFn: func(q entity.ChatQuery) entity.Outcome[entity.ChatReply] {
		return entity.Ok(entity.ChatReply{Response: "You spent 1200 in March."})
	}}
	s := NewChatSession(backend, log.Discard())
	require.NoError(t, s.Period().Select("March", "2024"))

	transcript, err := s.SendQuery(context.Background(), "How much did I spend?")

	require.NoError(t, err)
	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Text: "How much did I spend?"},
		{Role: entity.RoleBot, Text: "You spent 1200 in March."},
	}, transcript)
	require.Len(t, backend.queries, 1)
	assert.Equal(t, entity.Period{Month: "march", Year: 2024}, backend.queries[0].Period)
}

func TestChatFailureAppendsFallback(t *testing.T) {
	backend := &fakeBackend{chatFn: func(entity.ChatQuery) entity.Outcome[entity.ChatReply] {
		return entity.Failed[entity.ChatReply](errors.New("invalid character '<' looking for beginning of value"))
	}}
	s := NewChatSession(backend, log.Discard())
	require.NoError(t, s.Period().Select("March", "2024"))

	transcript, err := s.SendQuery(context.Background(), "How much did I spend?")

	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, entity.RoleUser, transcript[0].Role)
	assert.Equal(t, entity.ChatMessage{Role: entity.RoleBot, Text: ChatFallbackReply}, transcript[1])
}

func TestChatIncompleteIsNoop(t *testing.T) {
	cases := []struct {
		query, month, year string
	}{
		{"", "march", "2024"},
		{"How much?", "", "2024"},
		{"How much?", "march", ""},
	}
	for _, tc := range cases {
		backend := &fakeBackend{}
		s := NewChatSession(backend, log.Discard())
		require.NoError(t, s.Period().Select(tc.month, tc.year))

		transcript, err := s.SendQuery(context.Background(), tc.query)

		assert.ErrorIs(t, err, ErrIncomplete)
		assert.Empty(t, transcript)
		assert.Zero(t, backend.totalCalls())
	}
}

func TestChatRejectsQueryWhileBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{chatFn: func(entity.ChatQuery) entity.Outcome[entity.ChatReply] {
		close(entered)
		<-release
		return entity.Ok(entity.ChatReply{Response: "first answer"})
	}}
	s := NewChatSession(backend, log.Discard())
	require.NoError(t, s.Period().Select("march", "2024"))

	done := make(chan []entity.ChatMessage)
	go func() {
		transcript, _ := s.SendQuery(context.Background(), "first")
		done <- transcript
	}()
	<-entered

	assert.True(t, s.Busy())
	transcript, err := s.SendQuery(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, transcript, 1)

	close(release)
	final := <-done
	require.Len(t, final, 2)
	assert.Equal(t, "first answer", final[1].Text)
	assert.False(t, s.Busy())
	assert.Len(t, backend.queries, 1)
}

func TestChatPeriodChangeKeepsTranscript(t *testing.T) {
	backend := &fakeBackend{}
	s := NewChatSession(backend, log.Discard())
	require.NoError(t, s.Period().Select("march", "2024"))
	_, err := s.SendQuery(context.Background(), "first")
	require.NoError(t, err)

	require.NoError(t, s.Period().Select("april", "2024"))
	transcript, err := s.SendQuery(context.Background(), "second")

	require.NoError(t, err)
	assert.Len(t, transcript, 4)
	assert.Equal(t, "april", backend.queries[1].Period.Month)
}

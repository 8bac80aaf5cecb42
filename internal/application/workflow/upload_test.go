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

var statement = entity.File{Name: "statement.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.7 body")}

func TestUploadRenamesAndSubmits(t *testing.T) {
	backend := &fakeBackend{}
	w := NewUpload(backend, log.Discard())
	w.SelectFile(statement)
	require.NoError(t, w.Period().Select("january", "2024"))

	view, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, UploadSucceeded, view.State)
	assert.Equal(t, MsgUploadSucceeded, view.Message)
	assert.False(t, view.Uploading)
	assert.Equal(t, "january-2024-statement.pdf", view.SubmittedName)

	require.Len(t, backend.statements, 1)
	sent := backend.statements[0]
	renamed := sent.Renamed()
	assert.Equal(t, "january-2024-statement.pdf", renamed.Name)
	assert.Equal(t, statement.Content, renamed.Content)
	assert.Equal(t, "application/pdf", renamed.ContentType)
	assert.Equal(t, entity.Period{Month: "january", Year: 2024}, sent.Period)
}

func TestUploadFailsFastWithoutNetwork(t *testing.T) {
	cases := []struct {
		name  string
		file  *entity.File
		month string
		year  string
	}{
		{name: "no file", month: "march", year: "2024"},
		{name: "no month", file: &statement, year: "2024"},
		{name: "no year", file: &statement, month: "march"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{}
			w := NewUpload(backend, log.Discard())
			if tc.file != nil {
				w.SelectFile(*tc.file)
			}
			require.NoError(t, w.Period().Select(tc.month, tc.year))

			view, err := w.Submit(context.Background())

			assert.ErrorIs(t, err, ErrIncomplete)
			assert.Equal(t, UploadIdle, view.State)
			assert.Equal(t, MsgUploadIncomplete, view.Message)
			assert.Zero(t, backend.totalCalls())
		})
	}
}

func TestUploadFailureIsGeneric(t *testing.T) {
	backend := &fakeBackend{statementFn: func(entity.UploadRequest) entity.Outcome[entity.UploadAck] {
		return entity.Failed[entity.UploadAck](errors.New("500 Internal Server Error: tables missing"))
	}}
	w := NewUpload(backend, log.Discard())
	w.SelectFile(statement)
	require.NoError(t, w.Period().Select("march", "2024"))

	view, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, UploadFailed, view.State)
	assert.Equal(t, MsgUploadFailed, view.Message)
}

func TestUploadGateRejectsConcurrentSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{statementFn: func(req entity.UploadRequest) entity.Outcome[entity.UploadAck] {
		close(entered)
		<-release
		return entity.Ok(entity.UploadAck{})
	}}
	w := NewUpload(backend, log.Discard())
	w.SelectFile(statement)
	require.NoError(t, w.Period().Select("march", "2024"))

	done := make(chan UploadView)
	go func() {
		view, _ := w.Submit(context.Background())
		done <- view
	}()
	<-entered

	view, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.True(t, view.Uploading)
	assert.Equal(t, UploadSubmitting, view.State)

	close(release)
	final := <-done
	assert.Equal(t, UploadSucceeded, final.State)
	assert.Len(t, backend.statements, 1)
}

func TestUploadSelectFileResetsToIdle(t *testing.T) {
	w := NewUpload(&fakeBackend{}, log.Discard())
	w.SelectFile(statement)
	require.NoError(t, w.Period().Select("march", "2024"))
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	w.SelectFile(entity.File{Name: "other.pdf", Content: []byte("x")})

	view := w.View()
	assert.Equal(t, UploadIdle, view.State)
	assert.Empty(t, view.Message)
	assert.Equal(t, "other.pdf", view.FileName)
}

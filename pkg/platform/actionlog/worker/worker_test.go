package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/actionlog/store/memory"
)

type failingStore struct{ calls int }

func (f *failingStore) Append(context.Context, actionlog.Entry) error {
	f.calls++
	return errors.New("unavailable")
}

func TestWorkerRunStopsOnClosedInbox(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan actionlog.Entry, 2)
	inbox <- actionlog.Entry{Type: actionlog.TypeRoundEdit, TournamentID: 1}
	inbox <- actionlog.Entry{Type: actionlog.TypeBreakUpdate, TournamentID: 1}
	close(inbox)

	err := NewWorker(store, inbox, nil).Run(context.Background())
	require.NoError(t, err)

	entries, _ := store.ListAll(context.Background())
	assert.Len(t, entries, 2)
}

func TestWorkerRunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWorker(memory.NewInMemoryStore(), make(chan actionlog.Entry), nil).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerKeepsRunningAfterStoreError(t *testing.T) {
	store := &failingStore{}
	inbox := make(chan actionlog.Entry, 3)
	for range 3 {
		inbox <- actionlog.Entry{Type: actionlog.TypeQuestionsEdit}
	}
	close(inbox)

	require.NoError(t, NewWorker(store, inbox, nil).Run(context.Background()))
	assert.Equal(t, 3, store.calls)
}

func TestWorkerDrain(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan actionlog.Entry, 5)
	for range 4 {
		inbox <- actionlog.Entry{Type: actionlog.TypeTeamRegister}
	}

	NewWorker(store, inbox, nil).Drain(context.Background())

	entries, _ := store.ListAll(context.Background())
	assert.Len(t, entries, 4)
}

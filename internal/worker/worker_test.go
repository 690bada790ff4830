package worker

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"biowearth/internal/model"
	"biowearth/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_FIFOAndTimeout(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, "a", []byte("1")))
	require.NoError(t, q.Push(ctx, "a", []byte("2")))

	n, _ := q.Len(ctx, "a")
	assert.Equal(t, int64(2), n)

	name, item, err := q.Pop(ctx, time.Second, "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", name)
	assert.Equal(t, "1", string(item))

	_, item, err = q.Pop(ctx, time.Second, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", string(item))

	_, _, err = q.Pop(ctx, 10*time.Millisecond, "a")
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestMemoryQueue_PopWakesOnPush(t *testing.T) {
	q := NewMemoryQueue()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = q.Push(context.Background(), "a", []byte("x"))
	}()
	_, item, err := q.Pop(context.Background(), 2*time.Second, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", string(item))
}

func newTestPool(q Queue, st StatusStore) *Pool {
	p := NewPool(q, st)
	p.pollTimeout = 20 * time.Millisecond
	p.backoff = time.Millisecond
	return p
}

func waitFor(t *testing.T, st StatusStore, id, state string) JobStatus {
	t.Helper()
	var got JobStatus
	require.Eventually(t, func() bool {
		s, ok, _ := st.Get(context.Background(), id)
		got = s
		return ok && s.State == state
	}, 2*time.Second, 5*time.Millisecond)
	return got
}

func TestPool_RunsJob(t *testing.T) {
	q, st := NewMemoryQueue(), NewMemoryStatusStore()
	pool := newTestPool(q, st)
	pool.Handle(JobExport, func(_ context.Context, job Job) ([]string, error) {
		return []string{"/tmp/a.pdf"}, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx, 2)
	defer func() { cancel(); pool.Wait() }()

	id, err := NewDispatcher(q, st).EnqueueExport(context.Background(), ExportPayload{Type: "rfq", ID: "R1"})
	require.NoError(t, err)

	got := waitFor(t, st, id, StateDone)
	assert.Equal(t, []string{"/tmp/a.pdf"}, got.Files)
	assert.Equal(t, 1, got.Attempts)
}

func TestPool_RetriesThenDeadLetters(t *testing.T) {
	q, st := NewMemoryQueue(), NewMemoryStatusStore()
	pool := newTestPool(q, st)
	var calls int32
	pool.Handle(JobExport, func(context.Context, Job) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("disk full")
	})
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx, 1)
	defer func() { cancel(); pool.Wait() }()

	id, err := NewDispatcher(q, st).EnqueueExport(context.Background(), ExportPayload{Type: "rfq", ID: "R1"})
	require.NoError(t, err)

	got := waitFor(t, st, id, StateFailed)
	assert.Equal(t, MaxAttempts, got.Attempts)
	assert.Equal(t, "disk full", got.Error)
	assert.Equal(t, int32(MaxAttempts), atomic.LoadInt32(&calls))

	n, err := DLQLength(context.Background(), q, QueueExports)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPool_PermanentErrorSkipsRetries(t *testing.T) {
	q, st := NewMemoryQueue(), NewMemoryStatusStore()
	pool := newTestPool(q, st)
	pool.Handle(JobExport, func(context.Context, Job) ([]string, error) {
		return nil, Permanent(errors.New("no such record"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx, 1)
	defer func() { cancel(); pool.Wait() }()

	id, err := NewDispatcher(q, st).EnqueueExport(context.Background(), ExportPayload{Type: "ors", ID: "x"})
	require.NoError(t, err)

	got := waitFor(t, st, id, StateFailed)
	assert.Equal(t, 1, got.Attempts)
}

func TestDispatcher_RecordsQueuedStatus(t *testing.T) {
	q, st := NewMemoryQueue(), NewMemoryStatusStore()
	d := NewDispatcher(q, st)
	id, err := d.EnqueueExport(context.Background(), ExportPayload{Type: "rfq", ID: "R1"})
	require.NoError(t, err)

	got, ok, err := d.Status(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StateQueued, got.State)
	n, _ := q.Len(context.Background(), QueueExports)
	assert.Equal(t, int64(1), n)
}

func TestExportWorker_WritesSheets(t *testing.T) {
	snap := &repository.Snapshot{
		SKUs:     []model.SKU{{Meta: model.Meta{ID: "S1"}, ProductID: "P1", Variant: "Iso"}},
		Products: []model.Product{{Meta: model.Meta{ID: "P1"}, Name: "Whey"}},
		Vendors:  []model.Vendor{{Company: model.Company{Meta: model.Meta{ID: "V1"}, CompanyName: "NutriCo"}}},
		Clients:  []model.Client{{Company: model.Company{Meta: model.Meta{ID: "C1"}, CompanyName: "FitStore"}}},
		ORS: []model.ORS{{
			Meta: model.Meta{ID: "O1"}, Date: "2024-03-05", SKUID: "S1",
			VendorID: "V1", ClientID: "C1", RecipientType: model.RecipientBoth,
		}},
		Settings: model.Settings{},
	}
	dir := t.TempDir()
	w := NewExportWorker(func() *repository.Snapshot { return snap }, dir)

	files, err := w.Process(context.Background(), Job{Payload: []byte(`{"type":"ors","id":"O1"}`)})
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		_, err := os.Stat(f)
		assert.NoError(t, err)
	}

	_, err = w.Process(context.Background(), Job{Payload: []byte(`{"type":"ors","id":"missing"}`)})
	var perm permanentError
	assert.True(t, errors.As(err, &perm))
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	QueueExports = "jobs:exports"

	JobExport = "export"

	// MaxAttempts before a job is moved to the dead letter queue.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job and returns the files it produced.
type Handler func(ctx context.Context, job Job) ([]string, error)

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error { return permanentError{err: err} }

// ── Dispatcher ───────────────────────────────────────────────────────────────

// Dispatcher enqueues async jobs and records their initial status.
type Dispatcher struct {
	q        Queue
	statuses StatusStore
}

func NewDispatcher(q Queue, statuses StatusStore) *Dispatcher {
	return &Dispatcher{q: q, statuses: statuses}
}

// EnqueueExport queues a PDF export and returns the job id.
func (d *Dispatcher) EnqueueExport(ctx context.Context, payload ExportPayload) (string, error) {
	return d.enqueue(ctx, QueueExports, JobExport, payload)
}

// Status returns the last recorded status of a job.
func (d *Dispatcher) Status(ctx context.Context, id string) (JobStatus, bool, error) {
	return d.statuses.Get(ctx, id)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	job := Job{ID: uuid.NewString(), Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return "", err
	}
	if err := d.statuses.Put(ctx, JobStatus{ID: job.ID, Type: jobType, State: StateQueued, UpdatedAt: time.Now().UTC()}); err != nil {
		return "", fmt.Errorf("record job status: %w", err)
	}
	if err := d.q.Push(ctx, queue, encoded); err != nil {
		return "", fmt.Errorf("enqueue %s: %w", jobType, err)
	}
	return job.ID, nil
}

// ── Pool ─────────────────────────────────────────────────────────────────────

// Pool runs handlers for the jobs popped from its queues.
type Pool struct {
	q           Queue
	statuses    StatusStore
	handlers    map[string]Handler
	queues      []string
	pollTimeout time.Duration
	backoff     time.Duration
	wg          sync.WaitGroup
}

func NewPool(q Queue, statuses StatusStore) *Pool {
	return &Pool{
		q:           q,
		statuses:    statuses,
		handlers:    make(map[string]Handler),
		queues:      []string{QueueExports},
		pollTimeout: 5 * time.Second,
		backoff:     time.Second,
	}
}

// Handle registers the handler for a job type. Call before Start.
func (p *Pool) Handle(jobType string, h Handler) { p.handlers[jobType] = h }

// Start launches n goroutines consuming the queues. Each blocks on Pop, so idle
// workers cost nothing.
func (p *Pool) Start(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", n)
}

// Wait blocks until every worker has returned after ctx was cancelled.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}
		queue, raw, err := p.q.Pop(ctx, p.pollTimeout, p.queues...)
		if err != nil {
			if !errors.Is(err, ErrQueueEmpty) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: pop failed")
				p.sleep(ctx, p.backoff)
			}
			continue
		}
		p.process(ctx, queue, raw)
	}
}

func (p *Pool) process(ctx context.Context, queue string, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("worker: failed to unmarshal job")
		return
	}
	logger := log.With().Str("job_id", job.ID).Str("type", job.Type).Logger()

	h, ok := p.handlers[job.Type]
	if !ok {
		job.Attempts++
		p.fail(ctx, queue, job, "no handler for job type")
		return
	}

	job.Attempts++
	p.setStatus(ctx, JobStatus{ID: job.ID, Type: job.Type, State: StateRunning, Attempts: job.Attempts})
	files, err := h(ctx, job)
	if err == nil {
		p.setStatus(ctx, JobStatus{ID: job.ID, Type: job.Type, State: StateDone, Files: files, Attempts: job.Attempts})
		logger.Info().Int("files", len(files)).Msg("worker: job done")
		return
	}

	var perm permanentError
	if errors.As(err, &perm) || job.Attempts >= MaxAttempts {
		p.fail(ctx, queue, job, err.Error())
		return
	}

	logger.Warn().Err(err).Int("attempt", job.Attempts).Msg("worker: job failed, retrying")
	p.sleep(ctx, p.backoff*time.Duration(1<<(job.Attempts-1)))
	encoded, mErr := json.Marshal(job)
	if mErr == nil {
		mErr = p.q.Push(ctx, queue, encoded)
	}
	if mErr != nil {
		p.fail(ctx, queue, job, "requeue: "+mErr.Error())
		return
	}
	p.setStatus(ctx, JobStatus{ID: job.ID, Type: job.Type, State: StateQueued, Error: err.Error(), Attempts: job.Attempts})
}

func (p *Pool) fail(ctx context.Context, queue string, job Job, reason string) {
	SendToDLQ(ctx, p.q, queue, job, reason)
	p.setStatus(ctx, JobStatus{ID: job.ID, Type: job.Type, State: StateFailed, Error: reason, Attempts: job.Attempts})
}

func (p *Pool) setStatus(ctx context.Context, st JobStatus) {
	st.UpdatedAt = time.Now().UTC()
	if err := p.statuses.Put(ctx, st); err != nil {
		log.Error().Err(err).Str("job_id", st.ID).Msg("worker: failed to record status")
	}
}

func (p *Pool) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

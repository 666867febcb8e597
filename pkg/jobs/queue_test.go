package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan string, 2)
	q := NewQueue("exports", func(_ context.Context, job Job) error {
		done <- job.ID
		return nil
	}, QueueConfig{Workers: 2})

	require.Error(t, q.Enqueue(Job{ID: "early"}))

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "export"}))
	require.NoError(t, q.Enqueue(Job{ID: "b", Type: "export"}))

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-done:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}

func TestQueueRetriesThenExhausts(t *testing.T) {
	var calls int32
	exhausted := make(chan Job, 1)
	q := NewQueue("exports", func(context.Context, Job) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("render failed")
	}, QueueConfig{
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
		OnExhaust: func(_ context.Context, job Job, err error) {
			exhausted <- job
		},
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "job-1"}))

	select {
	case job := <-exhausted:
		assert.Equal(t, "job-1", job.ID)
		assert.Equal(t, 3, job.Attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never exhausted")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueRecoversFromPanics(t *testing.T) {
	exhausted := make(chan error, 1)
	q := NewQueue("exports", func(_ context.Context, job Job) error {
		panic("renderer blew up")
	}, QueueConfig{MaxRetries: 0, RetryDelay: time.Millisecond, OnExhaust: func(_ context.Context, _ Job, err error) {
		exhausted <- err
	}})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "bad"}))
	select {
	case err := <-exhausted:
		assert.Contains(t, err.Error(), "renderer blew up")
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not reported")
	}
}

func TestQueueBackoff(t *testing.T) {
	q := NewQueue("exports", func(context.Context, Job) error { return nil }, QueueConfig{RetryDelay: 10 * time.Second})

	assert.Equal(t, 10*time.Second, q.backoff(1))
	assert.Equal(t, 20*time.Second, q.backoff(2))
	assert.Equal(t, 40*time.Second, q.backoff(3))
	assert.Equal(t, maxRetryDelay, q.backoff(6))
}

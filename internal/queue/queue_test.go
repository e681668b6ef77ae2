package queue_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/clientes-service/internal/queue"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue()
	assert.Error(t, q.Publish("cliente.creado", 1))
}

func TestPublishDeliversToEverySubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()
	got := make(chan any, 2)

	for i := 0; i < 2; i++ {
		require.NoError(t, q.Subscribe("cliente.creado", func(payload any) error {
			got <- payload
			return nil
		}))
	}

	require.NoError(t, q.Publish("cliente.creado", "hola"))

	for i := 0; i < 2; i++ {
		select {
		case p := <-got:
			assert.Equal(t, "hola", p)
		case <-time.After(time.Second):
			t.Fatal("subscriber not called")
		}
	}
}

func TestFailedHandlerIsRetried(t *testing.T) {
	q := queue.NewInMemoryQueue()
	q.Backoff = time.Millisecond

	var calls int32
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("boom")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish("t", nil))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never succeeded")
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetriesStopAtMax(t *testing.T) {
	q := queue.NewInMemoryQueue()
	q.Backoff = time.Millisecond
	q.MaxRetries = 2

	var calls int32
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	}))
	require.NoError(t, q.Publish("t", nil))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 3 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAttemptsHeader(t *testing.T) {
	cases := []struct {
		name    string
		headers amqp.Table
		want    int
	}{
		{"missing", nil, 0},
		{"int32", amqp.Table{queue.AttemptsHeader: int32(1)}, 1},
		{"int64", amqp.Table{queue.AttemptsHeader: int64(2)}, 2},
		{"wrong type", amqp.Table{queue.AttemptsHeader: "3"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, queue.Attempts(amqp.Delivery{Headers: tc.headers}))
		})
	}
}

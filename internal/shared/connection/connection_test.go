package connection

import (
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	restore := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = restore }()

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := retry("redis", 3, func() error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("wraps last error", func(t *testing.T) {
		refused := errors.New("connection refused")
		calls := 0
		err := retry("kafka", 2, func() error { calls++; return refused })

		assert.ErrorIs(t, err, refused)
		assert.EqualError(t, err, "kafka connection failed after 2 retries: connection refused")
		assert.Equal(t, 2, calls)
	})

	t.Run("non-positive retries still attempt once", func(t *testing.T) {
		calls := 0
		_ = retry("mqtt", 0, func() error { calls++; return nil })
		assert.Equal(t, 1, calls)
	})
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter("broker:9092")
	assert.Contains(t, w.Addr.String(), "broker:9092")
	assert.IsType(t, &kafkago.Hash{}, w.Balancer)
	assert.Equal(t, kafkago.RequireAll, w.RequiredAcks)
}

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApp_CloseRunsInReverseOrder(t *testing.T) {
	var order []string
	a := &App{}
	a.onClose(func() { order = append(order, "redis") })
	a.onClose(func() { order = append(order, "modules") })
	a.onClose(func() { order = append(order, "mqtt") })

	a.Close(context.Background())

	assert.Equal(t, []string{"mqtt", "modules", "redis"}, order)
}

func TestNewLogger(t *testing.T) {
	dev, err := NewLogger("development")
	assert.NoError(t, err)
	assert.True(t, dev.Core().Enabled(-1))

	prod, err := NewLogger("production")
	assert.NoError(t, err)
	assert.False(t, prod.Core().Enabled(-1))
}

package schedule_test

import (
	"testing"
	"time"

	"go-timely/internal/shared/schedule"
	"go-timely/internal/shared/schedule/schedtest"

	"github.com/stretchr/testify/assert"
)

func TestGroup_FiresInOrder(t *testing.T) {
	fake := schedtest.New(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	g := schedule.NewGroup(fake)

	var fired []string
	g.AfterFunc(5*time.Second, func() { fired = append(fired, "five") })
	g.AfterFunc(time.Second, func() { fired = append(fired, "one") })
	assert.Equal(t, 2, g.Pending())

	fake.Advance(time.Second)
	assert.Equal(t, []string{"one"}, fired)
	assert.Equal(t, 1, g.Pending())

	fake.Advance(4 * time.Second)
	assert.Equal(t, []string{"one", "five"}, fired)
	assert.Equal(t, 0, g.Pending())
}

func TestGroup_StopCancelsPending(t *testing.T) {
	fake := schedtest.New(time.Now())
	g := schedule.NewGroup(fake)

	called := false
	g.AfterFunc(time.Second, func() { called = true })
	g.Stop()
	fake.Advance(time.Minute)

	assert.False(t, called)
	assert.Equal(t, 0, fake.Pending())
	assert.False(t, g.AfterFunc(time.Second, func() {}))
}

func TestGroup_NestedSchedule(t *testing.T) {
	fake := schedtest.New(time.Now())
	g := schedule.NewGroup(fake)

	var order []int
	g.AfterFunc(time.Second, func() {
		order = append(order, 1)
		g.AfterFunc(5*time.Second, func() { order = append(order, 2) })
	})

	fake.Advance(5 * time.Second)
	assert.Equal(t, []int{1}, order)
	fake.Advance(time.Second)
	assert.Equal(t, []int{1, 2}, order)
}

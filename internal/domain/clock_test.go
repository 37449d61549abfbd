package domain_test

import (
	"testing"
	"time"

	"go-timely/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestActionFromType(t *testing.T) {
	assert.Equal(t, domain.ActionClockIn, domain.ActionFromType("entry"))
	assert.Equal(t, domain.ActionClockOut, domain.ActionFromType("exit"))
	assert.Equal(t, domain.ActionClockOut, domain.ActionFromType(""))

	// Anything that is not exactly "entry" is treated as clock-out, typos included.
	assert.Equal(t, domain.ActionClockOut, domain.ActionFromType("Entry"))
	assert.Equal(t, domain.ActionClockOut, domain.ActionFromType("entyr"))
}

func TestComplement(t *testing.T) {
	assert.Equal(t, domain.ActionClockOut, domain.ActionClockIn.Complement())
	assert.Equal(t, domain.ActionClockIn, domain.ActionClockOut.Complement())
}

func TestParseAction(t *testing.T) {
	a, ok := domain.ParseAction(" Clock-In ")
	assert.True(t, ok)
	assert.Equal(t, domain.ActionClockIn, a)

	_, ok = domain.ParseAction("lunch")
	assert.False(t, ok)
}

func TestFormatAndParseISO(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	s := domain.FormatISO(ts)
	assert.Equal(t, "2024-01-01T13:00:00.000Z", s)

	parsed, err := domain.ParseISO(s)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	parsed, err = domain.ParseISO("2024-01-01T10:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 10, parsed.Hour())

	_, err = domain.ParseISO("not-a-date")
	assert.Error(t, err)
}

func TestPoint(t *testing.T) {
	p := domain.NewPoint(-23.55, -46.63)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, -46.63, p.Lon())
	assert.Equal(t, -23.55, p.Lat())
}

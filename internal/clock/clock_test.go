package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	c := NewFakeClock(start)

	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(start))

	c.Advance(90 * time.Minute)
	assert.True(t, c.Now().Equal(start.Add(90*time.Minute)))
}

func TestRealClockIsUTC(t *testing.T) {
	var c Clock = Real{}
	assert.Equal(t, time.UTC, c.Now().Location())
}

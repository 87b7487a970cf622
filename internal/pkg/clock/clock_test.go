package clock_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/medstock-be/internal/pkg/clock"
)

func TestManual_After(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)

	ch := c.After(time.Hour)
	assert.Equal(t, 1, c.Waiters())

	c.Advance(30 * time.Minute)
	select {
	case <-ch:
		t.Fatal("timer fired early")
	default:
	}

	c.Advance(30 * time.Minute)
	select {
	case fired := <-ch:
		assert.Equal(t, start.Add(time.Hour), fired)
	default:
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, 0, c.Waiters())
}

func TestManual_AfterNonPositive(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))

	select {
	case <-c.After(0):
	default:
		t.Fatal("zero duration timer must fire immediately")
	}
}

func TestManual_BlockUntil(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))

	go func() {
		time.Sleep(5 * time.Millisecond)
		c.After(time.Minute)
	}()

	require.True(t, c.BlockUntil(1, time.Second))
	assert.False(t, c.BlockUntil(2, 10*time.Millisecond))
}

func TestSystem_Location(t *testing.T) {
	assert.Equal(t, time.UTC, clock.New(nil).Now().Location())

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, kolkata, clock.New(kolkata).Now().Location())

	var zero clock.System
	assert.Equal(t, time.UTC, zero.Now().Location())
}

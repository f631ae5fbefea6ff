package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConversation_AdvanceRead(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c := &Conversation{ID: "c1", LastRead: t0}

	require.True(t, c.AdvanceRead(t0.Add(time.Minute)))
	require.Equal(t, t0.Add(time.Minute), c.LastRead)

	// never moves backwards
	require.False(t, c.AdvanceRead(t0))
	require.Equal(t, t0.Add(time.Minute), c.LastRead)

	require.False(t, c.AdvanceRead(t0.Add(time.Minute)))
}

func TestConversation_Touch(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c := &Conversation{ID: "c1", LastEventTime: t0}

	c.Touch(t0.Add(time.Second))
	require.Equal(t, t0.Add(time.Second), c.LastEventTime)

	c.Touch(t0)
	require.Equal(t, t0.Add(time.Second), c.LastEventTime)
}

func TestMessage_HasUnconfirmedOriginal(t *testing.T) {
	m := &Message{EditOf: "orig", EditTime: time.Time{}}
	require.True(t, m.HasUnconfirmedOriginal())

	m.EditTime = time.Now()
	require.False(t, m.HasUnconfirmedOriginal())

	require.False(t, (&Message{}).HasUnconfirmedOriginal())
}

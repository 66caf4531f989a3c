package nats

import (
	"testing"
	"time"

	"codal-docs-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := encode(events.BaseEvent{
		Type:       events.SUBTOPIC_CREATED,
		Data:       map[string]interface{}{"subject_id": "Civil Law", "subtopic_id": "Land Titles"},
		OccurredAt: at,
	})
	require.NoError(t, err)

	got, err := decode(Subject(events.SUBTOPIC_CREATED), data)
	require.NoError(t, err)
	assert.Equal(t, events.SUBTOPIC_CREATED, got.Type)
	assert.Equal(t, "Land Titles", got.Data["subtopic_id"])
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestDecodeBarePayload(t *testing.T) {
	got, err := decode("events.SUBJECTS_CHANGED", []byte(`{"count": 3}`))
	require.NoError(t, err)
	assert.Equal(t, events.SUBJECTS_CHANGED, got.Type)
	assert.Equal(t, float64(3), got.Data["count"])
	assert.False(t, got.OccurredAt.IsZero())

	_, err = decode("events.X", []byte(`not json`))
	assert.Error(t, err)
}

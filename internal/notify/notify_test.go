package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/Domenick1991/flightlog/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(before, after float64) kafka.FlightEvent {
	return kafka.FlightEvent{UserID: "user-1", DistanceKm: after - before, TotalKmBefore: before, TotalKmAfter: after}
}

func TestMilestones(t *testing.T) {
	// 35000 -> 45116 km crosses the first lap
	assert.Equal(t, []int{1}, Milestones(event(35000, 45116)))

	// still short of a lap
	assert.Empty(t, Milestones(event(19884, 30000)))

	// a large import can complete several laps at once
	assert.Equal(t, []int{1, 2}, Milestones(event(0, 100000)))

	assert.Empty(t, Milestones(kafka.FlightEvent{UserID: "user-1"}))
}

func TestMilestones_LapAlreadyCompleted(t *testing.T) {
	// an upcoming flight adds nothing to the flown total
	ev := kafka.FlightEvent{UserID: "user-1", TotalKmBefore: 48243, TotalKmAfter: 48243}
	assert.Empty(t, Milestones(ev))

	// past lap 1 before the write, short of lap 2 after it
	assert.Empty(t, Milestones(event(48243, 58359)))
}

func TestSender_Send(t *testing.T) {
	var out bytes.Buffer
	s := NewSenderTo(&out)

	err := s.Send(context.Background(), event(35000, 45116))
	require.NoError(t, err)
	assert.Equal(t, "user user-1 completed Earth lap 1 (45116 km flown)\n", out.String())

	out.Reset()
	require.NoError(t, s.Send(context.Background(), event(90, 100)))
	assert.Empty(t, out.String())
}

package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/Domenick1991/flightlog/internal/kafka"
	"github.com/Domenick1991/flightlog/internal/service/stats"
)

// Sender reports journey milestones reached by a change to a user's log.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func NewSenderTo(out io.Writer) *Sender {
	return &Sender{out: out}
}

// Milestones lists the Earth laps completed between the event's before and
// after totals. The result depends on the event alone, so a redelivered event
// reports the same laps again rather than laps flown earlier.
func Milestones(ev kafka.FlightEvent) []int {
	if ev.TotalKmAfter <= ev.TotalKmBefore {
		return nil
	}
	beforeLaps := int(math.Floor(math.Max(ev.TotalKmBefore, 0) / stats.EarthCircumferenceKm))
	afterLaps := int(math.Floor(ev.TotalKmAfter / stats.EarthCircumferenceKm))

	var laps []int
	for lap := beforeLaps + 1; lap <= afterLaps; lap++ {
		laps = append(laps, lap)
	}
	return laps
}

func (s *Sender) Send(ctx context.Context, ev kafka.FlightEvent) error {
	laps := Milestones(ev)
	if len(laps) == 0 {
		return nil
	}
	for _, lap := range laps {
		if _, err := fmt.Fprintf(s.out, "user %s completed Earth lap %d (%.0f km flown)\n", ev.UserID, lap, ev.TotalKmAfter); err != nil {
			return err
		}
	}
	log.Printf("notified user %s about %d milestone(s)", ev.UserID, len(laps))
	return nil
}

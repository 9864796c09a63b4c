package pcf8563

import (
	"context"
	"fmt"
	"time"
)

const defaultPoll = 250 * time.Millisecond

// WaitAlarm polls the alarm flag every poll interval until it is set or ctx
// is done. A non-positive poll uses 250ms. The flag is left set; clear it
// with ActiveAlarm.
func (d *Device) WaitAlarm(ctx context.Context, poll time.Duration) error {
	if err := d.wait(ctx, poll, d.IsAlarm); err != nil {
		return fmt.Errorf("pcf8563: could not wait for alarm: %w", err)
	}
	return nil
}

// WaitTimer polls the timer flag every poll interval until it is set or ctx
// is done. A non-positive poll uses 250ms. The flag is left set; clear it
// with ActiveTimer.
func (d *Device) WaitTimer(ctx context.Context, poll time.Duration) error {
	if err := d.wait(ctx, poll, d.IsTimer); err != nil {
		return fmt.Errorf("pcf8563: could not wait for timer: %w", err)
	}
	return nil
}

func (d *Device) wait(ctx context.Context, poll time.Duration, flagged func() (bool, error)) error {
	if poll <= 0 {
		poll = defaultPoll
	}
	t := time.NewTicker(poll)
	defer t.Stop()

	for {
		ok, err := flagged()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

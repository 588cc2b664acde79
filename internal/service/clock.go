package service

import (
	"context"
	"time"
)

// RunClock drives every live session clock at one tick per second until the
// context is cancelled. The engines stay pure; this is the only place wall
// time enters the system. Run it in its own goroutine.
func (s *TestService) RunClock(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.TickAll(ctx)
		}
	}
}

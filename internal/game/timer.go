package game

import (
	"context"
	"log"
	"time"

	"github.com/partyhub/partyhub-backend/internal"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// Delays for fire-and-forget continuations. Variables so tests can shorten
// them.
var (
	// Pause between everyone-guessed and the next scribble turn, so the
	// final reveal stays on screen.
	turnAdvanceDelay = 3 * time.Second
	// Pause between a grid win/draw announcement and the board reset.
	boardResetDelay = 3 * time.Second
	// Window the drawer gets to pick a word before the first candidate is
	// auto-selected.
	wordSelectDelay = internal.WordSelectSeconds * time.Second
)

// StartRoundTimer starts the room's countdown: one timer_update per second,
// onExpire on natural expiry. A room holds at most one live timer, so any
// prior one is cancelled first.
func (reg *Registry) StartRoundTimer(room *internal.Room, duration time.Duration, onExpire func()) {
	reg.CancelRoundTimer(room)

	ctx, cancel := context.WithTimeout(context.Background(), duration)

	room.Mu.Lock()
	room.Timer = &internal.RoundTimer{
		StartTime: time.Now(),
		Duration:  duration,
		IsActive:  true,
		Context:   ctx,
		Cancel:    cancel,
	}
	room.Mu.Unlock()

	log.Printf("[StartRoundTimer] Room %s: timer started for %v", room.Code, duration)

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				broadcastTimerTick(room, ctx)

			case <-ctx.Done():
				room.Mu.Lock()
				if room.Timer != nil && room.Timer.Context == ctx {
					room.Timer.IsActive = false
				}
				room.Mu.Unlock()

				if ctx.Err() == context.DeadlineExceeded {
					log.Printf("[StartRoundTimer] Room %s: timer expired after %v", room.Code, duration)
					go onExpire()
				} else {
					log.Printf("[StartRoundTimer] Room %s: timer cancelled before expiry", room.Code)
				}
				return
			}
		}
	}()
}

// broadcastTimerTick sends the remaining whole seconds for the timer bound
// to ctx. Stale goroutines (superseded timers) stay silent.
func broadcastTimerTick(room *internal.Room, ctx context.Context) {
	room.Mu.RLock()
	timer := room.Timer
	if timer == nil || !timer.IsActive || timer.Context != ctx {
		room.Mu.RUnlock()
		return
	}
	remaining := timer.Duration - time.Since(timer.StartTime)
	room.Mu.RUnlock()

	if remaining < 0 {
		remaining = 0
	}
	SafeBroadcastToRoom(room, internal.Message[internal.TimerUpdateData]{
		Type: "timer_update",
		Data: internal.TimerUpdateData{Remaining: int(remaining.Round(time.Second).Seconds())},
	})
}

// CancelRoundTimer stops the room's live timer, if any.
func (reg *Registry) CancelRoundTimer(room *internal.Room) {
	room.Mu.Lock()
	timer := room.Timer
	if timer == nil || !timer.IsActive {
		room.Mu.Unlock()
		return
	}
	timer.IsActive = false
	cancel := timer.Cancel
	room.Mu.Unlock()

	if cancel != nil {
		cancel()
	}
	log.Printf("[CancelRoundTimer] Room %s: timer cancelled", room.Code)
}

// ScheduleAfter runs fn after the delay, but only if the room still exists.
// Room teardown turns every pending continuation into a no-op.
func (reg *Registry) ScheduleAfter(code string, delay time.Duration, fn func(room *internal.Room)) {
	time.AfterFunc(delay, func() {
		room := reg.GetRoom(code)
		if room == nil {
			log.Printf("[ScheduleAfter] Room %s gone, dropping scheduled callback", code)
			return
		}
		fn(room)
	})
}

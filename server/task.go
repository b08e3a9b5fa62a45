package server

import (
	"sync"
	"time"
)

// periodicTask runs fn at a fixed interval on its own goroutine until fn
// returns false or Stop is called. Both the countdown and the tick loop run
// as one of these, bound to the room that started them.
type periodicTask struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func startPeriodic(interval time.Duration, fn func() bool) *periodicTask {
	t := &periodicTask{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if !fn() {
					return
				}
			}
		}
	}()
	return t
}

// Stop cancels the task and blocks until the loop has exited, so a caller
// never races a half-finished invocation. Safe to call more than once, and
// after the task stopped itself.
func (t *periodicTask) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

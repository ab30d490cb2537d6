package trace

import (
	"fmt"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat every interval with the number of open
// spans, so a hung run shows which work never ended. The returned stop
// function is idempotent.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := 1; ; beat++ {
			select {
			case now := <-ticker.C:
				t.Emit(&Event{
					Time:   now,
					Seq:    nextSeq(),
					Kind:   KindHeartbeat,
					Scope:  ScopeDriver,
					Name:   "heartbeat",
					Detail: fmt.Sprintf("#%d", beat),
					Attrs:  []Attr{A("active", Active())},
				})
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

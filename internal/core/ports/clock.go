// internal/core/ports/clock.go
package ports

import "time"

// Clock supplies the current instant and timers
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

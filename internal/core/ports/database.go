// internal/core/ports/database.go
package ports

import "context"

// Database is the connection surface shared by the storage backends. Health
// and readiness checks use it without knowing which driver is configured.
type Database interface {
	Driver() string
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
	Close()
}

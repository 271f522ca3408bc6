package ports

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
)

// DriverSuspensions is the external driver-status collaborator. Accepting an item asks it
// whether the driver is suspended; resolving a violation with a ban records a suspension.
type DriverSuspensions interface {
	IsSuspended(ctx context.Context, driverID kernel.UUID) (bool, error)

	// Suspend bans the driver for duration; a zero duration bans indefinitely.
	Suspend(ctx context.Context, driverID kernel.UUID, duration time.Duration, reason string) error
}

// Package redis keeps driver suspensions in Redis, where a timed ban expires together with its key.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const suspensionKeyPrefix = "driver:suspended:"

type Options struct {
	Addr      string
	Password  string
	DB        int
	EnableTLS bool
}

// NewClient connects to a single Redis node and pings it.
func NewClient(ctx context.Context, opts Options) (redis.UniversalClient, error) {
	var tlsConf *tls.Config
	if opts.EnableTLS {
		tlsConf = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		TLSConfig:    tlsConf,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MaxRetries:   2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

type DriverSuspensions struct {
	client redis.UniversalClient
}

func NewDriverSuspensions(client redis.UniversalClient) *DriverSuspensions {
	return &DriverSuspensions{client: client}
}

func (s *DriverSuspensions) IsSuspended(ctx context.Context, driverID kernel.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, suspensionKey(driverID)).Result()
	if err != nil {
		return false, fmt.Errorf("check suspension of driver %s: %w", driverID, err)
	}
	return n > 0, nil
}

// Suspend stores the ban reason under the driver's key. A zero duration keeps the key
// without expiry.
func (s *DriverSuspensions) Suspend(ctx context.Context, driverID kernel.UUID, duration time.Duration, reason string) error {
	if duration < 0 {
		return errs.NewValueIsOutOfRangeError("duration", duration, time.Duration(0), "unbounded")
	}
	if err := s.client.Set(ctx, suspensionKey(driverID), reason, duration).Err(); err != nil {
		return fmt.Errorf("suspend driver %s: %w", driverID, err)
	}
	return nil
}

// Reason returns the recorded ban reason, or an empty string when the driver is not suspended.
func (s *DriverSuspensions) Reason(ctx context.Context, driverID kernel.UUID) (string, error) {
	reason, err := s.client.Get(ctx, suspensionKey(driverID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read suspension of driver %s: %w", driverID, err)
	}
	return reason, nil
}

func (s *DriverSuspensions) Lift(ctx context.Context, driverID kernel.UUID) error {
	if err := s.client.Del(ctx, suspensionKey(driverID)).Err(); err != nil {
		return fmt.Errorf("lift suspension of driver %s: %w", driverID, err)
	}
	return nil
}

func suspensionKey(driverID kernel.UUID) string {
	return suspensionKeyPrefix + driverID.String()
}

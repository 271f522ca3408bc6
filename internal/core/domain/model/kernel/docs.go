// Package kernel provides the domain primitives shared by every aggregate of the settlement core.
//
// The package includes:
//   - UUID: identifier value object with validation and text encoding
//   - Money: integer amount in the smallest currency unit with explicit floor arithmetic
//   - Rate: exact decimal fraction in [0, 1] used for commission and withdrawal fee splits
//   - DomainEvent, BaseEvent, EventRecorder: events recorded by aggregates and published after commit
//
// Values are immutable and safe for concurrent use; EventRecorder is owned by a single aggregate
// instance and is not.
package kernel

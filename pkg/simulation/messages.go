package simulation

import "google.golang.org/protobuf/types/known/wrapperspb"

// Messages understood by FlockActor. Protobuf well-known wrappers are enough:
// each message carries a single scalar.

// NewTick asks the flock to advance by one tick. frame is echoed in the snapshot.
func NewTick(frame uint64) *wrapperspb.UInt64Value {
	return wrapperspb.UInt64(frame)
}

// NewSpeedUpdate changes the post-blend speed from the next tick on.
func NewSpeedUpdate(speed float64) *wrapperspb.DoubleValue {
	return wrapperspb.Double(speed)
}

// NewPause freezes (true) or resumes (false) the flock. Ticks received while paused
// only republish the current state.
func NewPause(paused bool) *wrapperspb.BoolValue {
	return wrapperspb.Bool(paused)
}

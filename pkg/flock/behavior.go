package flock

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Contributor adjusts an agent's blended velocity after neighbor blending and
// before integration. Contributors run in the blend phase, so they may read the
// agent's pre-tick state and neighbor snapshots but must not touch other agents.
type Contributor interface {
	Contribute(a *Agent, blended geometry.Vector2D) geometry.Vector2D
}

// ContributorFunc adapts a plain function to the Contributor interface.
type ContributorFunc func(a *Agent, blended geometry.Vector2D) geometry.Vector2D

// Contribute calls f(a, blended).
func (f ContributorFunc) Contribute(a *Agent, blended geometry.Vector2D) geometry.Vector2D {
	return f(a, blended)
}

// ThreatResponse is the reserved hook for predator avoidance. It does nothing yet.
type ThreatResponse struct{}

// Contribute returns blended unchanged.
func (ThreatResponse) Contribute(_ *Agent, blended geometry.Vector2D) geometry.Vector2D {
	return blended
}

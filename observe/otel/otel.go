package otel

import "github.com/NetPo4ki/go-guard/guard"

// Nop is a no-op implementation of the guard.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) ScopeCreated()              {}
func (*Nop) ScopeExited(bool)           {}
func (*Nop) GuardRegistered(guard.Kind) {}
func (*Nop) GuardFired(guard.Kind)      {}
func (*Nop) GuardSkipped(guard.Kind)    {}

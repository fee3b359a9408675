package rng

// AuditEvent is emitted for every draw a component makes against the RNG,
// so the Spin Pipeline orchestrator can fold the full decision trail into
// the SpinResult event log.
type AuditEvent struct {
	Component string `json:"component"`
	Kind      string `json:"kind"`
	Data      any    `json:"data"`
}

// AuditSink collects audit events emitted during one spin evaluation.
// A nil *AuditSink is valid and silently drops events, so components can
// take one without every caller needing to provide it.
type AuditSink struct {
	events []AuditEvent
}

// NewAuditSink creates an empty sink.
func NewAuditSink() *AuditSink {
	return &AuditSink{}
}

// Emit appends an audit event. Safe to call on a nil receiver.
func (s *AuditSink) Emit(component, kind string, data any) {
	if s == nil {
		return
	}
	s.events = append(s.events, AuditEvent{Component: component, Kind: kind, Data: data})
}

// Events returns the accumulated events in emission order.
func (s *AuditSink) Events() []AuditEvent {
	if s == nil {
		return nil
	}
	return s.events
}

package transcode

// TracingMode selects whether a pass records its scope/path trail.
type TracingMode int

const (
	NoTracing   TracingMode = iota // Enter/Leave are no-ops; errors carry no trail.
	FullTracing                    // Every frame is recorded.
)

// ReportUnknown is a bitmask selecting the passes on which properties that
// are not part of an object shape are reported as warnings.
type ReportUnknown uint8

const (
	ReportNever    ReportUnknown = 0
	ReportOnEncode ReportUnknown = 1 << 0
	ReportOnDecode ReportUnknown = 1 << 1
	ReportAlways                 = ReportOnEncode | ReportOnDecode
)

// Has reports whether r covers the given pass.
func (r ReportUnknown) Has(op Op) bool {
	if op == OpEncode {
		return r&ReportOnEncode != 0
	}
	return r&ReportOnDecode != 0
}

// ErrorHandling configures one decode or encode pass. It is never mutated
// while a pass runs.
type ErrorHandling struct {
	EncodeTracing           TracingMode
	DecodeTracing           TracingMode
	ReportUnknownProperties ReportUnknown
	// StrictPrimitives re-validates primitive values on encode.
	StrictPrimitives bool
	// BestEffort leaves invalid values as they are instead of failing. Codecs
	// continue with the raw value (or the zero value when the raw value does
	// not fit the target type). Use only in defensive deployments.
	BestEffort bool
}

// Logging receives diagnostics from failing passes. The core calls these
// functions synchronously and never when Enabled is false.
type Logging struct {
	Enabled bool
	// Always logs failures of strict passes too, not only best-effort ones.
	Always     bool
	LogError   func(msg string, garbage any)
	LogWarning func(msg string, garbage any) // Optional; LogError is used when nil.
}

// Config bundles the error handling and logging configuration threaded into
// a pass.
type Config struct {
	ErrorHandling ErrorHandling
	Logging       Logging
}

package transcode

import "github.com/reoring/transcode/i18n"

// Context is the per-pass state shared by every codec of one top-level
// decode or encode call: the scope/path trail and the active configuration.
// A Context is never shared between calls or goroutines.
type Context struct {
	op      Op
	cfg     Config
	tracing bool
	scope   []string
	path    []PathSegment
}

// NewContext returns a fresh context for a pass in direction op.
func NewContext(op Op, cfg Config) *Context {
	mode := cfg.ErrorHandling.DecodeTracing
	if op == OpEncode {
		mode = cfg.ErrorHandling.EncodeTracing
	}
	tc := &Context{op: op, cfg: cfg, tracing: mode == FullTracing}
	if tc.tracing {
		tc.scope = make([]string, 0, 8)
		tc.path = make([]PathSegment, 0, 8)
	}
	return tc
}

// Op returns the direction of the pass.
func (tc *Context) Op() Op { return tc.op }

// Options returns the error handling configuration of the pass.
func (tc *Context) Options() ErrorHandling { return tc.cfg.ErrorHandling }

// Tracing reports whether frames are recorded.
func (tc *Context) Tracing() bool { return tc.tracing }

// BestEffort reports whether failures substitute the raw value.
func (tc *Context) BestEffort() bool { return tc.cfg.ErrorHandling.BestEffort }

// StrictPrimitives reports whether encode re-validates primitive values.
func (tc *Context) StrictPrimitives() bool { return tc.cfg.ErrorHandling.StrictPrimitives }

// ReportsUnknown reports whether unknown properties are warned about on
// this pass.
func (tc *Context) ReportsUnknown() bool {
	return tc.cfg.ErrorHandling.ReportUnknownProperties.Has(tc.op)
}

// Enter pushes one frame. Every Enter must be paired with a Leave, usually
// deferred. Without tracing it does nothing.
func (tc *Context) Enter(scope string, seg PathSegment) {
	if !tc.tracing {
		return
	}
	tc.scope = append(tc.scope, scope)
	tc.path = append(tc.path, seg)
}

// Leave pops the frame pushed by the matching Enter.
func (tc *Context) Leave() {
	if !tc.tracing || len(tc.scope) == 0 {
		return
	}
	tc.scope = tc.scope[:len(tc.scope)-1]
	tc.path = tc.path[:len(tc.path)-1]
}

// Enclose runs fn inside one frame.
func (tc *Context) Enclose(scope string, seg PathSegment, fn func() error) error {
	tc.Enter(scope, seg)
	defer tc.Leave()
	return fn()
}

// Depth returns the number of recorded frames.
func (tc *Context) Depth() int { return len(tc.scope) }

// Scope returns a copy of the scope trail, oldest frame first.
func (tc *Context) Scope() []string { return append([]string(nil), tc.scope...) }

// Path returns a copy of the path trail.
func (tc *Context) Path() []PathSegment { return append([]PathSegment(nil), tc.path...) }

// Message localizes a message id for this pass; {op} is filled in.
func (tc *Context) Message(id, typ string, extra map[string]string) string {
	data := map[string]string{"op": tc.op.String(), "type": typ}
	for k, v := range extra {
		data[k] = v
	}
	return i18n.T(id, data)
}

// Warn reports a non-fatal diagnostic. It never fails and does not affect
// the value being transcoded.
func (tc *Context) Warn(msg string, value any) {
	lc := tc.cfg.Logging
	if !lc.Enabled {
		return
	}
	logf := lc.LogWarning
	if logf == nil {
		logf = lc.LogError
	}
	if logf == nil {
		return
	}
	logf(FormatMessage(msg, tc.scope, tc.path), value)
}

// fail is the single failure funnel. It returns nil when the pass is
// best-effort and the caller should continue with the raw value.
func (tc *Context) fail(code, msg string, garbage any) error {
	lc := tc.cfg.Logging
	best := tc.cfg.ErrorHandling.BestEffort
	if lc.Enabled && (lc.Always || best) && lc.LogError != nil {
		lc.LogError(FormatMessage(msg, tc.scope, tc.path), garbage)
	}
	if best {
		return nil
	}
	return newError(tc.op, code, msg, tc.scope, tc.path, garbage)
}

// Fail reports a failure at the current position. Strict passes get an
// *Error. Best-effort passes log it and continue: the garbage value is
// returned when it already is a T, the zero T otherwise, with a nil error.
func Fail[T any](tc *Context, code, msg string, garbage any) (T, error) {
	var zero T
	if err := tc.fail(code, msg, garbage); err != nil {
		return zero, err
	}
	if t, ok := garbage.(T); ok {
		return t, nil
	}
	return zero, nil
}

package transcode

import (
	"fmt"
	"sync"

	"github.com/reoring/transcode/i18n"
)

// Option adjusts the configuration of a single top-level call.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option { return func(c *Config) { *c = cfg } }

// WithLogging replaces the logging configuration.
func WithLogging(l Logging) Option { return func(c *Config) { c.Logging = l } }

// WithTracing sets the tracing mode of both directions.
func WithTracing(mode TracingMode) Option {
	return func(c *Config) {
		c.ErrorHandling.DecodeTracing = mode
		c.ErrorHandling.EncodeTracing = mode
	}
}

// WithUnknownProperties selects the passes that warn about undeclared
// object properties.
func WithUnknownProperties(r ReportUnknown) Option {
	return func(c *Config) { c.ErrorHandling.ReportUnknownProperties = r }
}

// WithStrictPrimitives toggles re-validation of primitives on encode.
func WithStrictPrimitives(on bool) Option {
	return func(c *Config) { c.ErrorHandling.StrictPrimitives = on }
}

// WithBestEffort toggles best-effort mode.
func WithBestEffort(on bool) Option {
	return func(c *Config) { c.ErrorHandling.BestEffort = on }
}

var (
	defaultMu  sync.RWMutex
	defaultCfg = builtinConfig()
)

func builtinConfig() Config {
	return Config{
		ErrorHandling: ErrorHandling{
			EncodeTracing:           FullTracing,
			DecodeTracing:           FullTracing,
			ReportUnknownProperties: ReportAlways,
			StrictPrimitives:        true,
		},
		Logging: DiscardLogging(),
	}
}

// DefaultConfig returns the process-wide default configuration.
func DefaultConfig() Config {
	defaultMu.RLock()
	c := defaultCfg
	defaultMu.RUnlock()
	return c
}

// SetDefaultConfig replaces the process-wide default configuration used by
// every entry point before options are applied.
func SetDefaultConfig(c Config) {
	defaultMu.Lock()
	defaultCfg = c
	defaultMu.Unlock()
}

// ResetDefaultConfig restores the built-in defaults.
func ResetDefaultConfig() { SetDefaultConfig(builtinConfig()) }

func resolve(base Config, opts []Option) Config {
	for _, o := range opts {
		if o != nil {
			o(&base)
		}
	}
	return base
}

// DecodeStrict decodes v with c and fails on the first invalid value.
// Options are applied after best-effort has been turned off.
func DecodeStrict[T any](c Codec[T], v any, opts ...Option) (T, error) {
	cfg := DefaultConfig()
	cfg.ErrorHandling.BestEffort = false
	cfg = resolve(cfg, opts)
	return c.Decode(NewContext(OpDecode, cfg), v)
}

// DecodeLax decodes v in best-effort mode. Invalid values are logged and
// kept as they are where the target type allows it; the call never fails.
func DecodeLax[T any](c Codec[T], v any, opts ...Option) T {
	cfg := DefaultConfig()
	cfg.ErrorHandling.BestEffort = true
	cfg = resolve(cfg, opts)
	out, _ := c.Decode(NewContext(OpDecode, cfg), v)
	return out
}

// DecodeWithDefaults decodes v with the process-wide default strictness.
func DecodeWithDefaults[T any](c Codec[T], v any, opts ...Option) (T, error) {
	return c.Decode(NewContext(OpDecode, resolve(DefaultConfig(), opts)), v)
}

// Result is the outcome of TryDecodeStrict. Exactly one of Value and Err is
// meaningful.
type Result[T any] struct {
	Value T
	Err   *Error
}

// OK reports whether decoding succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// TryDecodeStrict decodes v strictly and returns the outcome instead of an
// error. Failures that are not an *Error, including panics raised by user
// supplied functions, are reported as unknown exceptions without a trail.
func TryDecodeStrict[T any](c Codec[T], v any, opts ...Option) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: unknownException(fmt.Sprint(r), v)}
		}
	}()
	out, err := DecodeStrict(c, v, opts...)
	if err == nil {
		return Result[T]{Value: out}
	}
	if e, ok := AsError(err); ok {
		return Result[T]{Err: e}
	}
	return Result[T]{Err: unknownException(err.Error(), v)}
}

func unknownException(cause string, v any) *Error {
	msg := i18n.T(i18n.MsgUnknownException, map[string]string{"cause": cause})
	return &Error{Op: OpDecode, Code: CodeUnknownException, Message: msg, Garbage: v}
}

// Encode encodes v with c into plain data.
func Encode[T any](c Codec[T], v T, opts ...Option) (any, error) {
	return c.Encode(NewContext(OpEncode, resolve(DefaultConfig(), opts)), v)
}

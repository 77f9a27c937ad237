// Package transcode validates untyped plain data against composable codecs
// and converts it into typed Go values (decode), and converts those values
// back into plain data (encode).
//
// The building blocks:
//
//   - Codec[T]: the unit of schema. Concrete codecs live in package codecs;
//     Make builds one from a pair of functions.
//   - Context: per-call state. It records the scope trail (codec labels) and
//     the path trail (property keys and indices) and owns the configuration
//     of the pass.
//   - Error: a failure with its code, message, trails and offending value.
//   - Combinators: Optional, OrNull, OrUndefined, OrNullOrUndefined,
//     OrElse, OrElseLazy, Map and Refine wrap a codec into a new one.
//
// Design policy:
//   - Keep the engine in the root package; concrete codecs go under codecs/,
//     byte-level front-ends under wire/, tag-driven refinements under rules/.
//   - Codecs are immutable and safe for concurrent use. Each top-level call
//     creates its own Context.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	person := codecs.Object("Person",
//		codecs.Prop("name", codecs.String()),
//		codecs.Prop("age", transcode.Optional(codecs.Number())),
//	)
//	v, err := transcode.DecodeStrict(person, raw)
//	out, err := transcode.Encode(person, v)
package transcode

// Package extract coerces model replies into structured values.
//
// Hosted models are asked for JSON but often wrap it in prose or code fences.
// Value tolerates that: it returns structured replies as they are, parses text
// replies whole, then falls back to the first bracketed or braced span, and
// finally returns the caller's default. It never fails.
//
//	v := extract.Value(domain.TextReply("Sure! [{\"name\":\"X\"}] Hope that helps"), []any{})
//	// v == []any{map[string]any{"name": "X"}}
//
// The decode helpers then map the loose values onto the typed records of the
// domain package. They are tolerant too: elements that cannot be decoded are
// skipped and reported through Report, so a malformed reply degrades to an
// empty result instead of aborting the run. Only the evaluation score has a
// failure path (ErrInvalidScore).
package extract

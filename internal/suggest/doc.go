// Package suggest is the candidate suggestion engine. It turns the raw,
// unreliable word lists of a predictor.Predictor into display-ready candidate
// sets of a fixed size, and keeps the per-conversation state that shapes them.
// Files are split by concern:
//
//   - normalize.go: candidate equivalence and generation modes.
//   - context.go: conversation context text sent to the model.
//   - exclusion.go: sentence and layer exclusion scopes.
//   - wordlists.go, fallback.go: curated vocabulary and the fallback cascade.
//   - wordarray.go: extraction of a word array from free-form model replies.
//   - prompt.go, generator.go: prompting, bounded retries and merging.
//   - lookahead.go: two-level branch tree (first word -> next words).
//   - cache.go: single-flight background cache with staleness checks.
//   - session.go: the per-conversation aggregate and its operations.
//   - events.go, metrics.go: observability hooks.
//
// A Session is safe for concurrent use. Predictor calls never run while the
// session mutex is held.
package suggest

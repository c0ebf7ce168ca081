package diag

import "sort"

// Reporter accumulates diagnostics for a single parse. It is append-only
// except for Truncate, which speculative parsing uses to drop diagnostics
// produced by an alternative that was abandoned.
//
// A Reporter is not safe for concurrent use; each parse owns its own.
type Reporter struct {
	diags []Diagnostic
}

// Add records a diagnostic.
func (r *Reporter) Add(d Diagnostic) {
	r.diags = append(r.diags, d)
}

// Len returns the number of recorded diagnostics.
func (r *Reporter) Len() int {
	return len(r.diags)
}

// Truncate discards every diagnostic recorded after the first n.
func (r *Reporter) Truncate(n int) {
	if n < 0 || n >= len(r.diags) {
		return
	}
	r.diags = r.diags[:n]
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Diagnostics returns the recorded diagnostics ordered by source position.
// Diagnostics at the same offset keep their insertion order.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

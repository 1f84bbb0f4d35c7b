// Package matchers provides symptom-specific labor matchers
package matchers

import "strings"

// firstHit returns the first keyword present in the notes. Notes arrive
// already lowercased from the classifier.
func firstHit(notes string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(notes, kw) {
			return kw, true
		}
	}
	return "", false
}

// engineHas reports whether the engine descriptor carries any of the given
// marker substrings (V6, V8, HEMI), case-insensitively.
func engineHas(engine string, markers ...string) bool {
	engine = strings.ToUpper(engine)
	for _, m := range markers {
		if strings.Contains(engine, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

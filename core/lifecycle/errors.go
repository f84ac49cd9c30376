package lifecycle

import "fmt"

// ValidationError reports rule attributes that cannot form a valid rule.
type ValidationError struct {
	// Rule is the rule identifier, empty when the identifier itself is missing.
	Rule string
	// Field names the offending attribute.
	Field string
	// Reason describes the problem.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("invalid rule: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid rule %q: %s: %s", e.Rule, e.Field, e.Reason)
}

// StructuralError reports a definition document missing a mandatory key.
type StructuralError struct {
	// Source is the document the key is missing from, if known.
	Source string
	// Key is the mandatory key.
	Key string
}

func (e *StructuralError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("definition is missing mandatory key %q", e.Key)
	}
	return fmt.Sprintf("definition %s is missing mandatory key %q", e.Source, e.Key)
}

package lifecycle

import "sort"

// State maps bucket names to their rule collections. It describes either the
// desired or the actual side of a reconciliation.
type State map[string]*RuleCollection

// Buckets returns the bucket names in lexical order.
func (s State) Buckets() []string {
	out := make([]string, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Merge unions c into the collection already held for its bucket.
func (s State) Merge(c *RuleCollection) {
	if existing, ok := s[c.bucket]; ok {
		existing.Merge(c)
		return
	}
	s[c.bucket] = c.Clone()
}

// RuleCount returns the total number of rules across buckets.
func (s State) RuleCount() int {
	n := 0
	for _, c := range s {
		n += c.Len()
	}
	return n
}

// Shared returns the buckets present in both states, in lexical order.
func Shared(desired, actual State) []string {
	var out []string
	for b := range desired {
		if _, ok := actual[b]; ok {
			out = append(out, b)
		}
	}
	sort.Strings(out)
	return out
}

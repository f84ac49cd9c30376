package lifecycle

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// RuleCollection is the fingerprint-indexed rule set of one bucket, kept in
// insertion order.
type RuleCollection struct {
	bucket string
	order  []string
	rules  map[string]*Rule

	// transitionMinimumSize is the bucket-wide TransitionDefaultMinimumObjectSize
	// setting. It travels with the rules but takes no part in diffing.
	transitionMinimumSize string
}

// NewRuleCollection creates a collection for bucket holding rules.
func NewRuleCollection(bucket string, rules ...*Rule) *RuleCollection {
	c := &RuleCollection{
		bucket: bucket,
		rules:  make(map[string]*Rule, len(rules)),
	}
	for _, r := range rules {
		c.Add(r)
	}
	return c
}

// Bucket returns the bucket the collection belongs to.
func (c *RuleCollection) Bucket() string { return c.bucket }

// Add inserts r, replacing a rule with the same fingerprint in place.
func (c *RuleCollection) Add(r *Rule) {
	if r == nil {
		return
	}
	if _, ok := c.rules[r.fingerprint]; !ok {
		c.order = append(c.order, r.fingerprint)
	}
	c.rules[r.fingerprint] = r
}

// Remove deletes the rule with the given fingerprint. Removing an absent
// fingerprint is a no-op. It reports whether a rule was removed.
func (c *RuleCollection) Remove(fingerprint string) bool {
	if _, ok := c.rules[fingerprint]; !ok {
		return false
	}
	delete(c.rules, fingerprint)
	for i, fp := range c.order {
		if fp == fingerprint {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveRule deletes the rule equal to r.
func (c *RuleCollection) RemoveRule(r *Rule) bool {
	if r == nil {
		return false
	}
	return c.Remove(r.fingerprint)
}

// Get returns the rule with the given fingerprint.
func (c *RuleCollection) Get(fingerprint string) (*Rule, bool) {
	r, ok := c.rules[fingerprint]
	return r, ok
}

// Contains reports whether a rule with the given fingerprint is present.
func (c *RuleCollection) Contains(fingerprint string) bool {
	_, ok := c.rules[fingerprint]
	return ok
}

// Len returns the number of rules.
func (c *RuleCollection) Len() int { return len(c.order) }

// IsEmpty reports whether the collection holds no rules.
func (c *RuleCollection) IsEmpty() bool { return len(c.rules) == 0 }

// Rules returns the rules in insertion order.
func (c *RuleCollection) Rules() []*Rule {
	out := make([]*Rule, 0, len(c.order))
	for _, fp := range c.order {
		out = append(out, c.rules[fp])
	}
	return out
}

// Fingerprints returns the fingerprints in insertion order.
func (c *RuleCollection) Fingerprints() []string {
	return append([]string(nil), c.order...)
}

// SetTransitionMinimumSize records the bucket's default minimum object size
// for transitions as reported by the control plane.
func (c *RuleCollection) SetTransitionMinimumSize(v string) { c.transitionMinimumSize = v }

// TransitionMinimumSize returns the recorded setting, "" when unknown.
func (c *RuleCollection) TransitionMinimumSize() string { return c.transitionMinimumSize }

// Clone returns an independent copy. Rules are shared since they are immutable.
func (c *RuleCollection) Clone() *RuleCollection {
	out := NewRuleCollection(c.bucket, c.Rules()...)
	out.transitionMinimumSize = c.transitionMinimumSize
	return out
}

// Merge adds every rule of other. Colliding fingerprints are replaced.
func (c *RuleCollection) Merge(other *RuleCollection) {
	if other == nil {
		return
	}
	for _, r := range other.Rules() {
		c.Add(r)
	}
}

// Difference partitions the rules of c and other. Added holds the rules of c
// missing from other in c's order, Removed the rules of other missing from c
// in other's order.
func (c *RuleCollection) Difference(other *RuleCollection) ChangeSet {
	cs := ChangeSet{Bucket: c.bucket}
	for _, fp := range c.order {
		if other == nil || !other.Contains(fp) {
			cs.Added = append(cs.Added, c.rules[fp])
		}
	}
	if other == nil {
		return cs
	}
	for _, fp := range other.order {
		if !c.Contains(fp) {
			cs.Removed = append(cs.Removed, other.rules[fp])
		}
	}
	return cs
}

// DuplicateIDs returns identifiers shared by more than one rule, sorted.
func (c *RuleCollection) DuplicateIDs() []string {
	seen := make(map[string]int, len(c.rules))
	for _, r := range c.rules {
		seen[r.attrs.ID]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

// Payload returns the lifecycle configuration for the put API. It returns nil
// for an empty collection: the put API rejects an empty rule list, so an empty
// collection has to be committed as a delete instead.
func (c *RuleCollection) Payload() *types.BucketLifecycleConfiguration {
	if c.IsEmpty() {
		return nil
	}
	cfg := &types.BucketLifecycleConfiguration{
		Rules: make([]types.LifecycleRule, 0, len(c.order)),
	}
	for _, fp := range c.order {
		cfg.Rules = append(cfg.Rules, c.rules[fp].Payload())
	}
	return cfg
}

// ChangeSet is the difference between a desired and an actual collection.
type ChangeSet struct {
	Bucket  string
	Added   []*Rule
	Removed []*Rule
}

// IsEmpty reports whether nothing needs to change.
func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0
}

// Apply returns a copy of base with the change set applied: additions first,
// then removals.
func (cs ChangeSet) Apply(base *RuleCollection) *RuleCollection {
	out := NewRuleCollection(cs.Bucket)
	if base != nil {
		out = base.Clone()
	}
	for _, r := range cs.Added {
		out.Add(r)
	}
	for _, r := range cs.Removed {
		out.RemoveRule(r)
	}
	return out
}

// IDs returns the identifiers of rules in order.
func IDs(rules []*Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.attrs.ID)
	}
	return out
}

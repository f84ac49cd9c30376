// Package lifecycle models S3 lifecycle rules with content-addressed identity.
//
// A Rule is an immutable value built from Attributes. Building canonicalises the
// attributes (status spelling, storage class case, calendar dates, tag and
// transition order, flattened filters) so that a rule decoded from a definition
// file and the same rule decoded from a live API response carry the same
// fingerprint.
//
// # Identity
//
// The fingerprint is a truncated SHA-256 digest of the rule's canonical
// description, identifier included. Equal fingerprints mean equal rules. There
// is no in-place modification: changing a rule yields a new fingerprint, so an
// update surfaces as one removal plus one addition.
//
// # Collections
//
// RuleCollection holds the rules of one bucket, indexed by fingerprint and kept
// in insertion order. Difference partitions two collections into a ChangeSet of
// added and removed rules. Payload projects a collection onto the control plane
// shape, returning nil for an empty collection because the put API rejects an
// empty rule list.
//
// # Decoding
//
// Two decoders converge on Attributes:
//   - DecodeDefinition reads the generic key/value tree of a definition file.
//   - FromControlPlane reads a rule returned by GetBucketLifecycleConfiguration.
//
// # Usage
//
//	def, err := lifecycle.DecodeDefinition(tree)
//	desired := lifecycle.NewRuleCollection(def.Bucket, def.Rules...)
//	changes := desired.Difference(actual)
package lifecycle

// Package resource reads and writes the live lifecycle state of an account.
//
// The Loader enumerates the buckets of one region and reads each bucket's
// lifecycle configuration. A bucket without configuration is an empty rule
// collection. A bucket that cannot be read is left out of the state and
// reported as a query warning, so it is never mutated from partial knowledge.
//
// The Mutator stages additions and removals on a copy of the loaded state
// and writes each bucket with a single call on Commit: a delete when no rules
// remain, otherwise a put carrying every rule.
package resource

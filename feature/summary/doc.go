// Package summary describes live lifecycle rules in plain language.
//
// The Summariser sends the canonical description of a bucket's rules to a
// Bedrock foundation model through the messages-v1 schema and returns the
// text of the first content block of the reply. It backs the SUMMARISE
// workflow, which never changes live state.
package summary

// Package definition loads the desired lifecycle state from definition files
// kept under the definition/ folder of the endpoint.
//
// Every object below the prefix is listed recursively and decoded by its
// extension: .toml, .yaml, .yml or .json. Other objects are ignored. Each file
// declares one bucket and its rules; files declaring the same bucket are
// merged, and a later file wins when two rules share a fingerprint.
//
// Problems are contained per file or per rule. An unreadable file, a parse
// error or a missing mandatory key skips the file with a warning, an invalid
// rule skips the rule. Only a listing failure fails the load.
package definition

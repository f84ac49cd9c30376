// Package integrity validates the storage layout and the inputs a run
// depends on.
//
// # Checks Provided
//
//   - Structure: the layout folders (current, previous, history, definition,
//     data, log) exist under the configured endpoint. Missing folders can be
//     created as empty marker objects.
//   - Definitions: every definition file parses and every declared rule is
//     valid. Files and rules that a run would skip are listed.
//   - Schema: the history tables carry every column the run store writes.
//     Only available when a history database is attached.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs the structure check.
//   - POST /integrity/fix : Creates missing layout folders.
//   - GET /integrity/definitions : Runs the definition check.
//   - GET /integrity/schema : Runs the schema check.
package integrity

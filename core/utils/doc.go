// Package utils provides conversion helpers for loosely typed values.
//
// Definition files decode into generic key/value trees whose scalar types
// depend on the source format: TOML yields int64 and local dates, YAML yields
// int and strings, JSON yields float64. The helpers here turn those values into
// the concrete types the lifecycle model needs, reporting values that cannot be
// converted instead of silently defaulting them.
package utils

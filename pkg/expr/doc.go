// Package expr evaluates CEL (Common Expression Language) predicates
// against list rows.
//
// Expressions have access to two variables:
//   - `line` (string): the row text
//   - `index` (int): the row's position in the unfiltered source
//
// In addition to the CEL strings, math and lists extensions, the
// environment provides:
//   - `fold(s)`: lowercase s and strip diacritics, for accent-insensitive
//     comparisons
//   - `fields(s)`: split s on runs of whitespace
//   - `line.matches(re)` and friends from the standard library
//
// For example, `index % 2 == 0 && fold(line).contains("cafe")`.
package expr

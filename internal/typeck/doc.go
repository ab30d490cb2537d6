// Package typeck implements implicit type coercion between the types of the
// type model: the coercion rules, literal-aware coercion and a Checker that
// accumulates failures for a translation unit.
package typeck

// Package calc evaluates binary expressions over arbitrary-precision
// integers. Several engines implement the same Calculator interface so that
// results can be cross-checked: the decimal Karatsuba engine from package
// bigint, the same engine restricted to its quadratic base case, and an
// oracle backed by math/big (plus GMP when built with the "gmp" tag).
package calc

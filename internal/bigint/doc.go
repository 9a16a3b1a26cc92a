// Package bigint implements arbitrary-precision signed integers stored as
// little-endian decimal digits.
//
// Int is a value type. Operations never write into the digit storage of
// their operands, so an Int may be copied by plain assignment and the copy
// behaves as an independent value. The compound forms (AddAssign, Inc, ...)
// replace the value held by their pointer receiver.
//
// Multiplication uses Karatsuba's algorithm over raw (uncarried) decimal
// coefficients with a single carry pass at the end; division is schoolbook
// long division, and the remainder is derived from the quotient so that
//
//	a == a.Quo(b)*b + a.Rem(b)
//
// holds for every non-zero b, with division truncating toward zero.
package bigint

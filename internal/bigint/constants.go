package bigint

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication Tuning
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultKaratsubaThreshold is the padded operand length (in decimal
	// digits) below which Karatsuba recursion stops and coefficients are
	// accumulated directly. Lengths are powers of two, so the default base
	// case handles blocks of up to 16 digits.
	DefaultKaratsubaThreshold = 32

	// MinKaratsubaThreshold is the smallest accepted threshold. A threshold
	// of 2 recurses all the way down to single-digit products.
	MinKaratsubaThreshold = 2

	// DefaultParallelThreshold is the padded operand length from which the
	// three Karatsuba sub-products are computed concurrently. Smaller
	// subproblems do not amortize goroutine scheduling.
	DefaultParallelThreshold = 4096

	// MaxOperandDigits is the largest padded length multiplied with raw
	// int64 coefficients. Each raw coefficient is bounded by 81*L*L for
	// padded length L, which stays below 2^63 up to this length. Longer
	// operands are split and their partial products carried.
	MaxOperandDigits = 1 << 26

	// minRawDigits keeps the carried split making progress: halves plus
	// one carry digit must be shorter than the operand they came from.
	minRawDigits = 16
)

// Options tunes the multiplicative engine. The result of a multiplication
// never depends on the options, only its running time does.
type Options struct {
	// KaratsubaThreshold is the padded length below which the quadratic base
	// case is used. Values below MinKaratsubaThreshold are raised to it.
	KaratsubaThreshold int
	// ParallelThreshold is the padded length from which sub-products run
	// concurrently. Zero disables parallelism.
	ParallelThreshold int

	// maxRawDigits overrides MaxOperandDigits in tests.
	maxRawDigits int
}

// DefaultOptions returns the options used by Mul, Rem and the compound
// operators.
func DefaultOptions() Options {
	return Options{
		KaratsubaThreshold: DefaultKaratsubaThreshold,
		ParallelThreshold:  DefaultParallelThreshold,
	}
}

// normalized returns o with its thresholds clamped to usable values.
func (o Options) normalized() Options {
	if o.KaratsubaThreshold < MinKaratsubaThreshold {
		o.KaratsubaThreshold = MinKaratsubaThreshold
	}
	if o.ParallelThreshold < 0 {
		o.ParallelThreshold = 0
	}
	switch {
	case o.maxRawDigits <= 0, o.maxRawDigits > MaxOperandDigits:
		o.maxRawDigits = MaxOperandDigits
	case o.maxRawDigits < minRawDigits:
		o.maxRawDigits = minRawDigits
	}
	return o
}

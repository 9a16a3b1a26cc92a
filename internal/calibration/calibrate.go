package calibration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/logging"
)

// Calibration defaults.
const (
	DefaultDigits = 20_000
	QuickDigits   = 4_000
	DefaultRounds = 3
)

// Options configures a calibration run.
type Options struct {
	// Digits is the operand length used for the benchmark.
	Digits int
	// Rounds is the number of timed multiplications per threshold; the
	// fastest is kept.
	Rounds int
	// Quick selects the reduced candidate sets.
	Quick bool
	// Seed makes the random operands reproducible.
	Seed uint64
	// Logger receives one debug entry per trial. May be nil.
	Logger logging.Logger
}

// calibrationResult is the timing of one candidate threshold.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Result is the outcome of RunCalibration.
type Result struct {
	Options   bigint.Options
	Digits    int
	Elapsed   time.Duration
	karatsuba []calibrationResult
	parallel  []calibrationResult
}

// RunCalibration benchmarks MulWith over the candidate thresholds and
// returns the fastest combination. The Karatsuba threshold is tuned
// sequentially first, then the parallel threshold with the chosen base case.
// Every product is checked against a reference so a broken configuration
// can never be selected.
func RunCalibration(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	start := time.Now()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	x := randomOperand(rng, opts.Digits)
	y := randomOperand(rng, opts.Digits)
	want := referenceProduct(x, y)

	karatsubaCandidates, parallelCandidates := GenerateKaratsubaThresholds(), GenerateParallelThresholds()
	if opts.Quick {
		karatsubaCandidates, parallelCandidates = GenerateQuickKaratsubaThresholds(), GenerateQuickParallelThresholds()
	}

	res := Result{Digits: opts.Digits}
	for _, th := range karatsubaCandidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		trial := bigint.Options{KaratsubaThreshold: th}
		res.karatsuba = append(res.karatsuba, opts.time(x, y, want, th, trial, "karatsuba"))
	}
	best, ok := fastest(res.karatsuba)
	if !ok {
		return res, fmt.Errorf("calibration: no Karatsuba threshold produced a correct product")
	}

	for _, th := range parallelCandidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		trial := bigint.Options{KaratsubaThreshold: best, ParallelThreshold: th}
		res.parallel = append(res.parallel, opts.time(x, y, want, th, trial, "parallel"))
	}
	bestParallel, ok := fastest(res.parallel)
	if !ok {
		bestParallel = 0
	}

	res.Options = bigint.Options{KaratsubaThreshold: best, ParallelThreshold: bestParallel}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (o Options) withDefaults() Options {
	if o.Digits <= 0 {
		o.Digits = DefaultDigits
		if o.Quick {
			o.Digits = QuickDigits
		}
	}
	if o.Rounds <= 0 {
		o.Rounds = DefaultRounds
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// time runs Rounds multiplications with trial and keeps the fastest.
func (o Options) time(x, y, want bigint.Int, th int, trial bigint.Options, kind string) calibrationResult {
	best := time.Duration(-1)
	for range o.Rounds {
		start := time.Now()
		got := x.MulWith(y, trial)
		d := time.Since(start)
		if got.Cmp(want) != 0 {
			return calibrationResult{Threshold: th, Err: fmt.Errorf("%s threshold %d: wrong product", kind, th)}
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if o.Logger != nil {
		o.Logger.Debug("calibration trial",
			logging.String("kind", kind),
			logging.Int("threshold", th),
			logging.Duration("duration", best))
	}
	return calibrationResult{Threshold: th, Duration: best}
}

// referenceProduct computes x * y with math/big, independently of the
// decimal engine being calibrated.
func referenceProduct(x, y bigint.Int) bigint.Int {
	bx, _ := new(big.Int).SetString(x.String(), 10)
	by, _ := new(big.Int).SetString(y.String(), 10)
	return bigint.MustParse(bx.Mul(bx, by).String())
}

// fastest returns the threshold of the quickest successful result. Ties
// keep the earlier, smaller candidate.
func fastest(results []calibrationResult) (int, bool) {
	bestIdx := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if bestIdx < 0 || r.Duration < results[bestIdx].Duration {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return results[bestIdx].Threshold, true
}

// randomOperand returns a positive n-digit integer without a leading zero.
func randomOperand(rng *rand.Rand, n int) bigint.Int {
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(byte('1' + rng.IntN(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}
	return bigint.MustParse(b.String())
}

// Run calibrates, prints both summary tables to out and returns the
// result.
func Run(ctx context.Context, out io.Writer, opts Options) (Result, error) {
	fmt.Fprintf(out, "Calibrating multiplication thresholds on %d-digit operands...\n", opts.withDefaults().Digits)
	res, err := RunCalibration(ctx, opts)
	if err != nil {
		return res, err
	}
	printCalibrationResults(out, "Karatsuba threshold", res.karatsuba, res.Options.KaratsubaThreshold)
	printCalibrationResults(out, "Parallel threshold", res.parallel, res.Options.ParallelThreshold)
	printCalibrationOutput(out, res)
	return res, nil
}

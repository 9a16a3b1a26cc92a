package calibration

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Candidate thresholds
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaThresholds returns the Karatsuba base-case thresholds to
// benchmark. Padded lengths are powers of two, so only powers of two are
// worth testing.
func GenerateKaratsubaThresholds() []int {
	return []int{4, 8, 16, 32, 64, 128, 256}
}

// GenerateQuickKaratsubaThresholds returns a reduced set around the
// hardware estimate.
func GenerateQuickKaratsubaThresholds() []int {
	return []int{16, 32, 64}
}

// GenerateParallelThresholds returns the parallel thresholds to benchmark,
// based on the number of available CPU cores. Zero (sequential) is always
// first.
//
// The range widens with the core count: with few cores the fork overhead
// dominates small sub-products, with many cores finer splits pay off.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 2048, 4096, 8192)
	case numCPU <= 8:
		thresholds = append(thresholds, 1024, 2048, 4096, 8192)
	default:
		thresholds = append(thresholds, 512, 1024, 2048, 4096, 8192)
	}

	return thresholds
}

// GenerateQuickParallelThresholds returns a reduced set for quick
// calibration.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{0}
	case numCPU <= 4:
		return []int{0, 4096}
	default:
		return []int{0, 2048, 4096}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Estimates without benchmarking
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalKaratsubaThreshold delegates to config.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateOptimalKaratsubaThreshold() }

// EstimateOptimalParallelThreshold delegates to config.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }

package config

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--karatsuba-threshold, --parallel-threshold)
//   2. Environment variables (BIGCALC_KARATSUBA_THRESHOLD, ...)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds replaces zero thresholds with hardware estimates,
// keeping explicit values untouched.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold returns the padded operand length from
// which Karatsuba sub-products should run concurrently. Zero disables
// parallelism on single-core machines.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0
	case numCPU <= 2:
		return 8192
	case numCPU <= 4:
		return 4096
	case numCPU <= 8:
		return 2048
	default:
		return 1024
	}
}

// EstimateOptimalKaratsubaThreshold returns the padded length below which
// the quadratic base case wins. CPUs with wide SIMD units run the base-case
// multiply-accumulate loop faster, which moves the crossover up.
func EstimateOptimalKaratsubaThreshold() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 64
	case cpu.X86.HasAVX2, cpu.ARM64.HasASIMD:
		return 32
	default:
		return 16
	}
}

// This file contains the environment variable and .env file overrides.

package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// DefaultEnvFile is loaded when present and --env-file is not given.
const DefaultEnvFile = ".env"

// loadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. An explicitly
// requested file must exist; the default file is optional.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		path = os.Getenv(EnvPrefix + "ENV_FILE")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apperrors.NewConfigError("cannot load env file %q: %v", path, err)
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the named flags (e.g. "q" and "quiet") was
// explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one environment key (without the BIGCALC_ prefix) to the
// flag names it shadows and a setter. Unparsable values are ignored.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of environment overrides.
var envOverrides = []envOverride{
	// Operands and operator
	{"X", []string{"x"}, func(c *AppConfig, v string) { c.X = v }},
	{"Y", []string{"y"}, func(c *AppConfig, v string) { c.Y = v }},
	{"OP", []string{"op"}, func(c *AppConfig, v string) { c.Op = v }},
	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},

	// Numeric overrides
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}, intSetter(func(c *AppConfig) *int { return &c.KaratsubaThreshold })},
	{"PARALLEL_THRESHOLD", []string{"parallel-threshold"}, intSetter(func(c *AppConfig) *int { return &c.ParallelThreshold })},
	{"MAX_DIGITS", []string{"max-digits"}, intSetter(func(c *AppConfig) *int { return &c.MaxDigits })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) { c.Addr = v }},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"REPL", []string{"repl"}, boolSetter(func(c *AppConfig) *bool { return &c.REPL })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
	{"SERVE", []string{"serve"}, boolSetter(func(c *AppConfig) *bool { return &c.Serve })},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive) and returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies BIGCALC_* values for every flag that was not
// set explicitly on the command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}

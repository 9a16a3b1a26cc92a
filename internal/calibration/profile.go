package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/bigcalc/internal/config"
)

// DefaultProfileFileName is the file name of the saved calibration, in the
// user's home directory.
const DefaultProfileFileName = ".bigcalc_calibration.json"

// CurrentProfileVersion is bumped whenever the profile format or the
// meaning of a threshold changes.
const CurrentProfileVersion = 1

// CalibrationProfile records the thresholds measured on one machine.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	OptimalKaratsubaThreshold int `json:"optimal_karatsuba_threshold"`
	OptimalParallelThreshold  int `json:"optimal_parallel_threshold"`

	CalibrationDigits int    `json:"calibration_digits"`
	CalibrationTime   string `json:"calibration_time"`
}

// NewProfile returns an empty profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// ProfileFromResult returns a profile holding the thresholds of res.
func ProfileFromResult(res Result) *CalibrationProfile {
	p := NewProfile()
	p.OptimalKaratsubaThreshold = res.Options.KaratsubaThreshold
	p.OptimalParallelThreshold = res.Options.ParallelThreshold
	p.CalibrationDigits = res.Digits
	p.CalibrationTime = res.Elapsed.Round(time.Millisecond).String()
	return p
}

// IsValid reports whether p was measured on hardware like the current one.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether p is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// Apply fills the zero ("auto") thresholds of cfg from p. A measured
// sequential optimum becomes -1 so that config.ApplyAdaptiveThresholds
// leaves it alone; the engine treats negative values as zero.
func (p *CalibrationProfile) Apply(cfg config.AppConfig) config.AppConfig {
	if cfg.KaratsubaThreshold == 0 && p.OptimalKaratsubaThreshold > 0 {
		cfg.KaratsubaThreshold = p.OptimalKaratsubaThreshold
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = p.OptimalParallelThreshold
		if cfg.ParallelThreshold == 0 {
			cfg.ParallelThreshold = -1
		}
	}
	return cfg
}

func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d (%s/%s, %d CPUs, %s): karatsuba=%d parallel=%d, measured on %d digits in %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.CalibratedAt.Format(time.RFC3339),
		p.OptimalKaratsubaThreshold, p.OptimalParallelThreshold, p.CalibrationDigits, p.CalibrationTime)
}

// SaveProfile writes p as indented JSON to path.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calibration profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing,
// unreadable or measured on other hardware it returns a fresh profile and
// loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the home directory, or
// in the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

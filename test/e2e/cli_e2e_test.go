package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName = "bigcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build bigcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:    "Product",
			args:    []string{"-x", "123456789", "-op", "*", "-y", "987654321"},
			wantOut: "121932631112635269",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "All Engines Comparison",
			args:    []string{"-x", "99999999999999999999", "-op", "+", "-y", "1", "--algo", "all"},
			wantOut: "100000000000000000000",
		},
		{
			name:    "Quiet Mode",
			args:    []string{"-x", "-7", "-op", "/", "-y", "2", "--quiet"},
			wantOut: "-3",
		},
		{
			name:    "Operands From Stdin",
			args:    []string{"-op", "%", "-q"},
			stdin:   "  -7\n 2\n",
			wantOut: "-1",
		},
		{
			name:    "Comparison",
			args:    []string{"-x", "-0", "-op", "==", "-y", "0", "-q"},
			wantOut: "true",
		},
		{
			name:     "Division By Zero",
			args:     []string{"-x", "5", "-op", "/", "-y", "0"},
			wantOut:  "division by zero",
			wantCode: 1,
		},
		{
			name:     "Malformed Operand",
			args:     []string{"-x", "12a", "-y", "1"},
			wantOut:  "invalid decimal",
			wantCode: 4,
		},
		{
			name:     "Unknown Engine",
			args:     []string{"-x", "1", "-y", "1", "--algo", "abacus"},
			wantOut:  "unrecognized engine",
			wantCode: 4,
		},
		{
			name:     "Operand Over Limit",
			args:     []string{"-x", "123456", "-y", "1", "--max-digits", "3"},
			wantOut:  "limit is 3",
			wantCode: 4,
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "bigcalc",
		},
		{
			name:    "REPL",
			args:    []string{"--repl"},
			stdin:   "2 * 21\nexit\n",
			wantOut: "= 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1", "HOME="+tmpDir)
			cmd.Stdin = strings.NewReader(tt.stdin)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running bigcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}

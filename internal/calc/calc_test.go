package calc

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestParseOp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Op
		wantErr bool
	}{
		{"+", OpAdd, false},
		{"%", OpRem, false},
		{"<=", OpLessEqual, false},
		{"!=", OpNotEqual, false},
		{"MUL", OpMul, false},
		{" div ", OpQuo, false},
		{"**", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownOp) {
			t.Errorf("ParseOp(%q) error = %v, want ErrUnknownOp", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseExpression(t *testing.T) {
	t.Parallel()
	expr, err := ParseExpression("  -7   /  2 ")
	if err != nil {
		t.Fatalf("ParseExpression: %v", err)
	}
	if expr.String() != "-7 / 2" {
		t.Errorf("String() = %q", expr.String())
	}
	if expr.Digits() != 1 {
		t.Errorf("Digits() = %d, want 1", expr.Digits())
	}

	for _, bad := range []string{"", "1 +", "1 + 2 3", "1 ^ 2", "1a + 2", "1 + -"} {
		if _, err := ParseExpression(bad); err == nil {
			t.Errorf("ParseExpression(%q) succeeded, want error", bad)
		}
	}
	if _, err := ParseExpression("1 +"); !errors.Is(err, ErrMalformedExpression) {
		t.Errorf("want ErrMalformedExpression, got %v", err)
	}
	var pe *bigint.ParseError
	if _, err := ParseExpression("1x + 2"); !errors.As(err, &pe) {
		t.Errorf("want *bigint.ParseError, got %v", err)
	}
}

func TestExpressionCheckLimit(t *testing.T) {
	t.Parallel()
	expr, err := ParseExpression("12345 * -12")
	if err != nil {
		t.Fatal(err)
	}
	if err := expr.CheckLimit(0); err != nil {
		t.Errorf("CheckLimit(0) = %v, want nil", err)
	}
	if err := expr.CheckLimit(5); err != nil {
		t.Errorf("CheckLimit(5) = %v, want nil", err)
	}
	var limitErr apperrors.OperandLimitError
	if err := expr.CheckLimit(4); !errors.As(err, &limitErr) || limitErr.Field != "x" || limitErr.Digits != 5 {
		t.Errorf("CheckLimit(4) = %v, want limit error on x", err)
	}
	if err := expr.CheckLimit(1); !errors.As(err, &limitErr) || limitErr.Field != "x" {
		t.Errorf("CheckLimit(1) = %v, want limit error on x first", err)
	}
}

func TestEnginesAgree(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	tests := []struct {
		line string
		want string
	}{
		{"0 + 0", "0"},
		{"999 + 1", "1000"},
		{"1000 - 1", "999"},
		{"123456789012345678901234567890 * 2", "246913578024691357802469135780"},
		{"100 / 9", "11"},
		{"100 % 9", "1"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"-0 == 0", "true"},
		{"-5 < 3", "true"},
		{"10 >= 11", "false"},
		{"12 != 12", "false"},
		{"-12 <= -12", "true"},
		{"99 > -100", "true"},
	}
	for _, name := range factory.List() {
		calc, err := factory.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		for _, tt := range tests {
			expr, err := ParseExpression(tt.line)
			if err != nil {
				t.Fatalf("ParseExpression(%q): %v", tt.line, err)
			}
			got, err := calc.Evaluate(context.Background(), nil, 0, expr)
			if err != nil {
				t.Errorf("%s: %s: unexpected error %v", name, tt.line, err)
				continue
			}
			if got != tt.want {
				t.Errorf("%s: %s = %s, want %s", name, tt.line, got, tt.want)
			}
		}
	}
}

func TestDivisionByZeroAllEngines(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	for name, calc := range factory.GetAll() {
		for _, line := range []string{"5 / 0", "5 % -0"} {
			expr, _ := ParseExpression(line)
			_, err := calc.Evaluate(context.Background(), nil, 0, expr)
			if !errors.Is(err, bigint.ErrDivisionByZero) {
				t.Errorf("%s: %s: got %v, want ErrDivisionByZero", name, line, err)
			}
		}
	}
}

func TestEvaluateReportsProgress(t *testing.T) {
	t.Parallel()
	calc := NewKaratsubaCalculator(bigint.DefaultOptions())
	ch := make(chan ProgressUpdate, 4)
	expr, _ := ParseExpression("6 * 7")
	if _, err := calc.Evaluate(context.Background(), ch, 3, expr); err != nil {
		t.Fatal(err)
	}
	close(ch)
	var values []float64
	for u := range ch {
		if u.CalculatorIndex != 3 {
			t.Errorf("CalculatorIndex = %d, want 3", u.CalculatorIndex)
		}
		values = append(values, u.Value)
	}
	if len(values) != 2 || values[0] != 0 || values[1] != 1 {
		t.Errorf("progress values = %v, want [0 1]", values)
	}
}

func TestEvaluateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	expr, _ := ParseExpression("1 + 1")
	if _, err := NewMathBigCalculator().Evaluate(ctx, nil, 0, expr); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestEvaluateTimeoutAbandonsWork(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	defer close(block)
	slow := &engine{name: "slow", eval: func(context.Context, Expression) (string, error) {
		<-block
		return "", nil
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	expr, _ := ParseExpression("1 + 1")
	if _, err := slow.Evaluate(ctx, nil, 0, expr); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want context.DeadlineExceeded", err)
	}
}

// Not parallel: it counts goroutines.
func TestEvaluateTimeoutStopsDecimalEngines(t *testing.T) {
	x := strings.Repeat("7", 200_000)
	y := strings.Repeat("3", 100_000)
	expr, err := NewExpression(x, "/", y)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []Calculator{NewKaratsubaCalculator(bigint.DefaultOptions()), NewSchoolbookCalculator()} {
		before := runtime.NumGoroutine()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		start := time.Now()
		_, err := c.Evaluate(ctx, nil, 0, expr)
		cancel()
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("%s: got %v, want context.DeadlineExceeded", c.Name(), err)
		}
		if d := time.Since(start); d > 2*time.Second {
			t.Errorf("%s: Evaluate returned after %v", c.Name(), d)
		}

		// The worker has already reported back; give it time to exit.
		deadline := time.Now().Add(time.Second)
		for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		if n := runtime.NumGoroutine(); n > before {
			t.Errorf("%s: %d goroutines after timeout, %d before: evaluation still running", c.Name(), n, before)
		}
	}
}

func TestEvaluateRecoversPanic(t *testing.T) {
	t.Parallel()
	bad := &engine{name: "bad", eval: func(context.Context, Expression) (string, error) { panic("boom") }}
	expr, _ := ParseExpression("1 + 1")
	if _, err := bad.Evaluate(context.Background(), nil, 0, expr); err == nil {
		t.Error("expected an error from a panicking engine")
	}
}

func TestFactory(t *testing.T) {
	t.Parallel()
	f := NewFactoryWithOptions(bigint.Options{KaratsubaThreshold: 4})

	c1, err := f.Get(KaratsubaName)
	if err != nil {
		t.Fatal(err)
	}
	c2, _ := f.Get(KaratsubaName)
	if c1 != c2 {
		t.Error("Get should return the cached instance")
	}

	if _, err := f.Get("nope"); !errors.Is(err, ErrUnknownCalculator) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownCalculator", err)
	}

	f.Register("custom", func(bigint.Options) Calculator { return NewMathBigCalculator() })
	names := f.List()
	found := false
	for i, n := range names {
		if n == "custom" {
			found = true
		}
		if i > 0 && names[i-1] > n {
			t.Errorf("List() not sorted: %v", names)
		}
	}
	if !found {
		t.Errorf("List() = %v, missing custom", names)
	}
	if len(f.GetAll()) != len(names) {
		t.Errorf("GetAll() size mismatch")
	}
}

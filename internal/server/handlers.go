package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// calcRequest holds the query parameters of /v1/calc.
type calcRequest struct {
	X    string `validate:"required,integer"`
	Op   string `validate:"required,operator"`
	Y    string `validate:"required,integer"`
	Algo string `validate:"omitempty,engine"`
}

// calcResponse is the body of a successful /v1/calc request. Exactly one
// of Value and Truth is set.
type calcResponse struct {
	RequestID  string         `json:"request_id"`
	Expression string         `json:"expression"`
	Engine     string         `json:"engine"`
	Value      *bigint.Int    `json:"value,omitempty"`
	Truth      *bool          `json:"truth,omitempty"`
	Digits     int            `json:"digits,omitempty"`
	Duration   string         `json:"duration"`
	Engines    []engineResult `json:"engines,omitempty"`
}

type engineResult struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
}

// newValidator registers the operand, operator and engine checks used by
// the calcRequest tags.
func newValidator(factory calc.CalculatorFactory) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := bigint.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("operator", func(fl validator.FieldLevel) bool {
		_, err := calc.ParseOp(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("engine", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name == orchestration.AllEngines || slices.Contains(factory.List(), name)
	})
	return v
}

var validationMessages = map[string]string{
	"required": "is required",
	"integer":  "is not a decimal integer",
	"operator": "is not a supported operator",
	"engine":   "is not a known engine",
}

// validationError turns the first validator failure into an
// apperrors.ValidationError naming the query parameter.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := validationMessages[fe.Tag()]
	if !ok {
		msg = "failed " + fe.Tag()
	}
	return apperrors.ValidationError{Field: strings.ToLower(fe.Field()), Message: msg}
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("bigcalc/server").Start(r.Context(), "server.calc")
	defer span.End()

	q := r.URL.Query()
	req := calcRequest{X: q.Get("x"), Op: q.Get("op"), Y: q.Get("y"), Algo: q.Get("algo")}
	// An unescaped "+" arrives as a space.
	if req.Op == " " {
		req.Op = "+"
	}
	if req.Algo == "" {
		req.Algo = s.cfg.Algo
	}
	if req.Algo == "" {
		req.Algo = config.DefaultAlgo
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, validationError(err))
		return
	}
	expr, err := calc.NewExpression(req.X, req.Op, req.Y)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := expr.CheckLimit(s.security.MaxDigits); err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}

	calculators := orchestration.GetCalculatorsToRun(req.Algo, s.factory)
	span.SetAttributes(
		attribute.String("expr.op", string(expr.Op)),
		attribute.Int("expr.digits", expr.Digits()),
		attribute.String("engine", req.Algo),
	)

	if !s.inFlight.TryAcquire(1) {
		s.metrics.ObserveEvaluation(string(expr.Op), "busy", expr.Digits(), 0)
		w.Header().Set("Retry-After", "1")
		s.writeError(w, r, http.StatusServiceUnavailable, errServerBusy)
		return
	}
	defer s.inFlight.Release(1)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	results := orchestration.ExecuteCalculations(ctx, calculators, expr, orchestration.NullProgressReporter{}, io.Discard)
	elapsed := time.Since(start)

	best, err := pickResult(results)
	status, class := statusFor(err)
	s.metrics.ObserveEvaluation(string(expr.Op), class, expr.Digits(), elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, r, status, err)
		return
	}

	resp := calcResponse{
		RequestID:  RequestIDFromContext(r.Context()),
		Expression: expr.String(),
		Engine:     best.Name,
		Duration:   format.FormatExecutionDuration(best.Duration),
	}
	if expr.Op.IsComparison() {
		truth := best.Value == "true"
		resp.Truth = &truth
	} else {
		v, err := bigint.Parse(best.Value)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		resp.Value = &v
		resp.Digits = v.Len()
	}
	if len(results) > 1 {
		for _, res := range results {
			er := engineResult{Name: res.Name, Duration: format.FormatExecutionDuration(res.Duration)}
			if res.Err != nil {
				er.Error = res.Err.Error()
			}
			resp.Engines = append(resp.Engines, er)
		}
	}
	span.SetStatus(codes.Ok, "")
	span.AddEvent("evaluated", trace.WithAttributes(attribute.Int("result.digits", resp.Digits)))
	writeJSON(w, http.StatusOK, resp)
}

// errServerBusy is returned when every evaluation slot is taken.
var errServerBusy = errors.New("server busy: too many evaluations in flight")

// errEnginesDisagree is returned when a comparison run yields different
// values.
var errEnginesDisagree = errors.New("engines disagree")

// pickResult returns the fastest successful result, or the first error
// when every engine failed.
func pickResult(results []orchestration.CalculationResult) (orchestration.CalculationResult, error) {
	var best *orchestration.CalculationResult
	var firstErr error
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if best == nil {
			best = res
			continue
		}
		if res.Value != best.Value {
			return orchestration.CalculationResult{}, errEnginesDisagree
		}
		if res.Duration < best.Duration {
			best = res
		}
	}
	if best == nil {
		if firstErr == nil {
			firstErr = errors.New("no engine ran")
		}
		return orchestration.CalculationResult{}, firstErr
	}
	return *best, nil
}

// statusFor maps an evaluation error to an HTTP status and a metrics label.
func statusFor(err error) (int, string) {
	var limitErr apperrors.OperandLimitError
	switch {
	case err == nil:
		return http.StatusOK, "ok"
	case errors.Is(err, bigint.ErrDivisionByZero):
		return http.StatusUnprocessableEntity, "division_by_zero"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.As(err, &limitErr):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, errServerBusy):
		return http.StatusServiceUnavailable, "busy"
	case errors.Is(err, errEnginesDisagree):
		return http.StatusInternalServerError, "mismatch"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := errorResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Error:     err.Error(),
	}
	var valErr apperrors.ValidationError
	var limitErr apperrors.OperandLimitError
	switch {
	case errors.As(err, &valErr):
		resp.Field = valErr.Field
	case errors.As(err, &limitErr):
		resp.Field = limitErr.Field
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("evaluation failed", err, logging.String("request_id", resp.RequestID))
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

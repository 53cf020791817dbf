package script

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/app"
	"github.com/roach88/fittrack/internal/session"
)

// ErrLoginFailed is returned when the script's credentials do not match.
var ErrLoginFailed = errors.New("login failed")

// Step outcome values.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int             `json:"index"`
	Op     string          `json:"op"`
	Status string          `json:"status"`
	Failed bool            `json:"failed,omitempty"`
	Code   string          `json:"code,omitempty"`
	Error  string          `json:"error,omitempty"`
	Result *session.Result `json:"result,omitempty"`
}

// Report summarizes a script run.
type Report struct {
	Name      string       `json:"name"`
	Username  string       `json:"username"`
	SessionID string       `json:"session_id"`
	Steps     []StepResult `json:"steps"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
}

// OK reports whether every step matched its expectation.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Run executes s against a. Account and login problems abort the run and
// are returned as errors. Step problems never abort; they are recorded in
// the report, and unknown operations are skipped.
func Run(ctx context.Context, a *app.App, s *Script, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("script").With(zap.String("script", s.Name))

	if s.CreateAccount {
		if err := a.CreateAccount(ctx, s.User.Username, s.User.Password); err != nil {
			return nil, fmt.Errorf("create account %q: %w", s.User.Username, err)
		}
	}

	sess, ok, err := a.Login(ctx, s.User.Username, s.User.Password)
	if err != nil {
		return nil, fmt.Errorf("login %q: %w", s.User.Username, err)
	}
	if !ok {
		return nil, fmt.Errorf("login %q: %w", s.User.Username, ErrLoginFailed)
	}

	report := &Report{
		Name:      s.Name,
		Username:  sess.Username,
		SessionID: sess.ID,
		Steps:     make([]StepResult, 0, len(s.Steps)),
	}

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sr := runStep(ctx, sess, i, step)
		switch {
		case sr.Status == StatusSkipped:
			report.Skipped++
		case sr.Failed:
			report.Failed++
		}
		log.Debug("step finished",
			zap.Int("index", i),
			zap.String("op", step.Op),
			zap.String("status", sr.Status),
			zap.Bool("failed", sr.Failed),
		)
		report.Steps = append(report.Steps, sr)
	}

	log.Info("script finished",
		zap.Int("steps", len(report.Steps)),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

func runStep(ctx context.Context, sess *session.Session, index int, step Step) StepResult {
	sr := StepResult{Index: index, Op: step.Op}

	cmd, err := session.ParseCommand(step.Op, step.Args)
	if errors.Is(err, session.ErrUnknownOperation) {
		sr.Status = StatusSkipped
		sr.Code = app.ErrorCode(err)
		sr.Error = err.Error()
		return sr
	}

	var res session.Result
	if err == nil {
		res, err = sess.Dispatch(ctx, cmd)
	}

	if err != nil {
		sr.Status = StatusError
		sr.Code = app.ErrorCode(err)
		sr.Error = err.Error()
		sr.Failed = step.Expect != ExpectError
		return sr
	}

	sr.Status = StatusOK
	sr.Result = &res
	sr.Failed = step.Expect == ExpectError
	return sr
}

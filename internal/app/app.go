// Package app wires the fittrack components over a single store and is the
// entry point the shells use: create an account, log in, get a Session.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/roach88/fittrack/internal/category"
	"github.com/roach88/fittrack/internal/goal"
	"github.com/roach88/fittrack/internal/identity"
	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/model"
	"github.com/roach88/fittrack/internal/session"
	"github.com/roach88/fittrack/internal/store"
)

// Options tune core behavior.
type Options struct {
	// OwnerScopedGoals restricts goal updates and deletes to the goal's owner.
	OwnerScopedGoals bool
}

// App is the fittrack core.
type App struct {
	identity *identity.Service
	services session.Services
	log      *zap.Logger
}

// New builds the core over st. The caller owns st and closes it.
func New(st *store.Store, opts Options, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		identity: identity.NewService(st, log),
		services: session.Services{
			Ledger:           ledger.New(st, log),
			Categories:       category.New(st, log),
			Goals:            goal.New(st, log),
			OwnerScopedGoals: opts.OwnerScopedGoals,
		},
		log: log,
	}
}

// CreateAccount registers a new account.
func (a *App) CreateAccount(ctx context.Context, username, password string) error {
	return a.identity.CreateAccount(ctx, username, password)
}

// Login returns a Session when the credentials match. ok is false for a
// mismatch; err is set only for store failures.
func (a *App) Login(ctx context.Context, username, password string) (sess *session.Session, ok bool, err error) {
	ok, err = a.identity.Login(ctx, username, password)
	if err != nil || !ok {
		return nil, false, err
	}
	sess = session.New(model.NormalizeName(username), a.services, a.log)
	a.log.Info("login", zap.String("username", sess.Username), zap.String("session_id", sess.ID))
	return sess, true, nil
}

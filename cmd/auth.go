package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/session"
	"github.com/wrenhollow/reel/internal/shared"
)

// AuthLogin exchanges email and password for a token pair and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("signing in", "email", email)
	if err := r.manager.Login(ctx, email, password); err != nil {
		return err
	}

	if account := r.manager.Account(); account != nil {
		return r.writePlain("✓ Signed in as %s\n", account.Username)
	}
	return r.writePlain("✓ Signed in\n")
}

// AuthRegister creates an account, then signs in with the new credentials.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	email := cmd.String("email")
	username := cmd.String("username")
	password := cmd.String("password")

	r.logger.Info("registering account", "email", email, "username", username)
	if err := r.manager.Register(ctx, email, username, password); err != nil {
		return err
	}
	return r.writePlain("✓ Account created, signed in as %s\n", username)
}

// AuthStatus resolves the stored session and prints its state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Health(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	r.writePlain("✓ Service is healthy\n")

	if r.manager == nil {
		return r.writePlain("Session: no local database, run 'reel setup'\n")
	}

	state := r.manager.Startup(ctx)
	r.writePlain("Session: %s\n", state)

	if state == session.Authenticated {
		if account := r.manager.Account(); account != nil {
			r.writePlain("Account: %s <%s>\n", account.Username, account.Email)
		}
	}
	return nil
}

// AuthRefresh forces a token renewal regardless of the ticker.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	if state := r.manager.Renew(ctx); state != session.Authenticated {
		return fmt.Errorf("%w: session is now %s", shared.ErrRefreshFailed, state)
	}
	return r.writePlain("✓ Tokens renewed\n")
}

// AuthLogout clears stored credentials.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	if err := r.manager.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

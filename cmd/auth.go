package main

import (
	"context"

	"github.com/lttslabs/etlctl/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a token and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	creds := session.Credentials{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Code:     cmd.String("code"),
	}

	r.logger.Info("logging in", "username", creds.Username)

	res, err := r.sess.Login(ctx, r.auth, creds)
	if err != nil {
		return err
	}

	if res.Message != "" {
		r.writePlain("%s\n", res.Message)
	}
	return r.writePlain("✓ Logged in as %s\n", creds.Username)
}

// AuthLogout clears the in-memory and persisted token. Local only; the
// backend holds no revocable server-side session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if !r.sess.LoggedIn() {
		return r.writePlain("Not logged in\n")
	}

	r.sess.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus shows whether a token is held.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if r.sess.LoggedIn() {
		return r.writePlain("✓ Authenticated\nBackend: %s\n", r.config.API.BaseURL)
	}
	return r.writePlain("✗ Not authenticated\nRun 'etlctl auth login' to log in\n")
}

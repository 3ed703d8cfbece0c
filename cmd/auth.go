package main

import (
	"context"

	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login signs a fan in, creating the account on first use.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	result, err := r.session.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	if result.Created {
		r.writePlain("✓ Account created for %s\n", result.User.Email)
	}
	r.writePlain("✓ Logged in as %s\n", result.User.DisplayName())
	if result.Awarded {
		r.writePlain("🎁 Daily login: +1 point\n")
	}
	r.writePlain("Points: %d\n", result.User.Points)
	return nil
}

// Logout clears the session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.session.CurrentUser()
	if !ok {
		r.writePlain("Not logged in\n")
		return nil
	}
	if err := r.session.Logout(); err != nil {
		return err
	}
	r.writePlain("✓ Logged out %s\n", user.DisplayName())
	return nil
}

// Whoami prints the signed-in fan.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.session.CurrentUser()
	if cmd.Bool("json") {
		if !ok {
			return r.writeJSON(nil, cmd.Bool("pretty"))
		}
		user.Password = ""
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	if !ok {
		r.writePlain("Not logged in\n")
		return nil
	}

	r.writePlainHeader(user.DisplayName())
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Points: %d\n", user.Points)
	r.writePlain("Joined: %s\n", shared.DateString(user.JoinDate))
	return nil
}

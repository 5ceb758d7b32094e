package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"musichub/internal/client"
	"musichub/internal/formatter"
)

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the account session",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create a new account and sign in",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "secret", Usage: "Account secret", Required: true},
				},
				Action: r.Signup,
			},
			{
				Name:  "signin",
				Usage: "Sign in with an existing account",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "secret", Usage: "Account secret", Required: true},
				},
				Action: r.Signin,
			},
			{
				Name:   "signout",
				Usage:  "Delete the stored session",
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.Signout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in account",
				Flags:  []cli.Flag{sessionFlag()},
				Action: r.Whoami,
			},
		},
	}
}

func (r *Runner) Signup(ctx context.Context, cmd *cli.Command) error {
	api, err := r.apiClient(cmd, false)
	if err != nil {
		return err
	}

	result, err := api.Signup(ctx, cmd.String("name"), cmd.String("email"), cmd.String("secret"))
	if err != nil {
		return err
	}

	return r.saveSession(cmd, result)
}

func (r *Runner) Signin(ctx context.Context, cmd *cli.Command) error {
	api, err := r.apiClient(cmd, false)
	if err != nil {
		return err
	}

	result, err := api.Signin(ctx, cmd.String("email"), cmd.String("secret"))
	if err != nil {
		return err
	}

	return r.saveSession(cmd, result)
}

func (r *Runner) Signout(ctx context.Context, cmd *cli.Command) error {
	path, err := r.sessionPath(cmd)
	if err != nil {
		return err
	}

	if err := client.ClearSession(path); err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Message("Signed out"))
}

func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	path, err := r.sessionPath(cmd)
	if err != nil {
		return err
	}

	session, err := client.LoadSession(path)
	if err != nil {
		return fmt.Errorf("not signed in: %w", err)
	}

	return r.writePlain("%s", formatter.Account(session.Account))
}

func (r *Runner) saveSession(cmd *cli.Command, result *client.AuthResult) error {
	path, err := r.sessionPath(cmd)
	if err != nil {
		return err
	}

	session := &client.Session{
		AccessToken: result.AccessToken,
		Account:     result.UserAccount,
	}
	if err := session.Save(path); err != nil {
		return err
	}

	if err := r.writePlain("%s", formatter.Message(result.Message)); err != nil {
		return err
	}
	return r.writePlain("%s", formatter.Account(result.UserAccount))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/urfave/cli/v3"

	"musichub/internal/auth"
	"musichub/internal/repositories"
	"musichub/internal/server"
	"musichub/internal/services"
	"musichub/internal/shared"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the music hub API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Port to run the server on",
				Sources: cli.EnvVars("MUSICHUB_PORT"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to the SQLite database",
				Sources: cli.EnvVars("MUSICHUB_DB"),
			},
			&cli.StringFlag{
				Name:    "jwt-secret",
				Usage:   "Secret used to sign session tokens",
				Sources: cli.EnvVars("MUSICHUB_JWT_SECRET"),
			},
		},
		Action: r.Serve,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and run database migrations",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			if err := shared.CreateConfigFile(path); err != nil {
				r.logger.Warn("config file not created", "error", err)
			} else {
				r.logger.Info("created config file", "path", path)
			}

			config := r.loadConfig(cmd)

			db, err := shared.NewDatabase(config.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := shared.RunMigrations(db); err != nil {
				return err
			}

			r.logger.Info("database ready", "path", config.Database.Path)
			return nil
		},
	}
}

// Serve wires the repositories, credential store, session issuer, and catalog
// gateway into the HTTP server and runs it until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}
	if path := cmd.String("db"); path != "" {
		config.Database.Path = path
	}
	if secret := cmd.String("jwt-secret"); secret != "" {
		config.Server.JWTSecret = secret
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	accounts := repositories.NewAccountRepository(db)
	collections := repositories.NewCollectionRepository(db)

	srv := server.New(server.Options{
		Logger:      r.logger,
		Credentials: auth.NewCredentialStore(accounts),
		Issuer:      auth.NewIssuer(config.Server.JWTSecret),
		Collections: collections,
		Catalog: services.NewSpotifyCatalog(
			config.Credentials.Spotify.ClientID,
			config.Credentials.Spotify.ClientSecret,
		),
	})

	httpServer := &http.Server{
		Addr:    config.Server.Host + ":" + strconv.Itoa(config.Server.Port),
		Handler: srv.Handler(),
	}

	quit := make(chan os.Signal, 2)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		r.logger.Info("serving", "address", httpServer.Addr)

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
			quit <- os.Interrupt
		}
	}()

	signal.Notify(
		quit,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	<-quit

	r.logger.Info("server shutting down")

	go httpServer.Close()

	wg.Wait()
	return nil
}

package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"musichub/internal/formatter"
)

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the external music catalog",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			apiFlag(), sessionFlag(),
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of results", Value: 10},
		},
		Action: r.Search,
		Commands: []*cli.Command{
			{
				Name:  "new-releases",
				Usage: "List newly released records",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of results", Value: 20},
				},
				Action: r.NewReleases,
			},
		},
	}
}

func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")
	if query == "" {
		_, err := requireArg(cmd, "query")
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	results, err := api.Search(ctx, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Descriptors(results))
}

func (r *Runner) NewReleases(ctx context.Context, cmd *cli.Command) error {
	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	results, err := api.NewReleases(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Descriptors(results))
}

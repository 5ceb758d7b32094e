package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"musichub/internal/formatter"
	"musichub/internal/shared"
)

func collectionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "collections",
		Aliases: []string{"col"},
		Usage:   "Manage track collections",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List your collections, newest first",
				Flags:  []cli.Flag{apiFlag(), sessionFlag()},
				Action: r.CollectionsList,
			},
			{
				Name:      "show",
				Usage:     "Show one collection with its tracks",
				ArgsUsage: "<collection-id>",
				Flags:     []cli.Flag{apiFlag(), sessionFlag()},
				Action:    r.CollectionShow,
			},
			{
				Name:  "create",
				Usage: "Create a new collection",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.StringFlag{Name: "title", Usage: "Collection title"},
					&cli.StringFlag{Name: "description", Usage: "Collection description"},
				},
				Action: r.CollectionCreate,
			},
			{
				Name:      "update",
				Usage:     "Edit a collection's title and description",
				ArgsUsage: "<collection-id>",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.StringFlag{Name: "title", Usage: "Collection title"},
					&cli.StringFlag{Name: "description", Usage: "Collection description"},
				},
				Action: r.CollectionUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a collection (tracks are kept in the store)",
				ArgsUsage: "<collection-id>",
				Flags:     []cli.Flag{apiFlag(), sessionFlag()},
				Action:    r.CollectionDelete,
			},
		},
	}
}

// requireArg returns the first positional argument or a usage error.
func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return arg, nil
}

func (r *Runner) CollectionsList(ctx context.Context, cmd *cli.Command) error {
	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	collections, err := api.Collections(ctx)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collections(collections))
}

func (r *Runner) CollectionShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "collection-id")
	if err != nil {
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	collection, err := api.Collection(ctx, id)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collection(collection))
}

func (r *Runner) CollectionCreate(ctx context.Context, cmd *cli.Command) error {
	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	collection, err := api.CreateCollection(ctx, cmd.String("title"), cmd.String("description"))
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collection(collection))
}

func (r *Runner) CollectionUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "collection-id")
	if err != nil {
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	collection, err := api.UpdateCollection(ctx, id, cmd.String("title"), cmd.String("description"))
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collection(collection))
}

func (r *Runner) CollectionDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "collection-id")
	if err != nil {
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	if err := api.DeleteCollection(ctx, id); err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Message("Collection deleted successfully"))
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"musichub/internal/formatter"
	"musichub/internal/models"
	"musichub/internal/shared"
)

func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Manage tracks within a collection",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a catalog track to a collection",
				ArgsUsage: "<collection-id>",
				Flags: []cli.Flag{
					apiFlag(), sessionFlag(),
					&cli.StringFlag{Name: "id", Usage: "Spotify track id", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Track name", Required: true},
					&cli.StringFlag{Name: "performer", Usage: "Performer", Required: true},
					&cli.StringFlag{Name: "record", Usage: "Record title", Required: true},
					&cli.StringFlag{Name: "cover", Usage: "Cover image URL"},
				},
				Action: r.TrackAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a track from a collection",
				ArgsUsage: "<collection-id> <track-id>",
				Flags:     []cli.Flag{apiFlag(), sessionFlag()},
				Action:    r.TrackRemove,
			},
			{
				Name:      "show",
				Usage:     "Look up a track in the external catalog",
				ArgsUsage: "<spotify-track-id>",
				Flags:     []cli.Flag{apiFlag(), sessionFlag()},
				Action:    r.TrackShow,
			},
		},
	}
}

func (r *Runner) TrackAdd(ctx context.Context, cmd *cli.Command) error {
	collectionID, err := requireArg(cmd, "collection-id")
	if err != nil {
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	descriptor := &models.TrackDescriptor{
		SpotifyTrackID: cmd.String("id"),
		TrackName:      cmd.String("name"),
		Performer:      cmd.String("performer"),
		RecordTitle:    cmd.String("record"),
		CoverImage:     cmd.String("cover"),
	}

	collection, err := api.AddTrack(ctx, collectionID, descriptor)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collection(collection))
}

func (r *Runner) TrackRemove(ctx context.Context, cmd *cli.Command) error {
	collectionID, err := requireArg(cmd, "collection-id")
	if err != nil {
		return err
	}
	trackID := cmd.Args().Get(1)
	if trackID == "" {
		return fmt.Errorf("%w: track-id", shared.ErrMissingArgument)
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	collection, err := api.RemoveTrack(ctx, collectionID, trackID)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Collection(collection))
}

func (r *Runner) TrackShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "spotify-track-id")
	if err != nil {
		return err
	}

	api, err := r.apiClient(cmd, true)
	if err != nil {
		return err
	}

	descriptor, err := api.Track(ctx, id)
	if err != nil {
		return err
	}

	return r.writePlain("%s", formatter.Descriptors([]models.TrackDescriptor{*descriptor}))
}

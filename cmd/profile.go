package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/shared"
)

// ProfileShow fetches and prints a user's profile with their uploads.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.StringArg("user-id")
	if userID == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	profile, err := r.client.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlainHeader("@" + profile.Username)
	r.writePlain("Total likes: %s\n", shared.FormatCount(profile.LikesCount))
	r.writePlain("Uploads: %d\n", len(profile.Videos))
	for i, v := range profile.Videos {
		r.writePlain("%d. %s (▶ %s) [%s]\n", i+1, v.Title, shared.FormatCount(v.Views), v.ID)
	}
	return nil
}

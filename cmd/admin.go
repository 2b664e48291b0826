package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/formatter"
	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
	"github.com/wrenhollow/reel/internal/tasks"
)

// refreshQueue runs a queue refresh while draining progress into the logger.
func (r *Runner) refreshQueue(ctx context.Context) (*tasks.QueueResult, error) {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
		close(done)
	}()

	result, err := r.engine.Refresh(ctx, progress)
	close(progress)
	<-done
	return result, err
}

// AdminQueue refreshes and prints the moderation review queue.
func (r *Runner) AdminQueue(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	result, err := r.refreshQueue(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainHeader(fmt.Sprintf("Review queue: %d videos, %d comments", len(result.Videos), len(result.Comments)))
	for i, v := range result.Videos {
		r.writePlain("%d. [video] %s by %s: %s\n", i+1, v.Title, v.Username, v.Reason)
	}
	for i, c := range result.Comments {
		line := fmt.Sprintf("%d. [comment] %q by %s", i+1, c.Content, c.Username)
		if label, score := c.Labels.Dominant(); label != "" {
			line += fmt.Sprintf(" (%s %.0f%%)", models.LabelName(label), score*100)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

// AdminApproveVideo clears a video's rejection.
func (r *Runner) AdminApproveVideo(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.engine.ApproveVideo(ctx, nil, videoID); err != nil {
		return err
	}
	return r.writePlain("✓ Approved video %s\n", videoID)
}

// AdminApproveComment clears a comment's rejection.
func (r *Runner) AdminApproveComment(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.engine.ApproveComment(ctx, nil, commentID); err != nil {
		return err
	}
	return r.writePlain("✓ Approved comment %s\n", commentID)
}

// AdminExport refreshes the queue and writes it to disk in the chosen format.
func (r *Runner) AdminExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	result, err := r.refreshQueue(ctx)
	if err != nil {
		return err
	}

	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")

	switch format {
	case "csv":
		files, err := formatter.WriteCSVExport(result.Videos, result.Comments, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s, %s, %s\n", files.VideosFile, files.CommentsFile, files.SummaryFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(result.Videos, result.Comments, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(result.Videos, result.Comments, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

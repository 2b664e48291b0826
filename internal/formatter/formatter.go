// package formatter provides functions to export moderation review data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// VideosToCSV converts rejected videos to CSV with columns: ID, Title, Username, Reason, CreatedAt
func VideosToCSV(videos []models.RejectedVideo) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Username", "Reason", "CreatedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range videos {
		record := []string{
			v.ID,
			v.Title,
			v.Username,
			v.Reason,
			v.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CommentsToCSV converts rejected comments to CSV with columns: ID, Content, Username, Reason, Score, Label
func CommentsToCSV(comments []models.RejectedComment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Content", "Username", "Reason", "Score", "Label"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, c := range comments {
		label, _ := c.Labels.Dominant()
		record := []string{
			c.ID,
			c.Content,
			c.Username,
			c.Reason,
			strconv.FormatFloat(c.Score, 'f', 2, 64),
			models.LabelName(label),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders the review queue as a Markdown report.
func ToMarkdown(videos []models.RejectedVideo, comments []models.RejectedComment) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Moderation Review Queue\n\n")
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", len(videos)))
	buf.WriteString(fmt.Sprintf("**Comments**: %d\n\n", len(comments)))

	if len(videos) > 0 {
		buf.WriteString("## Rejected Videos\n\n")
		for i, v := range videos {
			byPart := ""
			if v.Username != "" {
				byPart = fmt.Sprintf(" by %s", v.Username)
			}
			buf.WriteString(fmt.Sprintf("%d. %s%s: %s\n", i+1, v.Title, byPart, v.Reason))
		}
		buf.WriteString("\n")
	}

	if len(comments) > 0 {
		buf.WriteString("## Rejected Comments\n\n")
		for i, c := range comments {
			buf.WriteString(fmt.Sprintf("%d. %q", i+1, c.Content))
			if label, score := c.Labels.Dominant(); label != "" {
				buf.WriteString(fmt.Sprintf(" [%s %.0f%%]", models.LabelName(label), score*100))
			}
			buf.WriteString(fmt.Sprintf(" (%s)\n", c.Reason))
		}
	}

	return buf.Bytes(), nil
}

// ToText renders the review queue as plain text.
func ToText(videos []models.RejectedVideo, comments []models.RejectedComment) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Review queue: %d videos, %d comments\n\n", len(videos), len(comments)))

	for i, v := range videos {
		buf.WriteString(fmt.Sprintf("%d. [video] %s: %s\n", i+1, v.Title, v.Reason))
	}
	for i, c := range comments {
		buf.WriteString(fmt.Sprintf("%d. [comment] %s: %s\n", i+1, c.Content, c.Reason))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates a JSON representation of the queue counts.
func ToSummaryJSON(videos []models.RejectedVideo, comments []models.RejectedComment) ([]byte, error) {
	summary := map[string]int{
		"videos":   len(videos),
		"comments": len(comments),
	}
	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	VideosFile   string
	CommentsFile string
	SummaryFile  string
}

// WriteCSVExport exports the review queue to CSV with an accompanying summary JSON file.
//
// Defaults to "review" as the base filename & creates {base}_videos.csv,
// {base}_comments.csv and {base}_summary.json
func WriteCSVExport(videos []models.RejectedVideo, comments []models.RejectedComment, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "review"
	}

	videoData, err := VideosToCSV(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to generate video CSV: %w", err)
	}
	videosFile := baseFilepath + "_videos.csv"
	if err := os.WriteFile(videosFile, videoData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	commentData, err := CommentsToCSV(comments)
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment CSV: %w", err)
	}
	commentsFile := baseFilepath + "_comments.csv"
	if err := os.WriteFile(commentsFile, commentData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(videos, comments)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}
	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVExportResult{
		VideosFile:   videosFile,
		CommentsFile: commentsFile,
		SummaryFile:  summaryFile,
	}, nil
}

// WriteMarkdownExport exports the review queue to a Markdown report.
//
// Defaults to review.md as the filename.
func WriteMarkdownExport(videos []models.RejectedVideo, comments []models.RejectedComment, filepath string) (string, error) {
	if filepath == "" {
		filepath = "review.md"
	}

	mdData, err := ToMarkdown(videos, comments)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports the review queue to plain text.
//
// Defaults to review.txt as the filename.
func WriteTextExport(videos []models.RejectedVideo, comments []models.RejectedComment, filepath string) (string, error) {
	if filepath == "" {
		filepath = "review.txt"
	}

	textData, err := ToText(videos, comments)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

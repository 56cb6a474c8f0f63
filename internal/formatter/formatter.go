// package formatter renders dashboard data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/models"
)

// PostsToCSV converts recent posts to CSV with columns: ID, Status, CreatedAt, Content
func PostsToCSV(posts []models.Post) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Status", "CreatedAt", "Content"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, post := range posts {
		record := []string{
			post.ID,
			string(post.Status),
			post.CreatedAt.Format(time.RFC3339),
			post.Content,
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

// PostsToText converts recent posts to plain text, most recent first
func PostsToText(posts []models.Post) []byte {
	var buf bytes.Buffer

	if len(posts) == 0 {
		buf.WriteString("No posts yet.\n")
		return buf.Bytes()
	}

	for i, post := range posts {
		marker := "✓"
		if post.Status != models.PostSuccess {
			marker = "✗"
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s] %s\n", i+1, marker, post.CreatedAt.Format("2006-01-02 15:04"), post.Content))
	}

	return buf.Bytes()
}

// SnapshotToMarkdown renders a full dashboard snapshot as a Markdown report
func SnapshotToMarkdown(snap dashboard.Snapshot) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Dashboard\n\n")
	if !snap.RefreshedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("_Refreshed %s_\n\n", snap.RefreshedAt.Format(time.RFC1123)))
	}

	buf.WriteString("## Stats\n\n")
	buf.WriteString(fmt.Sprintf("| Total | Successful | Failed | Scheduled |\n|---|---|---|---|\n| %d | %d | %d | %d |\n\n",
		snap.Stats.TotalPosts, snap.Stats.SuccessfulPosts, snap.Stats.FailedPosts, snap.Stats.ScheduledPosts))

	buf.WriteString("## Twitter\n\n")
	if snap.Account != nil {
		buf.WriteString(fmt.Sprintf("Connected as **%s** (@%s)\n\n", snap.Account.Name, snap.Account.ScreenName))
	} else {
		buf.WriteString("Not connected\n\n")
	}

	buf.WriteString("## Content\n\n")
	buf.WriteString(fmt.Sprintf("- Topic: %s\n- Tone: %s\n- Length: %s\n- Hashtags: %s\n- Emojis: %s\n\n",
		snap.Config.Topic, snap.Config.Tone, snap.Config.Length,
		strconv.FormatBool(snap.Config.Hashtags), strconv.FormatBool(snap.Config.Emojis)))

	buf.WriteString("## Schedule\n\n")
	enabled := "disabled"
	if snap.Schedule.Enabled {
		enabled = "enabled"
	}
	buf.WriteString(fmt.Sprintf("- Frequency: %s\n- Time: %s %s\n- Automation: %s\n\n",
		snap.Schedule.Frequency, snap.Schedule.TimeOfDay, snap.Schedule.Timezone, enabled))

	buf.WriteString(fmt.Sprintf("## Recent Posts (%d)\n\n", len(snap.Posts)))
	for _, post := range snap.Posts {
		buf.WriteString(fmt.Sprintf("- [%s] %s — %s\n", post.Status, post.CreatedAt.Format("2006-01-02 15:04"), post.Content))
	}

	return buf.Bytes()
}

// Truncate shortens s to at most max characters, appending "..." when
// anything was cut. Characters, not bytes: multi-byte content is never
// split mid-rune.
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

package formatter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/models"
)

func samplePosts() []models.Post {
	return []models.Post{
		{ID: "p2", Content: "newer post", Status: models.PostSuccess, CreatedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "p1", Content: "older, \"quoted\" post", Status: models.PostFailed, CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func TestPostsToCSV(t *testing.T) {
	t.Run("writes header and one row per post", func(t *testing.T) {
		data, err := PostsToCSV(samplePosts())
		if err != nil {
			t.Fatalf("PostsToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[0][0] != "ID" || records[0][3] != "Content" {
			t.Errorf("unexpected header: %v", records[0])
		}
		if records[2][3] != `older, "quoted" post` {
			t.Errorf("expected quoting round-trip, got %q", records[2][3])
		}
	})

	t.Run("empty input yields only the header", func(t *testing.T) {
		data, err := PostsToCSV(nil)
		if err != nil {
			t.Fatalf("PostsToCSV failed: %v", err)
		}
		if lines := strings.Count(string(data), "\n"); lines != 1 {
			t.Errorf("expected only the header line, got %d lines", lines)
		}
	})
}

func TestPostsToText(t *testing.T) {
	t.Run("marks success and failure", func(t *testing.T) {
		text := string(PostsToText(samplePosts()))

		if !strings.Contains(text, "✓") {
			t.Error("expected success marker")
		}
		if !strings.Contains(text, "✗") {
			t.Error("expected failure marker")
		}
		if !strings.Contains(text, "newer post") {
			t.Error("expected post content")
		}
	})

	t.Run("empty input has a placeholder", func(t *testing.T) {
		if text := string(PostsToText(nil)); !strings.Contains(text, "No posts yet") {
			t.Errorf("unexpected output: %q", text)
		}
	})
}

func TestSnapshotToMarkdown(t *testing.T) {
	t.Run("renders every section", func(t *testing.T) {
		snap := dashboard.Snapshot{
			Stats:    models.Stats{TotalPosts: 10, SuccessfulPosts: 8, FailedPosts: 2},
			Account:  &models.LinkedAccount{Name: "Ada", ScreenName: "ada"},
			Config:   models.ContentConfig{Topic: "go", Tone: models.ToneCasual, Length: models.LengthShort},
			Schedule: models.Schedule{Frequency: models.FrequencyDaily, TimeOfDay: "09:00", Timezone: "UTC", Enabled: true},
			Posts:    samplePosts(),
		}

		md := string(SnapshotToMarkdown(snap))

		for _, want := range []string{"# Dashboard", "## Stats", "## Twitter", "## Content", "## Schedule", "## Recent Posts"} {
			if !strings.Contains(md, want) {
				t.Errorf("expected section %q", want)
			}
		}
		if !strings.Contains(md, "@ada") {
			t.Error("expected the linked account handle")
		}
		if !strings.Contains(md, "enabled") {
			t.Error("expected the automation status")
		}
	})

	t.Run("disconnected account renders as not connected", func(t *testing.T) {
		md := string(SnapshotToMarkdown(dashboard.Snapshot{}))
		if !strings.Contains(md, "Not connected") {
			t.Error("expected 'Not connected'")
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		if got := Truncate("hello", 60); got != "hello" {
			t.Errorf("unexpected result: %q", got)
		}
	})

	t.Run("long strings cut on a character boundary", func(t *testing.T) {
		long := strings.Repeat("a", 100)
		got := Truncate(long, 60)
		if len(got) != 60 || !strings.HasSuffix(got, "...") {
			t.Errorf("unexpected result: %q", got)
		}
	})

	t.Run("multi-byte content stays valid UTF-8", func(t *testing.T) {
		long := strings.Repeat("🚀", 40)
		got := Truncate(long, 60)
		if !utf8.ValidString(got) {
			t.Errorf("invalid UTF-8 after truncation: %q", got)
		}
		if count := utf8.RuneCountInString(got); count != 60 {
			t.Errorf("expected 60 characters, got %d", count)
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis suffix, got %q", got)
		}
	})
}

package models

import (
	"fmt"
	"time"
)

// UserProfile represents the authenticated user as returned by the backend.
// Immutable once received; replaced wholesale on login.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session pairs the opaque bearer token with the user it belongs to.
//
// A session is either fully present (token and user both set) or fully
// absent; no partial state is observable outside the session manager.
type Session struct {
	Token string
	User  UserProfile
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.ID != ""
}

// LinkedAccount represents the connected Twitter account.
// A nil *LinkedAccount means "not connected".
type LinkedAccount struct {
	TwitterUserID   string `json:"twitter_user_id"`
	Name            string `json:"name"`
	ScreenName      string `json:"screen_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Tone enumerates supported content tones.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneHumorous      Tone = "humorous"
	ToneInspirational Tone = "inspirational"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneHumorous, ToneInspirational:
		return true
	}
	return false
}

// Length enumerates supported content lengths.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// ContentConfig describes how the backend should generate content.
type ContentConfig struct {
	Topic    string `json:"topic"`
	Tone     Tone   `json:"tone"`
	Length   Length `json:"length"`
	Hashtags bool   `json:"hashtags"`
	Emojis   bool   `json:"emojis"`
}

// Validate checks enum fields before the config is submitted.
func (c ContentConfig) Validate() error {
	if !c.Tone.Valid() {
		return fmt.Errorf("invalid tone: %q", c.Tone)
	}
	if !c.Length.Valid() {
		return fmt.Errorf("invalid length: %q", c.Length)
	}
	return nil
}

// Frequency enumerates posting cadences.
type Frequency string

const (
	FrequencyHourly Frequency = "hourly"
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyHourly, FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}

// Schedule describes the posting cadence for automated content.
type Schedule struct {
	Frequency Frequency `json:"frequency"`
	TimeOfDay string    `json:"time_of_day"`
	Timezone  string    `json:"timezone"`
	Enabled   bool      `json:"enabled"`
}

// Validate checks the cadence and the HH:MM time-of-day format.
func (s Schedule) Validate() error {
	if !s.Frequency.Valid() {
		return fmt.Errorf("invalid frequency: %q", s.Frequency)
	}
	if _, err := time.Parse("15:04", s.TimeOfDay); err != nil {
		return fmt.Errorf("invalid time_of_day %q: expected HH:MM", s.TimeOfDay)
	}
	if s.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	return nil
}

// Stats is the read-only posting aggregate, fully replaced on each fetch.
type Stats struct {
	TotalPosts      int `json:"total_posts"`
	SuccessfulPosts int `json:"successful_posts"`
	FailedPosts     int `json:"failed_posts"`
	ScheduledPosts  int `json:"scheduled_posts"`
}

// PostStatus enumerates terminal post outcomes.
type PostStatus string

const (
	PostSuccess PostStatus = "success"
	PostFailed  PostStatus = "failed"
)

// Post is a single published (or attempted) post, most recent first.
type Post struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToggleState tracks the automation enabled flag through an optimistic
// update. While a toggle is in flight the previous value is retained so a
// failed request can roll back instead of leaving the optimistic value
// behind.
type ToggleState struct {
	Value    bool
	Pending  bool
	Previous bool
}

// SyncedToggle returns a settled toggle state.
func SyncedToggle(value bool) ToggleState {
	return ToggleState{Value: value}
}

// Apply marks the state pending with an optimistic value.
func (t ToggleState) Apply(optimistic bool) ToggleState {
	return ToggleState{Value: optimistic, Pending: true, Previous: t.Value}
}

// Commit settles a pending toggle at its optimistic value.
func (t ToggleState) Commit() ToggleState {
	return ToggleState{Value: t.Value}
}

// Rollback reverts a pending toggle to the value it had before Apply.
func (t ToggleState) Rollback() ToggleState {
	if !t.Pending {
		return t
	}
	return ToggleState{Value: t.Previous}
}

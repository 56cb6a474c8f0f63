package models

import "testing"

func TestSessionValid(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want bool
	}{
		{"token and user", Session{Token: "tok", User: UserProfile{ID: "u-1"}}, true},
		{"missing token", Session{User: UserProfile{ID: "u-1"}}, false},
		{"missing user", Session{Token: "tok"}, false},
		{"empty", Session{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContentConfigValidate(t *testing.T) {
	t.Run("accepts every tone and length pair", func(t *testing.T) {
		for _, tone := range []Tone{ToneProfessional, ToneCasual, ToneHumorous, ToneInspirational} {
			for _, length := range []Length{LengthShort, LengthMedium, LengthLong} {
				cfg := ContentConfig{Topic: "go", Tone: tone, Length: length}
				if err := cfg.Validate(); err != nil {
					t.Errorf("Validate(%s, %s) = %v", tone, length, err)
				}
			}
		}
	})

	t.Run("rejects an unknown tone", func(t *testing.T) {
		cfg := ContentConfig{Topic: "go", Tone: "shouty", Length: LengthShort}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown tone")
		}
	})

	t.Run("rejects an unknown length", func(t *testing.T) {
		cfg := ContentConfig{Topic: "go", Tone: ToneCasual, Length: "epic"}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown length")
		}
	})
}

func TestScheduleValidate(t *testing.T) {
	valid := Schedule{Frequency: FrequencyDaily, TimeOfDay: "09:30", Timezone: "America/New_York"}

	t.Run("accepts a valid schedule", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("rejects an unknown frequency", func(t *testing.T) {
		sched := valid
		sched.Frequency = "fortnightly"
		if err := sched.Validate(); err == nil {
			t.Error("expected error for unknown frequency")
		}
	})

	t.Run("rejects a malformed time of day", func(t *testing.T) {
		for _, tod := range []string{"25:00", "9:99", "morning", ""} {
			sched := valid
			sched.TimeOfDay = tod
			if err := sched.Validate(); err == nil {
				t.Errorf("expected error for time %q", tod)
			}
		}
	})

	t.Run("rejects a missing timezone", func(t *testing.T) {
		sched := valid
		sched.Timezone = ""
		if err := sched.Validate(); err == nil {
			t.Error("expected error for missing timezone")
		}
	})
}

func TestToggleState(t *testing.T) {
	t.Run("apply exposes the optimistic value and remembers the old one", func(t *testing.T) {
		toggle := SyncedToggle(false).Apply(true)

		if !toggle.Value {
			t.Error("expected optimistic value")
		}
		if !toggle.Pending {
			t.Error("expected pending state")
		}
		if toggle.Previous {
			t.Error("expected previous value retained")
		}
	})

	t.Run("commit settles at the optimistic value", func(t *testing.T) {
		toggle := SyncedToggle(false).Apply(true).Commit()

		if !toggle.Value {
			t.Error("expected committed value")
		}
		if toggle.Pending {
			t.Error("expected settled state")
		}
	})

	t.Run("rollback restores the pre-apply value", func(t *testing.T) {
		toggle := SyncedToggle(true).Apply(false).Rollback()

		if !toggle.Value {
			t.Error("expected rollback to the previous value")
		}
		if toggle.Pending {
			t.Error("expected settled state")
		}
	})

	t.Run("rollback of a settled toggle is a no-op", func(t *testing.T) {
		toggle := SyncedToggle(true).Rollback()
		if !toggle.Value || toggle.Pending {
			t.Errorf("expected unchanged toggle, got %+v", toggle)
		}
	})
}

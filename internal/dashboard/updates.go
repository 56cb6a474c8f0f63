package dashboard

// ProgressUpdate represents a progress event during a refresh cycle.
//
// Used to send real-time updates to the CLI or TUI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Resource being fetched
	Step    int    // Current step number within the cycle
	Total   int    // Total steps in the cycle
	Message string // Human-readable message for display
	Err     error  // Set when the resource failed; informational only
}

// Refresh phase enumeration
type Phase int

const (
	FetchStats Phase = iota
	FetchAccount
	FetchConfig
	FetchSchedule
	FetchPosts
	RefreshDone
)

func (p Phase) String() string {
	switch p {
	case FetchStats:
		return "fetch_stats"
	case FetchAccount:
		return "fetch_account"
	case FetchConfig:
		return "fetch_config"
	case FetchSchedule:
		return "fetch_schedule"
	case FetchPosts:
		return "fetch_posts"
	case RefreshDone:
		return "refresh_done"
	default:
		return ""
	}
}

func fetchUpdate(phase Phase, step, total int, message string) ProgressUpdate {
	return ProgressUpdate{Phase: phase, Step: step, Total: total, Message: message}
}

func fetchFailedUpdate(phase Phase, step, total int, err error) ProgressUpdate {
	return ProgressUpdate{Phase: phase, Step: step, Total: total, Message: "fetch failed", Err: err}
}

func refreshDoneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{Phase: RefreshDone, Step: total, Total: total, Message: "Dashboard refreshed"}
}

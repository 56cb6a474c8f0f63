package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/dashboard"
	"github.com/twilightlabs/twilight/internal/editors"
	"github.com/twilightlabs/twilight/internal/handshake"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/services"
	"github.com/twilightlabs/twilight/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	PostsView
	LinkingView
	ConfirmDisconnectView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	api      services.API
	agg      *dashboard.Aggregator
	link     *handshake.Controller
	content  *editors.ConfigEditor
	schedule *editors.ScheduleEditor
	logger   *log.Logger
	addr     string
	timeout  time.Duration

	width  int
	height int

	snap         dashboard.Snapshot
	postList     list.Model
	progressChan chan dashboard.ProgressUpdate
	progress     dashboard.ProgressUpdate
	refreshing   bool
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// ModelOpts contains the dependencies for creating a Model.
type ModelOpts struct {
	API      services.API
	Agg      *dashboard.Aggregator
	Link     *handshake.Controller
	Content  *editors.ConfigEditor
	Schedule *editors.ScheduleEditor
	Logger   *log.Logger
	Addr     string        // callback listener address
	Timeout  time.Duration // handshake timeout, defaults to 5m
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}

	return &Model{
		ctx:      ctx,
		view:     DashboardView,
		api:      opts.API,
		agg:      opts.Agg,
		link:     opts.Link,
		content:  opts.Content,
		schedule: opts.Schedule,
		logger:   opts.Logger,
		addr:     opts.Addr,
		timeout:  opts.Timeout,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts the first dashboard refresh.
func (m *Model) Init() tea.Cmd {
	return m.startRefresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.postList.Width() == 0 {
			m.postList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case PostsView:
			return m.handlePostsKeys(msg)
		case LinkingView:
			return m.handleLinkingKeys(msg)
		case ConfirmDisconnectView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRefreshProgress:
		m.progress = msg.data.(dashboard.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgRefreshDone:
		m.refreshing = false
		m.progressChan = nil
		m.snap = msg.data.(dashboard.Snapshot)
		m.link.SetAccount(m.snap.Account)
		m.rebuildPostList()
		return m, nil

	case MsgToggleDone:
		data := msg.data.(struct {
			enabled bool
			err     error
		})
		if data.err != nil {
			m.status = styles.err.Render("Failed to update schedule")
		} else if data.enabled {
			m.status = styles.ok.Render("Automation enabled")
		} else {
			m.status = styles.warn.Render("Automation disabled")
		}
		// editor already ran a refresh on success
		m.snap = m.agg.Snapshot()
		return m, nil

	case MsgLinkDone:
		data := msg.data.(struct {
			account *models.LinkedAccount
			err     error
		})
		m.view = DashboardView
		if data.err != nil {
			m.status = styles.err.Render("Failed to connect Twitter account")
			return m, nil
		}
		if data.account != nil {
			m.status = styles.ok.Render(fmt.Sprintf("Connected as @%s", data.account.ScreenName))
		}
		return m, m.startRefresh()

	case MsgDisconnectDone:
		m.view = DashboardView
		if err, _ := msg.data.(error); err != nil {
			m.status = styles.err.Render("Failed to disconnect Twitter account")
			return m, nil
		}
		m.link.SetAccount(nil)
		m.snap.Account = nil
		m.status = styles.ok.Render("Twitter account disconnected")
		return m, m.startRefresh()

	case MsgGenerateDone:
		data := msg.data.(struct {
			post models.Post
			err  error
		})
		if data.err != nil {
			m.status = styles.err.Render("Failed to generate post")
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("Post %s generated", data.post.ID))
		return m, m.startRefresh()
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case PostsView:
		return m.renderPosts()
	case LinkingView:
		return m.renderLinking()
	case ConfirmDisconnectView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.startRefresh()
	case "t":
		return m, m.toggleAutomation()
	case "g":
		if m.snap.Account == nil {
			m.status = styles.err.Render("Connect a Twitter account first")
			return m, nil
		}
		return m, m.generatePost()
	case "p":
		m.view = PostsView
		return m, nil
	case "c":
		if m.snap.Account != nil {
			m.view = ConfirmDisconnectView
			return m, nil
		}
		return m, m.startLink()
	}
	return m, nil
}

func (m *Model) handlePostsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = DashboardView
		return m, nil
	}

	var cmd tea.Cmd
	m.postList, cmd = m.postList.Update(msg)
	return m, cmd
}

func (m *Model) handleLinkingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = DashboardView
		return m, nil
	case "y":
		return m, m.disconnect()
	}
	return m, nil
}

// startRefresh kicks off a full refresh cycle in the background. Progress
// updates stream back through the channel; a second refresh request while
// one is running is a no-op.
func (m *Model) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	m.status = ""
	m.progressChan = make(chan dashboard.ProgressUpdate, 16)

	progressChan := m.progressChan
	go func() {
		m.agg.Refresh(m.ctx, progressChan)
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return refreshDoneMsg(m.agg.Snapshot())
		}
		return refreshProgressMsg(update)
	}
}

func (m *Model) toggleAutomation() tea.Cmd {
	m.schedule.Load(m.snap.Schedule)
	enabled := !m.snap.Schedule.Enabled

	return func() tea.Msg {
		err := m.schedule.Toggle(m.ctx, enabled)
		return toggleDoneMsg(enabled, err)
	}
}

func (m *Model) startLink() tea.Cmd {
	m.view = LinkingView
	return func() tea.Msg {
		err := m.link.Link(m.ctx, m.addr, m.timeout)
		return linkDoneMsg(m.link.Account(), err)
	}
}

// disconnect skips the controller's terminal prompt; the confirm view is
// the TUI's equivalent gate.
func (m *Model) disconnect() tea.Cmd {
	return func() tea.Msg {
		return disconnectDoneMsg(m.api.DisconnectTwitter(m.ctx))
	}
}

func (m *Model) generatePost() tea.Cmd {
	m.status = styles.warn.Render("Generating post...")
	return func() tea.Msg {
		post, err := m.api.GeneratePost(m.ctx)
		return generateDoneMsg(post, err)
	}
}

func (m *Model) rebuildPostList() {
	items := make([]list.Item, len(m.snap.Posts))
	for i, post := range m.snap.Posts {
		items[i] = postItem{post: post}
	}
	m.postList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.postList.Title = "Recent Posts"
	m.postList.SetSize(m.width-4, m.height-8)
}

func (m *Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("TwiLight Dashboard"))
	b.WriteString("\n\n")

	if m.refreshing {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Refreshing... %s", m.progress.Message)))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Posts: %d total  %s  %s  %d scheduled\n\n",
		m.snap.Stats.TotalPosts,
		styles.ok.Render(fmt.Sprintf("%d ok", m.snap.Stats.SuccessfulPosts)),
		styles.err.Render(fmt.Sprintf("%d failed", m.snap.Stats.FailedPosts)),
		m.snap.Stats.ScheduledPosts))

	if m.snap.Account != nil {
		b.WriteString(fmt.Sprintf("Twitter: %s\n", styles.ok.Render(fmt.Sprintf("@%s (%s)", m.snap.Account.ScreenName, m.snap.Account.Name))))
	} else {
		b.WriteString(fmt.Sprintf("Twitter: %s\n", styles.warn.Render("not connected")))
	}

	b.WriteString(fmt.Sprintf("Content: %q, %s, %s\n", m.snap.Config.Topic, m.snap.Config.Tone, m.snap.Config.Length))

	schedStatus := styles.warn.Render("disabled")
	if m.snap.Schedule.Enabled {
		schedStatus = styles.ok.Render("enabled")
	}
	if m.schedule.Pending() {
		schedStatus = styles.warn.Render("updating...")
	}
	b.WriteString(fmt.Sprintf("Schedule: %s at %s %s (%s)\n", m.snap.Schedule.Frequency,
		m.snap.Schedule.TimeOfDay, m.snap.Schedule.Timezone, schedStatus))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.refresh, m.keys.toggle, m.keys.connect, m.keys.posts, m.keys.generate, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderPosts() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.postList.View(), helpView)
}

func (m *Model) renderLinking() string {
	title := styles.title.Render("Connecting Twitter Account")

	var phase string
	switch m.link.State() {
	case handshake.RequestingAuthURL:
		phase = "Requesting authorization URL..."
	case handshake.AwaitingApproval:
		phase = "Waiting for approval in your browser..."
	case handshake.Completing:
		phase = "Completing the handshake..."
	default:
		phase = "Working..."
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, phase,
		styles.help.Render("approve access in the browser window that just opened"))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Disconnect Twitter account?")

	var account string
	if m.snap.Account != nil {
		account = fmt.Sprintf("\nConnected as @%s (%s)\n", m.snap.Account.ScreenName, m.snap.Account.Name)
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, account, helpView)
}

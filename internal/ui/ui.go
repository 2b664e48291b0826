package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrenhollow/reel/internal/feed"
	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/session"
	"github.com/wrenhollow/reel/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	FeedView
	CommentsView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	manager    *session.Manager
	controller *feed.Controller
	tracker    *feed.Tracker

	width  int
	height int

	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int

	current models.Video
	overlay feed.Overlay
	elapsed time.Duration

	commentList  list.Model
	commentInput textinput.Model
	composing    bool

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, manager *session.Manager, controller *feed.Controller, tracker *feed.Tracker) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	comment := textinput.New()
	comment.Placeholder = "add a comment"
	comment.CharLimit = 500

	return &Model{
		ctx:           ctx,
		view:          LoginView,
		manager:       manager,
		controller:    controller,
		tracker:       tracker,
		emailInput:    email,
		passwordInput: password,
		commentInput:  comment,
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init resumes the stored session before showing any view.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startupSession())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.commentList.Width() == 0 {
			m.commentList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case FeedView:
			return m.handleFeedKeys(msg)
		case CommentsView:
			return m.handleCommentsKeys(msg)
		}

	case sessionReadyMsg:
		if msg.state == session.Authenticated {
			m.view = FeedView
			return m, m.loadPage()
		}
		m.view = LoginView
		return m, nil

	case loggedInMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = FeedView
		return m, m.loadPage()

	case pageLoadedMsg:
		// A page issued before a login/logout belongs to a dead session.
		if !m.manager.ValidEpoch(msg.epoch) {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if current, ok := m.controller.Current(); ok && current.ID != m.current.ID {
			return m, m.bind(current)
		}
		return m, nil

	case boundMsg:
		if msg.video.ID != m.current.ID {
			return m, nil
		}
		m.overlay = msg.overlay
		return m, nil

	case likeToggledMsg:
		if msg.overlay.VideoID == m.current.ID {
			m.overlay = msg.overlay
		}
		return m, nil

	case commentsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.comments))
		for i, c := range msg.comments {
			items[i] = commentItem{comment: c}
		}
		m.commentList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.commentList.Title = fmt.Sprintf("Comments on '%s'", m.current.Title)
		m.commentList.SetSize(m.width-4, m.height-10)
		m.overlay = m.tracker.Overlay()
		return m, nil

	case commentPostedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.composing = false
		m.commentInput.Reset()
		m.commentInput.Blur()
		return m, m.loadComments()

	case playbackTickMsg:
		if m.view != FeedView || msg.videoID == "" || msg.videoID != m.current.ID {
			return m, nil
		}
		m.elapsed += time.Second
		return m, tea.Batch(m.observePlayback(m.elapsed), m.tick())
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case FeedView:
		return m.renderFeed()
	case CommentsView:
		return m.renderComments()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.passwordInput.Blur()
			return m, m.emailInput.Focus()
		}
		m.emailInput.Blur()
		return m, m.passwordInput.Focus()
	case "enter":
		return m, m.login(m.emailInput.Value(), m.passwordInput.Value())
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		return m.advance(feed.Next)
	case key.Matches(msg, m.keys.prev):
		return m.advance(feed.Previous)
	case key.Matches(msg, m.keys.like):
		return m, m.toggleLike()
	case key.Matches(msg, m.keys.comments):
		if m.current.ID == "" {
			return m, nil
		}
		m.view = CommentsView
		return m, m.loadComments()
	}
	return m, nil
}

func (m *Model) handleCommentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		switch msg.String() {
		case "esc":
			m.composing = false
			m.commentInput.Reset()
			m.commentInput.Blur()
			return m, nil
		case "enter":
			return m, m.postComment(m.commentInput.Value())
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = FeedView
		return m, nil
	case key.Matches(msg, m.keys.post):
		m.composing = true
		return m, m.commentInput.Focus()
	}

	var cmd tea.Cmd
	m.commentList, cmd = m.commentList.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LoginView:
		if m.loginFocus == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	case CommentsView:
		if m.composing {
			m.commentInput, cmd = m.commentInput.Update(msg)
		} else {
			m.commentList, cmd = m.commentList.Update(msg)
		}
	}
	return m, cmd
}

// advance moves the cursor, rebinds the new entry, and prefetches when the
// controller says the read-ahead has run low.
func (m *Model) advance(dir feed.Direction) (tea.Model, tea.Cmd) {
	video, needMore := m.controller.Advance(dir)
	cmds := []tea.Cmd{}
	if video.ID != "" && video.ID != m.current.ID {
		cmds = append(cmds, m.bind(video))
	}
	if needMore {
		cmds = append(cmds, m.loadPage())
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) startupSession() tea.Cmd {
	return func() tea.Msg {
		state := m.manager.Startup(m.ctx)
		return sessionReadyMsg{state: state}
	}
}

func (m *Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loggedInMsg{err: m.manager.Login(m.ctx, email, password)}
	}
}

func (m *Model) loadPage() tea.Cmd {
	epoch := m.manager.Epoch()
	return func() tea.Msg {
		added, err := m.controller.LoadMore(m.ctx)
		return pageLoadedMsg{added: added, epoch: epoch, err: err}
	}
}

func (m *Model) bind(video models.Video) tea.Cmd {
	m.current = video
	m.elapsed = 0
	m.overlay = feed.Overlay{VideoID: video.ID, LikeCount: video.Likes, CommentCount: video.Comments, ViewCount: video.Views}
	return tea.Batch(
		func() tea.Msg {
			overlay := m.tracker.Bind(m.ctx, video)
			return boundMsg{video: video, overlay: overlay}
		},
		m.tick(),
	)
}

func (m *Model) tick() tea.Cmd {
	videoID := m.current.ID
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return playbackTickMsg{videoID: videoID}
	})
}

func (m *Model) observePlayback(elapsed time.Duration) tea.Cmd {
	return func() tea.Msg {
		m.tracker.ObservePlayback(m.ctx, elapsed)
		return nil
	}
}

func (m *Model) toggleLike() tea.Cmd {
	return func() tea.Msg {
		return likeToggledMsg{overlay: m.tracker.ToggleLike(m.ctx)}
	}
}

func (m *Model) loadComments() tea.Cmd {
	return func() tea.Msg {
		comments, err := m.tracker.LoadComments(m.ctx)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

func (m *Model) postComment(content string) tea.Cmd {
	return func() tea.Msg {
		comment, err := m.tracker.PostComment(m.ctx, content)
		return commentPostedMsg{comment: comment, err: err}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Sign in to Reel")
	fields := fmt.Sprintf("%s\n%s", m.emailInput.View(), m.passwordInput.View())

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(m.err.Error())
	}

	helpKeys := []key.Binding{m.keys.tab, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, fields, errLine, helpView)
}

func (m *Model) renderFeed() string {
	current, ok := m.controller.Current()
	if !ok {
		if m.err != nil {
			return styles.err.Render(fmt.Sprintf("Feed unavailable: %v\n\nPress q to quit", m.err))
		}
		return styles.help.Render("Loading feed...")
	}

	uploader := "unknown"
	if current.User != nil && current.User.Resolved() {
		uploader = "@" + current.User.Username
	}

	title := styles.title.Render(current.Title)
	meta := fmt.Sprintf("%s • %s", uploader, current.Category)

	heart := "♡"
	if m.overlay.Liked {
		heart = styles.ok.Render("♥")
	}
	counts := fmt.Sprintf("%s %s   💬 %s   ▶ %s",
		heart,
		shared.FormatCount(m.overlay.LikeCount),
		shared.FormatCount(m.overlay.CommentCount),
		shared.FormatCount(m.overlay.ViewCount),
	)

	position := styles.help.Render(fmt.Sprintf("video %d of %d • %s", m.controller.Cursor()+1, m.controller.Len(), m.elapsed))

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.warn.Render(m.err.Error())
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.prev, m.keys.like, m.keys.comments, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s%s\n\n%s", title, meta, counts, position, errLine, helpView)
}

func (m *Model) renderComments() string {
	var compose string
	if m.composing {
		compose = "\n" + m.commentInput.View()
	}

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.warn.Render(m.err.Error())
	}

	helpKeys := []key.Binding{m.keys.post, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s%s\n\n%s", m.commentList.View(), compose, errLine, helpView)
}

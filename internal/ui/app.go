package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/i18n"
	"github.com/five82/postdeck/internal/mail"
	"github.com/five82/postdeck/internal/mutation"
	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/placeholder"
	"github.com/five82/postdeck/internal/prefs"
	"github.com/five82/postdeck/internal/state"
)

// Screen identifies what the content area shows.
type Screen int

const (
	ScreenPosts Screen = iota
	ScreenUsers
	ScreenPost
	ScreenUser
	ScreenLogs
)

type route struct {
	screen Screen
	id     int
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	API        placeholder.API
	Mailer     mail.Sender
	Translator *i18n.Translator
	Prefs      *prefs.Store // nil keeps preferences in memory only
	Notices    *notify.Center
	Health     *state.Health
	Logger     *slog.Logger
	LogFile    string
	FromName   string
	Tick       time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx      context.Context
	api      placeholder.API
	mailer   mail.Sender
	tr       *i18n.Translator
	prefs    *prefs.Store
	notices  *notify.Center
	health   *state.Health
	logger   *slog.Logger
	logFile  string
	fromName string
	tick     time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	route   route
	history []route

	// Posts and users lists
	posts      *state.Collection[placeholder.Post]
	users      *state.Collection[placeholder.User]
	authors    *authorIndex
	dashboard  *fetch.Lifecycle[fetch.Dashboard]
	postCtl    *mutation.Controller[placeholder.Post]
	postView   *collection.View[placeholder.Post]
	userView   *collection.View[placeholder.User]
	postCursor int
	userCursor int
	searching  bool
	search     textinput.Model

	// Post detail
	postDetail   *fetch.Lifecycle[fetch.PostDetail]
	commentPage  int
	detailScroll int

	// User detail
	userDetail     *fetch.Lifecycle[fetch.UserDetail]
	userPosts      *state.Collection[placeholder.Post]
	userPostCtl    *mutation.Controller[placeholder.Post]
	userPostCursor int

	// Logs
	logViewport viewport.Model
	logCount    int
	logErr      error
	logWarnOnly bool

	// Overlays
	showHelp bool
	form     *formState
	modal    Modal
	sharing  int
}

// authorIndex maps user ids to display names. It is shared by pointer so the
// post sort closure sees reloads.
type authorIndex struct {
	names map[int]string
}

func (a *authorIndex) name(id int) string { return a.names[id] }

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.NewWithCatalogs("en", nil, logger)
	}
	notices := opts.Notices
	if notices == nil {
		notices = notify.NewCenter()
	}
	mailer := opts.Mailer
	if mailer == nil {
		mailer = mail.Noop{}
	}
	health := opts.Health
	if health == nil {
		health = &state.Health{}
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	p := prefs.Default()
	if opts.Prefs != nil {
		p = opts.Prefs.Get()
	}
	tr.SetLocale(p.Locale)

	authors := &authorIndex{names: map[int]string{}}
	posts := state.NewCollection(mutation.PostID)
	users := state.NewCollection(func(u placeholder.User) int { return u.ID })

	postView := collection.NewView(collection.PostSpec(authors.name), p.PageSize)
	userView := collection.NewView(collection.UserSpec(), p.PageSize)
	if sortKey, ok := collection.ParseSortKey(p.Sort); ok {
		postView.SetSort(sortKey)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 80

	m := Model{
		ctx:      ctx,
		api:      opts.API,
		mailer:   mailer,
		tr:       tr,
		prefs:    opts.Prefs,
		notices:  notices,
		health:   health,
		logger:   logger.With(slog.String("component", "ui")),
		logFile:  opts.LogFile,
		fromName: opts.FromName,
		tick:     tick,

		theme: GetTheme(p.Theme),
		keys:  DefaultKeyMap(),
		route: route{screen: ScreenPosts},

		posts:      posts,
		users:      users,
		authors:    authors,
		dashboard:  fetch.NewLifecycle[fetch.Dashboard](fetchMessages(tr)),
		postView:   postView,
		userView:   userView,
		search:     search,
		postDetail: fetch.NewLifecycle[fetch.PostDetail](fetchMessages(tr)),
		userDetail: fetch.NewLifecycle[fetch.UserDetail](fetchMessages(tr)),
	}
	m.postCtl = mutation.NewPostController(opts.API, posts, notices, mutation.Prepend, postMessages(tr), logger)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.tick),
		loadCmd(m.ctx, m.dashboard, func(ctx context.Context) (fetch.Dashboard, error) {
			return fetch.LoadDashboard(ctx, m.api)
		}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(max(m.width-2, 1), max(m.contentHeight()-2, 1))
		}
		m.ready = true
		m.logViewport.Width = max(m.width-2, 1)
		m.logViewport.Height = max(m.contentHeight()-2, 1)
		if m.form != nil {
			m.form.form = m.form.form.WithWidth(m.formWidth())
		}
		return m, nil

	case tickMsg:
		m.notices.Sweep(time.Time(msg))
		return m, tickCmd(m.tick)

	case loadedMsg[fetch.Dashboard]:
		if msg.lc.Resolve(msg.ticket, msg.value, msg.err) {
			if msg.err != nil {
				m.logger.Warn("dashboard load failed", slog.Any("error", msg.err))
				return m, nil
			}
			m.posts.Replace(msg.value.Posts)
			m.users.Replace(msg.value.Users)
			m.authors.names = fetch.AuthorNames(msg.value.Users)
			m.clampCursors()
		}
		return m, nil

	case loadedMsg[fetch.PostDetail]:
		if msg.lc.Resolve(msg.ticket, msg.value, msg.err) && msg.err != nil {
			m.logger.Warn("post load failed", slog.Any("error", msg.err))
		}
		return m, nil

	case loadedMsg[fetch.UserDetail]:
		if msg.lc.Resolve(msg.ticket, msg.value, msg.err) {
			if msg.err != nil {
				m.logger.Warn("user load failed", slog.Any("error", msg.err))
				return m, nil
			}
			m.userPosts.Replace(msg.value.Posts)
			m.userPostCursor = 0
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.logger.Debug("mutation finished with error", slog.String("kind", string(msg.kind)), slog.Any("error", msg.err))
		} else if msg.kind == mutation.KindDelete {
			// A delete from the user screen also drops the post from the main list.
			m.posts.Remove(msg.id)
		}
		m.clampCursors()
		return m, nil

	case shareDoneMsg:
		m.sharing = max(m.sharing-1, 0)
		m.notifyShare(msg)
		return m, nil

	case logsMsg:
		m.logErr = msg.err
		m.logCount = len(msg.lines)
		m.logViewport.SetContent(strings.Join(msg.lines, "\n"))
		m.logViewport.GotoBottom()
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.tr.T("status.loading")
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.form != nil {
		return m.renderForm()
	}

	main := m.renderMain()
	if m.modal != nil {
		main = m.modal.View(m.theme, m.width, m.height)
	}
	return m.overlayToasts(main)
}

// handleKey processes keyboard input. Overlays get the first look at a key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.form != nil {
		if msg.Type == tea.KeyEsc {
			m.form = nil
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if _, failed := m.failure(); failed {
		return m.handleFailureKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		return m, nil
	case key.Matches(msg, m.keys.Locale):
		locale := m.tr.SetLocale(m.tr.Next())
		m.applyLocale()
		m.savePrefs(func(p *prefs.Prefs) { p.Locale = locale })
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Logs):
		if m.route.screen == ScreenLogs {
			return m, nil
		}
		m.navigate(route{screen: ScreenLogs})
		return m, readLogsCmd(m.logFile, m.logMinLevel())
	case key.Matches(msg, m.keys.Home):
		m.goHome()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.goBack()
	}

	switch m.route.screen {
	case ScreenPosts:
		return m.handlePostsKey(msg)
	case ScreenUsers:
		return m.handleUsersKey(msg)
	case ScreenPost:
		return m.handlePostDetailKey(msg)
	case ScreenUser:
		return m.handleUserDetailKey(msg)
	case ScreenLogs:
		if key.Matches(msg, m.keys.Warnings) {
			m.logWarnOnly = !m.logWarnOnly
			return m, readLogsCmd(m.logFile, m.logMinLevel())
		}
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleFailureKey serves the error and not-found views: back, retry, home.
func (m Model) handleFailureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.goBack()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Home):
		m.goHome()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// navigate pushes the current route and shows next.
func (m *Model) navigate(next route) {
	m.history = append(m.history, m.route)
	m.leave()
	m.route = next
}

func (m *Model) goBack() tea.Cmd {
	n := len(m.history)
	if n == 0 {
		if m.route.screen == ScreenPosts || m.route.screen == ScreenUsers {
			return nil
		}
		m.goHome()
		return nil
	}
	m.leave()
	m.route = m.history[n-1]
	m.history = m.history[:n-1]
	return m.resume()
}

func (m *Model) goHome() {
	m.leave()
	m.history = nil
	m.route = route{screen: ScreenPosts}
}

// leave tears down the current detail lifecycle so late responses are dropped.
func (m *Model) leave() {
	switch m.route.screen {
	case ScreenPost:
		m.postDetail.Teardown()
	case ScreenUser:
		m.userDetail.Teardown()
	}
}

// resume reloads a screen reached through history.
func (m *Model) resume() tea.Cmd {
	switch m.route.screen {
	case ScreenPost:
		return m.showPost(m.route.id)
	case ScreenUser:
		return m.showUser(m.route.id)
	case ScreenLogs:
		return readLogsCmd(m.logFile, m.logMinLevel())
	}
	return nil
}

// reload restarts the fetch behind the current screen.
func (m *Model) reload() tea.Cmd {
	switch m.route.screen {
	case ScreenPost:
		return m.loadPost(m.route.id)
	case ScreenUser:
		return m.loadUser(m.route.id)
	case ScreenLogs:
		return readLogsCmd(m.logFile, m.logMinLevel())
	default:
		api := m.api
		return loadCmd(m.ctx, m.dashboard, func(ctx context.Context) (fetch.Dashboard, error) {
			return fetch.LoadDashboard(ctx, api)
		})
	}
}

// openPost navigates to post id.
func (m *Model) openPost(id int) tea.Cmd {
	m.navigate(route{screen: ScreenPost, id: id})
	return m.showPost(id)
}

// showPost starts a fresh lifecycle for post id.
func (m *Model) showPost(id int) tea.Cmd {
	m.postDetail = fetch.NewLifecycle[fetch.PostDetail](fetchMessages(m.tr))
	m.commentPage = 1
	m.detailScroll = 0
	return m.loadPost(id)
}

func (m *Model) loadPost(id int) tea.Cmd {
	api := m.api
	return loadCmd(m.ctx, m.postDetail, func(ctx context.Context) (fetch.PostDetail, error) {
		return fetch.LoadPostDetail(ctx, api, id)
	})
}

// openUser navigates to user id.
func (m *Model) openUser(id int) tea.Cmd {
	m.navigate(route{screen: ScreenUser, id: id})
	return m.showUser(id)
}

// showUser starts a fresh lifecycle for user id with its own post
// collection and controller.
func (m *Model) showUser(id int) tea.Cmd {
	m.userDetail = fetch.NewLifecycle[fetch.UserDetail](fetchMessages(m.tr))
	m.userPosts = state.NewCollection(mutation.PostID)
	m.userPostCtl = mutation.NewPostController(m.api, m.userPosts, m.notices, mutation.Append, postMessages(m.tr), m.logger)
	m.userPostCursor = 0
	return m.loadUser(id)
}

func (m *Model) loadUser(id int) tea.Cmd {
	api := m.api
	return loadCmd(m.ctx, m.userDetail, func(ctx context.Context) (fetch.UserDetail, error) {
		return fetch.LoadUserDetail(ctx, api, id)
	})
}

// failureInfo is what the error and not-found views show.
type failureInfo struct {
	notFound bool
	message  string
	err      error
}

// failure reports whether the current screen's primary fetch failed.
func (m Model) failure() (failureInfo, bool) {
	var (
		status fetch.Status
		info   failureInfo
	)
	switch m.route.screen {
	case ScreenPosts, ScreenUsers:
		s := m.dashboard.Snapshot()
		status, info = s.Status, failureInfo{notFound: s.NotFound, message: s.Message, err: s.Err}
	case ScreenPost:
		s := m.postDetail.Snapshot()
		status, info = s.Status, failureInfo{notFound: s.NotFound, message: s.Message, err: s.Err}
	case ScreenUser:
		s := m.userDetail.Snapshot()
		status, info = s.Status, failureInfo{notFound: s.NotFound, message: s.Message, err: s.Err}
	}
	return info, status == fetch.Error
}

// applyLocale pushes the active locale's texts into long-lived collaborators.
func (m *Model) applyLocale() {
	msgs := fetchMessages(m.tr)
	m.dashboard.SetMessages(msgs)
	m.postDetail.SetMessages(msgs)
	m.userDetail.SetMessages(msgs)
	m.postCtl.SetMessages(postMessages(m.tr))
	if m.userPostCtl != nil {
		m.userPostCtl.SetMessages(postMessages(m.tr))
	}
}

func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefs == nil {
		return
	}
	if _, err := m.prefs.Update(fn); err != nil {
		m.logger.Warn("save preferences failed", slog.Any("error", err))
	}
}

func (m Model) rtl() bool {
	return m.tr.Direction() == i18n.RTL
}

// renderMain renders header, command bar and the active screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	if info, failed := m.failure(); failed {
		return m.renderFailure(info)
	}
	switch m.route.screen {
	case ScreenPosts:
		return m.renderPosts()
	case ScreenUsers:
		return m.renderUsers()
	case ScreenPost:
		return m.renderPostDetail()
	case ScreenUser:
		return m.renderUserDetail()
	case ScreenLogs:
		return m.renderLogs()
	}
	return ""
}

func fetchMessages(tr *i18n.Translator) fetch.Messages {
	return fetch.Messages{
		NotFound: tr.T("errors.not_found"),
		Failure:  tr.T("errors.failure"),
	}
}

func postMessages(tr *i18n.Translator) mutation.Messages {
	text := func(name string) mutation.Text {
		return mutation.Text{
			Title:   tr.T("notify." + name + ".title"),
			Message: tr.T("notify." + name + ".message"),
		}
	}
	return mutation.Messages{
		CreateSuccess: text("post_created"),
		CreateError:   text("post_create_failed"),
		UpdateSuccess: text("post_updated"),
		UpdateError:   text("post_update_failed"),
		DeleteSuccess: text("post_deleted"),
		DeleteError:   text("post_delete_failed"),
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

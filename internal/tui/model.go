// Package tui is the interactive shopping list built on bubbletea.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/tui/components"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is what currently has the keyboard.
type Screen int

// Screens.
const (
	ScreenList Screen = iota
	ScreenForm
	ScreenFilter
	ScreenDetail
	ScreenHelp
)

// noticeBuffer bounds notices queued between two UI updates.
const noticeBuffer = 64

// Model holds the main TUI state.
type Model struct {
	ctx         context.Context
	theme       themes.Theme
	controller  *list.Controller
	notices     chan list.Notice
	logger      *slog.Logger
	toast       *list.Notice
	criteria    filter.Criteria
	config      Config
	keymap      KeyMap
	help        help.Model
	spinner     spinner.Model
	itemList    components.ItemListModel
	statsPanel  components.StatsPanelModel
	form        components.FormModel
	filterPanel components.FilterPanelModel
	detail      components.ItemDetailModel
	toastSeq    int
	width       int
	height      int
	screen      Screen
	lastScreen  Screen
	quitting    bool
}

// New creates the model over service. Notices from the list controller are
// queued and shown as toasts.
func New(ctx context.Context, service catalog.Service, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "tui")
	}

	notices := make(chan list.Notice, noticeBuffer)
	push := func(n list.Notice) {
		select {
		case notices <- n:
		default:
			logger.Warn("Dropped notice", "op", n.Op, "message", n.Message)
		}
	}
	controller := list.NewController(service, list.WithNotices(push), list.WithLogger(logger))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.Title

	m := Model{
		ctx:        ctx,
		theme:      cfg.Theme,
		controller: controller,
		notices:    notices,
		logger:     logger,
		config:     cfg,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		statsPanel: components.NewStatsPanelModel(cfg.Theme),
		width:      cfg.Width,
		height:     cfg.Height,
		screen:     ScreenList,
	}
	m.itemList = components.NewItemList(cfg.Theme, controller.OpState)
	m.handleResize()
	return m
}

// Controller exposes the list controller.
func (m Model) Controller() *list.Controller {
	return m.controller
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Criteria returns the active filter.
func (m Model) Criteria() filter.Criteria {
	return m.criteria
}

// Toast returns the notice on screen, if any.
func (m Model) Toast() (list.Notice, bool) {
	if m.toast == nil {
		return list.Notice{}, false
	}
	return *m.toast, true
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadItems())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.itemList.Refresh()
		if m.screen == ScreenDetail {
			m.detail.SetOpState(m.controller.OpState(m.detail.Item().ID))
		}
		return m, cmd

	case itemsLoadedMsg:
		if msg.err != nil {
			m.logger.Debug("Load failed", "error", msg.err)
		}
		m.refreshView()
		cmd := m.showNotices()
		return m, cmd

	case mutationDoneMsg:
		cmd := m.handleMutationDone(msg)
		return m, cmd

	case captureDoneMsg:
		if m.screen == ScreenForm {
			if err := m.form.CaptureDone(msg.image, msg.err); err != nil {
				m.logger.Warn("Photo capture failed", "error", err)
			}
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case components.FormSubmittedMsg:
		if msg.Intent.Kind == editor.IntentUpdate && !m.controller.Reserve(msg.Intent.ID, list.OpUpdating) {
			return m, nil
		}
		m.form.SetBusy(true)
		return m, m.submitIntent(msg.Intent)

	case components.FormCancelledMsg:
		m.screen = ScreenList
		return m, nil

	case components.CaptureRequestMsg:
		return m, m.capture(msg)

	case components.FilterAppliedMsg:
		m.criteria = msg.Criteria
		m.screen = ScreenList
		m.refreshView()
		return m, nil

	case components.FilterCancelledMsg:
		m.screen = ScreenList
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// forward passes other messages, such as cursor blinks, to the focused
// component.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenForm:
		m.form, cmd = m.form.Update(msg)
	case ScreenFilter:
		m.filterPanel, cmd = m.filterPanel.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenForm, ScreenFilter:
		return m.forward(msg)
	case ScreenHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Back) {
			m.screen = m.lastScreen
		} else if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.controller.State()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.lastScreen = m.screen
		m.screen = ScreenHelp
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		if state == list.StateLoading {
			return m, nil
		}
		return m, m.loadItems()
	}

	// Nothing else is reachable until the collection is available.
	if state == list.StateLoadFailed || (state != list.StateLoaded && len(m.controller.Items()) == 0) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Add):
		cmd := m.openForm(editor.New())
		return m, cmd

	case key.Matches(msg, m.keymap.Filter):
		items := m.controller.Items()
		if len(items) == 0 {
			return m, nil
		}
		m.filterPanel = components.NewFilterPanel(m.criteria, items, m.theme)
		m.filterPanel.Resize(m.width)
		m.screen = ScreenFilter
		return m, nil

	case key.Matches(msg, m.keymap.ClearFilter):
		if m.criteria.Active() {
			m.criteria = filter.Criteria{}
			m.refreshView()
		}
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		m.itemList.NextTab()
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.itemList.PrevTab()
		return m, nil
	}

	item, ok := m.itemList.Selected()
	if !ok {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Toggle):
		cmd := m.startToggle(item.ID)
		return m, cmd
	case key.Matches(msg, m.keymap.Delete):
		cmd := m.startDelete(item.ID)
		return m, cmd
	case key.Matches(msg, m.keymap.Edit):
		if m.controller.Busy(item.ID) {
			return m, nil
		}
		cmd := m.openForm(editor.ForItem(item))
		return m, cmd
	case key.Matches(msg, m.keymap.Details):
		m.detail = components.NewItemDetail(item, m.theme)
		m.detail.Resize(m.width)
		m.detail.SetOpState(m.controller.OpState(item.ID))
		m.screen = ScreenDetail
		return m, nil
	}

	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.detail.Item()
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.screen = ScreenList
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.lastScreen = m.screen
		m.screen = ScreenHelp
	case key.Matches(msg, m.keymap.Toggle):
		cmd := m.startToggle(item.ID)
		return m, cmd
	case key.Matches(msg, m.keymap.Delete):
		cmd := m.startDelete(item.ID)
		return m, cmd
	case key.Matches(msg, m.keymap.Edit):
		if !m.controller.Busy(item.ID) {
			cmd := m.openForm(editor.ForItem(item))
			return m, cmd
		}
	}
	return m, nil
}

// startToggle and startDelete ignore rows that already have an operation
// in flight, like the disabled buttons of a busy row. The marker is taken
// here so a repeated key is rejected before the command runs.
func (m *Model) startToggle(id int) tea.Cmd {
	if !m.controller.Reserve(id, list.OpToggling) {
		return nil
	}
	m.showMarker(id)
	return m.toggleItem(id)
}

func (m *Model) startDelete(id int) tea.Cmd {
	if !m.controller.Reserve(id, list.OpDeleting) {
		return nil
	}
	m.showMarker(id)
	return m.deleteItem(id)
}

func (m *Model) showMarker(id int) {
	m.itemList.Refresh()
	if m.screen == ScreenDetail && m.detail.Item().ID == id {
		m.detail.SetOpState(m.controller.OpState(id))
	}
}

func (m *Model) openForm(f *editor.Form) tea.Cmd {
	m.form = components.NewForm(f, m.theme)
	m.form.Resize(m.width)
	m.screen = ScreenForm
	return m.form.Init()
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) tea.Cmd {
	if msg.err != nil && errors.Is(msg.err, list.ErrBusy) {
		return nil
	}

	switch msg.op {
	case list.OpCreate, list.OpUpdate:
		m.form.SetBusy(false)
		if msg.err == nil && m.screen == ScreenForm {
			m.screen = ScreenList
		}
	case list.OpDelete:
		if msg.err == nil && m.screen == ScreenDetail && m.detail.Item().ID == msg.id {
			m.screen = ScreenList
		}
	}

	if m.screen == ScreenDetail {
		if item, ok := m.controller.Item(m.detail.Item().ID); ok {
			m.detail.SetItem(item)
		}
		m.detail.SetOpState(m.controller.OpState(m.detail.Item().ID))
	}

	m.refreshView()
	return m.showNotices()
}

// refreshView re-derives the list and the stats from the controller.
func (m *Model) refreshView() {
	m.itemList.SetView(m.controller.View(m.criteria))
	m.statsPanel.SetStats(m.controller.Stats())
}

// showNotices moves queued notices to the toast. Only the newest one is
// shown.
func (m *Model) showNotices() tea.Cmd {
	var latest *list.Notice
	for {
		select {
		case n := <-m.notices:
			if n.Message != "" {
				latest = &n
			}
			continue
		default:
		}
		break
	}
	if latest == nil {
		return nil
	}
	m.toast = latest
	m.toastSeq++
	return expireNotice(m.toastSeq, m.config.NoticeDuration)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	width := max(m.width-4, 20)
	m.statsPanel.SetCompact(m.width < 70)
	m.statsPanel.Resize(width)
	m.itemList.Resize(width, max(m.height-m.chromeHeight(), 5))
	m.form.Resize(width)
	m.filterPanel.Resize(width)
	m.detail.Resize(width)
	m.help.Width = width
}

// chromeHeight is the space taken by everything above and below the list.
func (m Model) chromeHeight() int {
	if m.width < 70 {
		return 9
	}
	return 18
}

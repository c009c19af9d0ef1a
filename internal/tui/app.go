package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/burnlikeash/SentimentScope/internal/api"
	"github.com/burnlikeash/SentimentScope/internal/catalog"
	"github.com/burnlikeash/SentimentScope/internal/config"
	"github.com/burnlikeash/SentimentScope/internal/diversify"
	"github.com/burnlikeash/SentimentScope/internal/filter"
	"github.com/burnlikeash/SentimentScope/internal/loader"
	"github.com/burnlikeash/SentimentScope/internal/pager"
	"github.com/burnlikeash/SentimentScope/internal/store"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeHome mode = iota
	modeNormal
	modeSearch
	modeFacet
	modeHelp
	modeDetail
)

type App struct {
	cfg    *config.Config
	client *api.Client
	loader *loader.Loader
	db     *store.Store

	engine *filter.Engine
	pages  *pager.Pager
	picker *diversify.Picker

	snapshot loader.Snapshot
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	facets      facetBar

	// State
	refreshing    bool
	offline       bool
	loaded        bool
	brandCursor   int // index into snapshot.Brands, -1 = all
	previewScroll int
	detail        *api.Detail
	detailScroll  int
	currentDate   string
	updateVersion string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg           *config.Config
	Client        *api.Client
	Loader        *loader.Loader
	Store         *store.Store
	BrowseMode    bool
	UpdateVersion string
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	startMode := modeHome
	if opts.BrowseMode {
		startMode = modeNormal
	}

	engine := filter.New()

	a := &App{
		cfg:           opts.Cfg,
		client:        opts.Client,
		loader:        opts.Loader,
		db:            opts.Store,
		engine:        engine,
		pages:         pager.New(opts.Cfg.GetPageSize()),
		picker:        diversify.New(),
		facets:        newFacetBar(engine),
		searchInput:   ti,
		spinner:       sp,
		currentDate:   time.Now().Format("Jan 2"),
		mode:          startMode,
		brandCursor:   -1,
		updateVersion: opts.UpdateVersion,
	}

	// Any accepted facet change re-derives the visible page.
	engine.OnChange(func(filter.State) { a.reapply() })

	return a
}

func (a *App) Init() tea.Cmd {
	if a.mode == modeNormal {
		a.refreshing = true
		return tea.Batch(a.loadCatalogCmd(false), a.spinner.Tick, a.refreshTick())
	}
	return a.refreshTick()
}

// refreshTick schedules the next periodic refresh. The load itself is still
// gated by MaybeRefresh, so a fresh cache makes the tick a no-op.
func (a *App) refreshTick() tea.Cmd {
	return tea.Tick(a.cfg.RefreshDuration(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// reapply re-runs the facet set over the full snapshot and resets the cursor
// to the top of the first page.
func (a *App) reapply() {
	a.pages.Apply(a.snapshot.Products, a.engine.Matches)
	a.cursor = 0
	a.previewScroll = 0
}

// refreshTopicPanel re-picks the diversified topic chips from the current
// top topics. Over-sample the ranking so the picker has room to diversify.
func (a *App) refreshTopicPanel() {
	size := a.cfg.GetTopicPanelSize()
	stats := a.loader.Aggregator().TopTopics(size * 3)
	pool := make([]string, len(stats))
	for i, s := range stats {
		pool[i] = s.Topic
	}
	a.facets.setTopics(a.picker.Pick(pool, size))
}

// loadCatalogCmd runs a full load cycle. When the remote service is down and
// a local snapshot exists, it falls back to the snapshot and flags the
// session offline. force skips the freshness short-circuit.
func (a *App) loadCatalogCmd(force bool) tea.Cmd {
	ld := a.loader
	db := a.db
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		var (
			snap      loader.Snapshot
			refreshed = true
			err       error
		)
		if force {
			snap, err = ld.Load(ctx)
		} else {
			snap, refreshed, err = ld.MaybeRefresh(ctx)
		}
		if errors.Is(err, loader.ErrLoadInFlight) {
			return catalogErrMsg{err: err}
		}
		if err == nil {
			if !refreshed {
				return catalogLoadedMsg{snap: snap, skipped: true}
			}
			if db != nil {
				// Persist for offline sessions; failures are not fatal here.
				if perr := db.ReplaceProducts(snap.Products); perr == nil {
					db.SetLastRefresh()
				}
			}
			return catalogLoadedMsg{snap: snap}
		}

		if db != nil {
			products, derr := db.GetProducts(store.QueryOpts{})
			if derr == nil && len(products) > 0 {
				offline := loader.Snapshot{Products: products, LoadedAt: time.Now()}
				ld.Restore(offline)
				return catalogLoadedMsg{snap: offline, offline: true}
			}
		}
		return catalogErrMsg{err: err}
	}
}

func (a *App) detailCmd(productID int) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		d, err := c.ProductDetail(ctx, productID)
		if err != nil {
			return catalogErrMsg{err: err}
		}
		return detailLoadedMsg{detail: d}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case refreshTickMsg:
		if a.refreshing || !a.loaded {
			return a, a.refreshTick()
		}
		a.refreshing = true
		return a, tea.Batch(a.loadCatalogCmd(false), a.spinner.Tick, a.refreshTick())

	case catalogLoadedMsg:
		a.refreshing = false
		if msg.skipped && a.loaded {
			return a, nil
		}
		a.loaded = true
		a.offline = msg.offline
		a.snapshot = msg.snap
		a.refreshTopicPanel()
		a.reapply()
		return a, nil

	case catalogErrMsg:
		a.refreshing = false
		if !errors.Is(msg.err, loader.ErrLoadInFlight) {
			a.err = msg.err
		}
		return a, nil

	case detailLoadedMsg:
		d := msg.detail
		a.detail = &d
		a.detailScroll = 0
		a.mode = modeDetail
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	// Mode-specific handling
	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFacet:
		return a.handleFacetKey(msg)
	case modeDetail:
		return a.handleDetailKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	page := a.pages.Page()

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(page)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "n", "right":
		a.pages.Next()
		a.cursor = 0
		a.previewScroll = 0
		return a, nil
	case "p", "left":
		a.pages.Prev()
		a.cursor = 0
		a.previewScroll = 0
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "enter", "o":
		if a.cursor < len(page) {
			return a, a.detailCmd(page[a.cursor].ID)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.engine.State().Search)
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFacet
		a.facets.active = true
		a.refreshTopicPanel()
		return a, nil
	case "b":
		a.cycleBrand()
		return a, nil
	case "c":
		a.engine.ClearAll()
		a.brandCursor = -1
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.loadCatalogCmd(true), a.spinner.Tick)
		}
		return a, nil
	case "h":
		a.mode = modeHome
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

// cycleBrand walks All -> brand1 -> brand2 -> ... -> All.
func (a *App) cycleBrand() {
	if len(a.snapshot.Brands) == 0 {
		return
	}
	a.brandCursor++
	if a.brandCursor >= len(a.snapshot.Brands) {
		a.brandCursor = -1
		a.engine.SetBrand("")
		return
	}
	a.engine.SetBrand(a.snapshot.Brands[a.brandCursor].Name)
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter", "1":
		a.mode = modeNormal
		if !a.loaded && !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.loadCatalogCmd(false), a.spinner.Tick)
		}
		return a, nil
	case "r", "2":
		a.mode = modeNormal
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.loadCatalogCmd(true), a.spinner.Tick)
		}
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.engine.SetSearch("")
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.engine.SetSearch(strings.TrimSpace(a.searchInput.Value()))
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleFacetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.facets.active = false
		return a, nil
	case "left", "h":
		a.facets.moveLeft()
		return a, nil
	case "right", "l":
		a.facets.moveRight()
		return a, nil
	case "tab", "down", "j":
		a.facets.nextRow()
		return a, nil
	case " ", "enter":
		a.facets.toggleCurrent()
		return a, nil
	case "c":
		a.engine.ClearAll()
		a.brandCursor = -1
		return a, nil
	case "1", "2", "3", "4", "5":
		// Direct rating-bucket toggle regardless of cursor row.
		a.engine.ToggleBucket(int(msg.String()[0] - '0'))
		return a, nil
	}
	return a, nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		a.mode = modeNormal
		a.detail = nil
		return a, nil
	case "j", "down":
		a.detailScroll++
		return a, nil
	case "k", "up":
		if a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "h":
		a.mode = modeHome
		a.detail = nil
		return a, nil
	}
	return a, nil
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  sentimentscope")
	}

	if a.mode == modeHome {
		return a.withBottomBar(renderHomeScreen(a.width, a.height, a.updateVersion), "e explore  r refresh  q quit")
	}

	if a.mode == modeHelp {
		return a.withBottomBar(a.renderHelp(), "? close  h home  q quit")
	}

	if a.mode == modeDetail && a.detail != nil {
		return a.withBottomBar(
			renderDetail(a.detail, a.width, a.height-2, a.detailScroll),
			"j/k scroll  esc back  h home  q close",
		)
	}

	// Layout calculations
	headerHeight := 1
	facetHeight := a.facets.height()
	statusHeight := 1
	contentHeight := a.height - headerHeight - facetHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("sentimentscope")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Facet bar, replaced by the search input while typing
	facetView := a.facets.render(a.width)
	if a.mode == modeSearch {
		facetView = a.searchInput.View()
	}

	page := a.pages.Page()

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(page, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var selected *catalog.Product
	if a.cursor < len(page) {
		selected = &page[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	// Join panes
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	// Status bar
	status := renderStatusBar(
		a.pages.Total(),
		a.pages.CurrentPage(),
		a.pages.TotalPages(),
		a.facets.activeLabel(),
		a.width,
		a.mode == modeSearch,
		a.refreshing,
		a.offline,
	)

	if a.refreshing {
		status = a.spinner.View() + " " + status
	}

	// Error display
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, facetView, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("sentimentscope")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the product list\n" +
		"  n/p, ←/→     Next / previous page\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open full product record\n" +
		"  r             Refresh from the service\n" +
		"  /             Search products\n" +
		"  b             Cycle brand filter\n" +
		"  c             Clear all facets\n" +
		"  f             Toggle facet mode\n\n" +
		dim.Render("Facet Mode") + "\n" +
		"  ←/→, h/l     Move within a row\n" +
		"  tab, j        Next row (sentiment, stars, topics)\n" +
		"  space/enter   Toggle facet\n" +
		"  1-5           Toggle star bucket directly\n" +
		"  esc, f        Exit facet mode\n\n" +
		dim.Render("General") + "\n" +
		"  h             Go to home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

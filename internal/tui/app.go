package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/matheuskafuri/billwatch/internal/browser"
	"github.com/matheuskafuri/billwatch/internal/collection"
	"github.com/matheuskafuri/billwatch/internal/config"
	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/detail"
	"github.com/matheuskafuri/billwatch/internal/filter"
	"github.com/matheuskafuri/billwatch/internal/pager"
	"github.com/matheuskafuri/billwatch/internal/summary"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeAddTerm
	modeTerms
	modeDates
	modeOverlay
	modeHelp
)

const detailTimeout = 30 * time.Second

// DetailFetcher loads the extended record behind a summary's detail URL.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, detailURL string) (detail.Value, error)
}

type App struct {
	loader  *collection.Loader
	details DetailFetcher
	log     zerolog.Logger
	mode    mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	termInput   textinput.Model
	fromInput   textinput.Model
	toInput     textinput.Model
	spinner     spinner.Model
	overlay     overlay

	// Range loaded by Init. Later loads read the active range from the loader.
	startRange congress.DateRange

	// Inputs the displayed page is derived from
	bills    []congress.BillSummary
	terms    *filter.Terms
	sort     pager.Sort
	pageNum  int
	pageSize int

	// Derived
	page pager.Page

	// State
	cursor     int
	termCursor int
	nextToken  uint64
	viewedID   string
	err        error
	notice     string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Loader   *collection.Loader
	Details  DetailFetcher
	Range    congress.DateRange
	Terms    []string
	PageSize int
	Logger   zerolog.Logger
}

func newInput(placeholder, prompt string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = promptStyle.Render(prompt)
	ti.CharLimit = limit
	return ti
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	pageSize := opts.PageSize
	if !pager.ValidPageSize(pageSize) {
		pageSize = pager.DefaultPageSize
	}

	a := &App{
		loader:      opts.Loader,
		details:     opts.Details,
		log:         opts.Logger,
		searchInput: newInput("Search titles...", "/ ", 100),
		termInput:   newInput("Term to hide...", "hide: ", 60),
		fromInput:   newInput("YYYY-MM-DD", "from: ", 10),
		toInput:     newInput("YYYY-MM-DD", "to: ", 10),
		spinner:     sp,
		startRange:  opts.Range,
		terms:       filter.NewTerms(opts.Terms),
		pageNum:     1,
		pageSize:    pageSize,
	}
	a.derive()
	return a
}

func (a *App) Init() tea.Cmd {
	return a.startLoad(a.startRange)
}

// beginLoad clears the collection and moves the loader to Loading for rng.
// The returned function drains the range.
func (a *App) beginLoad(rng congress.DateRange) func() collection.Result {
	a.bills = nil
	a.notice = ""
	if !rng.Valid() {
		a.notice = "invalid date range, showing no bills"
	}
	a.pageNum = 1
	a.derive()
	return a.loader.Begin(context.Background(), rng)
}

// startLoad drains rng in the background. Results from superseded loads come
// back marked stale.
func (a *App) startLoad(rng congress.DateRange) tea.Cmd {
	run := a.beginLoad(rng)
	return tea.Batch(func() tea.Msg {
		return loadDoneMsg{result: run()}
	}, a.spinner.Tick)
}

// loadState reports the loader's state and the error of a failed load.
func (a *App) loadState() (collection.State, error) {
	state, _, err := a.loader.Snapshot()
	return state, err
}

func rateLimitHint(err error) string {
	if congress.IsHTTPStatus(err, http.StatusTooManyRequests) {
		return " (rate limited: set api_key in the config file or $" + config.APIKeyEnv + ")"
	}
	return ""
}

func (a *App) fetchDetailCmd() tea.Cmd {
	fetcher := a.details
	token := a.overlay.token
	url := a.overlay.bill.DetailURL()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()
		v, err := fetcher.FetchDetail(ctx, url)
		return detailLoadedMsg{token: token, value: v, err: err}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// derive recomputes the displayed page from the input cells.
func (a *App) derive() {
	a.page = pager.Derive(a.bills, pager.Inputs{
		Query:    a.searchInput.Value(),
		Terms:    a.terms.List(),
		Sort:     a.sort,
		Page:     a.pageNum,
		PageSize: a.pageSize,
	})
	if a.cursor >= len(a.page.Rows) {
		a.cursor = max(0, len(a.page.Rows)-1)
	}
}

// refilter is derive after a search or exclusion change, which always
// returns to the first page.
func (a *App) refilter() {
	a.pageNum = 1
	a.cursor = 0
	a.derive()
}

func (a *App) goToPage(n int) {
	if n < 1 {
		n = 1
	}
	if n != a.pageNum {
		a.pageNum = n
		a.cursor = 0
		a.derive()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.overlay.open {
			a.overlay.resize(a.width, a.height)
			a.overlay.refresh(a.spinner.View())
		}
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case loadDoneMsg:
		res := msg.result
		if res.Stale {
			a.log.Debug().
				Uint64("generation", res.Generation).
				Uint64("current", a.loader.Generation()).
				Str("range", res.Range.String()).
				Msg("ignoring stale load")
			return a, nil
		}
		// The loader holds the outcome: nil bills after a failure.
		_, a.bills, _ = a.loader.Snapshot()
		a.refilter()
		return a, nil

	case detailLoadedMsg:
		if !a.overlay.open || msg.token != a.overlay.token {
			a.log.Debug().Uint64("token", msg.token).Msg("dropping detail for closed overlay")
			return a, nil
		}
		if msg.err != nil {
			a.overlay.state = detailFailed
			a.overlay.err = msg.err
		} else {
			a.overlay.state = detailReady
			a.overlay.detail = msg.value
		}
		a.overlay.refresh(a.spinner.View())
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		detailLoading := a.overlay.open && a.overlay.state == detailLoading
		state, _ := a.loadState()
		if state == collection.Loading || detailLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			if detailLoading {
				a.overlay.refresh(a.spinner.View())
			}
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
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeAddTerm:
		return a.handleAddTermKey(msg)
	case modeTerms:
		return a.handleTermsKey(msg)
	case modeDates:
		return a.handleDatesKey(msg)
	case modeOverlay:
		return a.handleOverlayKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.page.Rows)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "n", "right":
		if a.page.HasNext() {
			a.goToPage(a.pageNum + 1)
		}
		return a, nil
	case "p", "left":
		if a.page.HasPrev() {
			a.goToPage(a.pageNum - 1)
		}
		return a, nil
	case "g":
		a.goToPage(1)
		return a, nil
	case "G":
		a.goToPage(max(a.page.TotalPages, 1))
		return a, nil
	case "s":
		a.pageSize = pager.NextPageSize(a.pageSize)
		a.pageNum = 1
		a.cursor = 0
		a.derive()
		return a, nil
	case "1", "2", "3", "4", "5":
		if col, ok := columnForKey(msg.String()); ok {
			a.sort = a.sort.Toggle(col)
			a.derive()
		}
		return a, nil
	case "enter":
		if a.cursor < len(a.page.Rows) {
			return a, a.openOverlay(a.page.Rows[a.cursor])
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "x":
		a.mode = modeAddTerm
		a.termInput.SetValue("")
		a.termInput.Focus()
		return a, textinput.Blink
	case "t":
		a.mode = modeTerms
		a.termCursor = 0
		return a, nil
	case "D":
		a.mode = modeDates
		rng := a.loader.Range()
		a.fromInput.SetValue(formatInputDate(rng.Start))
		a.toInput.SetValue(formatInputDate(rng.End))
		a.toInput.Blur()
		a.fromInput.Focus()
		return a, textinput.Blink
	case "r":
		return a, a.startLoad(a.loader.Range())
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.refilter()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-filter on actual value changes, not cursor moves etc.
	if a.searchInput.Value() != before {
		a.refilter()
	}
	return a, cmd
}

func (a *App) handleAddTermKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.termInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.termInput.Blur()
		if a.terms.Add(a.termInput.Value()) {
			a.refilter()
		}
		a.termInput.SetValue("")
		return a, nil
	}

	var cmd tea.Cmd
	a.termInput, cmd = a.termInput.Update(msg)
	return a, cmd
}

func (a *App) handleTermsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t", "q":
		a.mode = modeNormal
	case "j", "down":
		if a.termCursor < a.terms.Len()-1 {
			a.termCursor++
		}
	case "k", "up":
		if a.termCursor > 0 {
			a.termCursor--
		}
	case "d", "backspace", "delete":
		if a.terms.RemoveAt(a.termCursor) {
			if a.termCursor >= a.terms.Len() {
				a.termCursor = max(0, a.terms.Len()-1)
			}
			a.refilter()
		}
	case "x", "a":
		a.mode = modeAddTerm
		a.termInput.SetValue("")
		a.termInput.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleDatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.fromInput.Blur()
		a.toInput.Blur()
		return a, nil
	case "tab", "shift+tab":
		if a.fromInput.Focused() {
			a.fromInput.Blur()
			a.toInput.Focus()
		} else {
			a.toInput.Blur()
			a.fromInput.Focus()
		}
		return a, textinput.Blink
	case "enter":
		rng, err := parseRangeInput(a.fromInput.Value(), a.toInput.Value())
		if err != nil {
			a.err = err
			return a, nil
		}
		a.mode = modeNormal
		a.fromInput.Blur()
		a.toInput.Blur()
		return a, a.startLoad(rng)
	}

	var cmd tea.Cmd
	if a.fromInput.Focused() {
		a.fromInput, cmd = a.fromInput.Update(msg)
	} else {
		a.toInput, cmd = a.toInput.Update(msg)
	}
	return a, cmd
}

func formatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(congress.DateLayout)
}

func parseRangeInput(from, to string) (congress.DateRange, error) {
	start, err := congress.ParseDate(from)
	if err != nil {
		return congress.DateRange{}, fmt.Errorf("invalid start date %q: use %s", from, congress.DateLayout)
	}
	end, err := congress.ParseDate(to)
	if err != nil {
		return congress.DateRange{}, fmt.Errorf("invalid end date %q: use %s", to, congress.DateLayout)
	}
	return congress.DateRange{Start: start, End: end}, nil
}

// openOverlay shows bill and turns mouse reporting on for outside-click
// dismissal.
func (a *App) openOverlay(bill congress.BillSummary) tea.Cmd {
	a.nextToken++
	a.overlay = newOverlay(bill, a.nextToken, a.width, a.height)
	a.viewedID = bill.ID()
	a.overlay.refresh(a.spinner.View())
	a.mode = modeOverlay
	return tea.EnableMouseCellMotion
}

// closeOverlay releases mouse reporting. Any detail still in flight is
// dropped when it arrives.
func (a *App) closeOverlay() tea.Cmd {
	a.overlay.open = false
	a.mode = modeNormal
	return tea.DisableMouse
}

func (a *App) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return a, a.closeOverlay()
	case "m":
		if a.overlay.state == detailLoading || a.overlay.state == detailReady {
			return a, nil
		}
		if a.details == nil || a.overlay.bill.DetailURL() == "" {
			a.err = errors.New("no detail link for this bill")
			return a, nil
		}
		a.overlay.state = detailLoading
		a.overlay.err = nil
		a.overlay.refresh(a.spinner.View())
		return a, tea.Batch(a.fetchDetailCmd(), a.spinner.Tick)
	case "o":
		u := a.overlay.bill.PublicURL()
		if u == "" {
			a.err = errors.New("no congress.gov page for this bill")
			return a, nil
		}
		return a, openBrowserCmd(u)
	case "j", "down":
		a.overlay.vp.LineDown(1)
	case "k", "up":
		a.overlay.vp.LineUp(1)
	case "pgdown", " ", "f":
		a.overlay.vp.LineDown(a.overlay.vp.Height)
	case "pgup", "b":
		a.overlay.vp.LineUp(a.overlay.vp.Height)
	case "g", "home":
		a.overlay.vp.GotoTop()
	case "G", "end":
		a.overlay.vp.GotoBottom()
	}
	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.mode != modeOverlay || !a.overlay.open {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.overlay.vp.LineUp(3)
	case tea.MouseButtonWheelDown:
		a.overlay.vp.LineDown(3)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && !a.overlay.contains(msg.X, msg.Y, a.width, a.height) {
			return a.closeOverlay()
		}
	}
	return nil
}

func (a *App) hints() string {
	switch a.mode {
	case modeSearch:
		return "esc clear  enter done"
	case modeAddTerm:
		return "enter add  esc cancel"
	case modeTerms:
		return "j/k move  d remove  x add  esc done"
	case modeDates:
		return "tab switch  enter apply  esc cancel"
	}
	return "1-4 sort  n/p page  / search  x hide  D dates  ? help  q quit"
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  billwatch")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	if a.mode == modeOverlay && a.overlay.open {
		var notice string
		if a.err != nil {
			notice = a.err.Error()
		}
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.overlay.view(notice))
	}

	rng := a.loader.Range()
	state, loadErr := a.loadState()
	loading := state == collection.Loading

	// Header
	headerLeft := headerStyle.Render("billwatch")
	headerRight := headerRangeStyle.Render(rng.String() + " ")
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Control row: terms bar, or the active input
	control := renderTermsBar(a.terms.List(), a.width)
	switch a.mode {
	case modeSearch:
		control = a.searchInput.View()
	case modeAddTerm:
		control = a.termInput.View()
	case modeDates:
		control = a.fromInput.View() + "   " + a.toInput.View()
	default:
		if q := strings.TrimSpace(a.searchInput.Value()); q != "" {
			control = labelStyle.Render(" search ") + bodyStyle.Render(q) + "  " + control
		}
	}

	// Banner: load error, then notice
	var banners []string
	if state == collection.Failed && loadErr != nil {
		banners = append(banners, errorBannerStyle.Width(a.width).Render("Error loading bills: "+loadErr.Error()+rateLimitHint(loadErr)))
	}
	if a.notice != "" {
		banners = append(banners, noticeStyle.Render(" "+a.notice))
	}

	contentHeight := a.height - 4 - len(banners) - 2 // header, control, preview, status, borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	switch {
	case a.mode == modeTerms:
		content = renderTermsManager(a.terms.List(), a.termCursor, a.width-4)
	case loading:
		content = "\n  " + a.spinner.View() + " Loading bill summaries..."
	default:
		content = renderTable(a.page.Rows, a.sort, a.cursor, a.viewedID, a.width-4, contentHeight)
	}
	pane := tablePaneStyle.Width(a.width - 2).Height(contentHeight).Render(content)

	// Summary excerpt of the cursor row
	var preview string
	if !loading && a.mode != modeTerms && a.cursor < len(a.page.Rows) {
		label := labelStyle.Render(" summary ")
		if n := a.width - lipgloss.Width(label) - 1; n > 0 {
			if text := summary.Excerpt(a.page.Rows[a.cursor].Text, n); text != "" {
				preview = label + helpDimStyle.Render(text)
			}
		}
	}

	// Status bar
	status := renderStatusBar(a.page, rng, loading, a.hints(), a.width)
	if a.err != nil {
		status = noticeStyle.Render(" " + a.err.Error())
	}

	parts := append([]string{header, control}, banners...)
	parts = append(parts, pane, preview, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("billwatch")
	dim := helpDimStyle

	help := title + dim.Render(" keyboard shortcuts") + "\n\n" +
		dim.Render("Table") + "\n" +
		"  j/k, ↑/↓      Move selection\n" +
		"  1-4           Sort by number, action date, update date, chamber\n" +
		"  n/→, p/←      Next / previous page\n" +
		"  g, G          First / last page\n" +
		"  s             Cycle page size (10, 25, 50, 100)\n" +
		"  enter         Open bill details\n\n" +
		dim.Render("Filters") + "\n" +
		"  /             Search titles\n" +
		"  x             Hide titles containing a term\n" +
		"  t             Manage hidden terms\n" +
		"  D             Edit date range\n" +
		"  r             Reload\n\n" +
		dim.Render("Details") + "\n" +
		"  m             Load more details\n" +
		"  o             Open on congress.gov\n" +
		"  esc, click    Close\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

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

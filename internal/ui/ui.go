package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/goals"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/session"
	"github.com/desertthunder/fanstats/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongsView ViewState = iota
	GoalView
	RankingView
	MissionsView
	viewCount
)

var viewNames = [...]string{"Songs", "Goal", "Ranking", "Missions"}

func (v ViewState) String() string {
	if v < 0 || v >= viewCount {
		return "Unknown"
	}
	return viewNames[v]
}

const (
	defaultWidth  = 100
	defaultHeight = 24
	barWidth      = 40
)

// Deps holds the components the TUI reads from and writes to.
type Deps struct {
	Catalog  *catalog.Catalog
	Goals    *goals.Engine
	Missions *missions.Engine
	Session  *session.Manager
	Now      func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	deps     Deps
	view     ViewState
	width    int
	height   int
	songs    []models.Song
	rows     []catalog.Row
	sort     catalog.SortState
	search   textinput.Model
	cursor   int
	status   *goals.Status
	recent   []models.RecentGoal
	ranking  list.Model
	missions list.Model
	user     *models.User
	notice   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(deps Deps) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	search := textinput.New()
	search.Placeholder = "search name, album or artist"
	search.Prompt = "/ "

	ranking := list.New(nil, list.NewDefaultDelegate(), defaultWidth, defaultHeight-8)
	ranking.Title = "Ranking"
	ranking.SetShowHelp(false)

	mlist := list.New(nil, list.NewDefaultDelegate(), defaultWidth, defaultHeight-8)
	mlist.Title = "Daily missions"
	mlist.SetShowHelp(false)
	mlist.SetFilteringEnabled(false)

	return &Model{
		deps:     deps,
		view:     SongsView,
		width:    defaultWidth,
		height:   defaultHeight,
		sort:     catalog.NewSortState(),
		search:   search,
		ranking:  ranking,
		missions: mlist,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init loads every view's data.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSongs(true), m.loadGoal(), m.loadRanking(), m.loadMissions())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ranking.SetSize(msg.Width-4, msg.Height-8)
		m.missions.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		m.songs = msg.data.([]models.Song)
		m.applyQuery()
		return m, nil

	case MsgGoalLoaded:
		data := msg.data.(goalData)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.status = data.status
		m.recent = data.recent
		if len(data.status.Reached) > 0 {
			m.notice = fmt.Sprintf("🎉 %d goal(s) reached!", len(data.status.Reached))
		}
		return m, nil

	case MsgRankingLoaded:
		return m, m.ranking.SetItems(standingItems(msg.data.([]missions.Standing)))

	case MsgMissionsLoaded:
		data := msg.data.(missionsData)
		m.user = data.user
		return m, m.missions.SetItems(missionItems(data.missions))

	case MsgMissionCompleted:
		data := msg.data.(completedData)
		switch {
		case errors.Is(data.err, missions.ErrNotLoggedIn):
			m.notice = "Log in with `fanstats login` to earn points."
		case data.err != nil:
			m.err = data.err
		case data.result.Awarded:
			m.notice = fmt.Sprintf("Mission complete! %s +%d points (total %d)", data.result.Mission.Name, data.result.Mission.Points, data.result.Total)
		default:
			m.notice = fmt.Sprintf("%s already completed today.", data.result.Mission.Name)
		}
		return m, tea.Batch(m.loadMissions(), m.loadRanking())

	case MsgSimulated:
		data := msg.data.(simulatedData)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.notice = simulationLine(data.sim)
		return m, tea.Batch(m.loadMissions(), m.loadRanking())
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyQuery()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.view = (m.view + 1) % viewCount
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.view = (m.view + viewCount - 1) % viewCount
		m.notice = ""
		return m, nil
	}

	switch m.view {
	case SongsView:
		return m.handleSongsKeys(msg)
	case GoalView:
		if key.Matches(msg, m.keys.refresh) {
			return m, m.loadGoal()
		}
		if key.Matches(msg, m.keys.simulate) {
			return m, m.simulate()
		}
	case RankingView:
		if key.Matches(msg, m.keys.refresh) {
			return m, m.loadRanking()
		}
		var cmd tea.Cmd
		m.ranking, cmd = m.ranking.Update(msg)
		return m, cmd
	case MissionsView:
		if key.Matches(msg, m.keys.enter) {
			if item, ok := m.missions.SelectedItem().(missionItem); ok {
				return m, m.completeMission(item.mission.Key)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.missions, cmd = m.missions.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSongsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.back):
		m.search.SetValue("")
		m.applyQuery()
	case key.Matches(msg, m.keys.up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.down):
		m.cursor = min(max(0, len(m.rows)-1), m.cursor+1)
	case key.Matches(msg, m.keys.sort):
		i := int(msg.Runes[0] - '1')
		m.sort = m.sort.Toggle(catalog.Columns[i])
		m.applyQuery()
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadSongs(false)
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case RankingView:
		m.ranking, cmd = m.ranking.Update(msg)
	case MissionsView:
		m.missions, cmd = m.missions.Update(msg)
	}
	return m, cmd
}

// applyQuery rebuilds the visible rows from the search term and sort state.
func (m *Model) applyQuery() {
	filtered := catalog.Filter(m.songs, m.search.Value())
	m.rows = catalog.Rows(catalog.Sort(filtered, m.sort.Column, m.sort.Direction))
	m.cursor = min(m.cursor, max(0, len(m.rows)-1))
}

func (m *Model) loadSongs(visit bool) tea.Cmd {
	return func() tea.Msg {
		if visit {
			if _, ok := m.deps.Session.CurrentUser(); ok {
				_, _ = m.deps.Missions.CompleteMission(missions.SearchSong)
			}
		}
		return songsLoadedMsg(m.deps.Catalog.Load())
	}
}

func (m *Model) loadGoal() tea.Cmd {
	return func() tea.Msg {
		status, err := m.deps.Goals.Recompute(m.deps.Catalog.Load())
		if err != nil {
			return goalLoadedMsg(nil, nil, err)
		}
		return goalLoadedMsg(status, m.deps.Goals.RecentGoals(), nil)
	}
}

func (m *Model) loadRanking() tea.Cmd {
	return func() tea.Msg {
		return rankingLoadedMsg(m.deps.Missions.Ranking())
	}
}

func (m *Model) loadMissions() tea.Cmd {
	return func() tea.Msg {
		user, _ := m.deps.Session.CurrentUser()
		return missionsLoadedMsg(user, m.deps.Missions.UserMissions())
	}
}

func (m *Model) completeMission(key string) tea.Cmd {
	return func() tea.Msg {
		return missionCompletedMsg(m.deps.Missions.CompleteMission(key))
	}
}

func (m *Model) simulate() tea.Cmd {
	return func() tea.Msg {
		focus, err := m.deps.Catalog.VotedFocus()
		if err != nil {
			return simulatedMsg(nil, err)
		}
		sim := catalog.Simulate(*focus, m.deps.Now())
		if _, ok := m.deps.Session.CurrentUser(); ok {
			_, _ = m.deps.Missions.CompleteMission(missions.UseCalculator)
		}
		return simulatedMsg(&sim, nil)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.view {
	case SongsView:
		b.WriteString(m.renderSongs())
	case GoalView:
		b.WriteString(m.renderGoal())
	case RankingView:
		b.WriteString(m.renderRanking())
	case MissionsView:
		b.WriteString(m.renderMissions())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.ok.Render(m.notice))
	}
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, viewCount)
	for v := range viewCount {
		if v == m.view {
			tabs[v] = styles.active.Render(v.String())
		} else {
			tabs[v] = styles.tab.Render(v.String())
		}
	}

	who := styles.help.Render("not logged in")
	if m.user != nil {
		who = styles.ok.Render(fmt.Sprintf("%s • %d pts", m.user.DisplayName(), m.user.Points))
	}
	return strings.Join(tabs, "") + "  " + who
}

var columnTitles = map[catalog.Column]string{
	catalog.ColumnName:         "Song",
	catalog.ColumnAlbum:        "Album",
	catalog.ColumnArtist:       "Artist",
	catalog.ColumnTotalStreams: "Total",
	catalog.ColumnDailyStreams: "Daily",
	catalog.ColumnGoal:         "Goal",
	catalog.ColumnDaysToGoal:   "Days",
	catalog.ColumnProgress:     "Progress",
}

var columnWidths = map[catalog.Column]int{
	catalog.ColumnName:         24,
	catalog.ColumnAlbum:        20,
	catalog.ColumnArtist:       18,
	catalog.ColumnTotalStreams: 9,
	catalog.ColumnDailyStreams: 9,
	catalog.ColumnGoal:         9,
	catalog.ColumnDaysToGoal:   10,
	catalog.ColumnProgress:     8,
}

func (m *Model) renderSongs() string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	headers := make([]string, len(catalog.Columns))
	for i, c := range catalog.Columns {
		title := fmt.Sprintf("%d %s", i+1, columnTitles[c])
		if c == m.sort.Column {
			if m.sort.Direction == catalog.Ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		headers[i] = pad(title, columnWidths[c])
	}
	b.WriteString(styles.header.Render(strings.Join(headers, " ")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.help.Render("No songs match."))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		cells := []string{
			pad(r.Name, columnWidths[catalog.ColumnName]),
			pad(r.Album, columnWidths[catalog.ColumnAlbum]),
			pad(r.Artist, columnWidths[catalog.ColumnArtist]),
			pad(shared.FormatNumber(r.TotalStreams), columnWidths[catalog.ColumnTotalStreams]),
			pad(shared.FormatNumber(r.DailyStreams), columnWidths[catalog.ColumnDailyStreams]),
			pad(shared.FormatNumber(r.Goal), columnWidths[catalog.ColumnGoal]),
			pad(r.DaysLabel, columnWidths[catalog.ColumnDaysToGoal]),
			pad(fmt.Sprintf("%d%%", r.Progress), columnWidths[catalog.ColumnProgress]),
		}
		line := strings.Join(cells, " ")

		switch {
		case i == m.cursor:
			line = styles.selected.Render(line)
		case r.Warning:
			line = styles.warn.Render(line)
		case r.Highlight:
			line = styles.ok.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	stats := catalog.Stats(m.songs)
	b.WriteString("\n")
	b.WriteString(styles.help.Render(fmt.Sprintf("%d songs • %s streams • average goal %s",
		stats.Songs, shared.FormatNumber(stats.TotalStreams), shared.FormatNumber(stats.AverageGoal))))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.sort, m.keys.up, m.keys.down, m.keys.next, m.keys.quit}))
	return b.String()
}

func (m *Model) renderGoal() string {
	if m.status == nil {
		return styles.help.Render("Loading goal progress...")
	}

	var b strings.Builder
	s := m.status
	tier := TierStyle(s.Level)

	b.WriteString(styles.title.Render("Cumulative goal"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s / %s streams\n",
		shared.FormatNumber(s.Progress.CurrentProgress), shared.FormatNumber(s.Progress.CurrentGoal))
	fmt.Fprintf(&b, "%s %d%%\n\n", ProgressBar(s.Percent, barWidth, tier), s.Percent)
	fmt.Fprintf(&b, "Level: %s (%s/day, next goal +%s)\n",
		styles.On(" "+s.Level.Name+" ", lipgloss.Color(s.Level.Color)), shared.FormatNumber(s.DailyRate), shared.FormatNumber(s.Level.Increment))

	b.WriteString("\n")
	b.WriteString(styles.header.Render("Recently reached"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(styles.help.Render("No goals reached yet."))
		b.WriteString("\n")
	}
	for _, g := range m.recent {
		b.WriteString("  " + styles.As("🏆", lipgloss.Color(s.Level.Color)) + " " + recentGoalLine(g) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.simulate, m.keys.refresh, m.keys.next, m.keys.quit}))
	return b.String()
}

func (m *Model) renderRanking() string {
	if len(m.ranking.Items()) == 0 {
		return styles.help.Render("No fans ranked yet. Log in and complete missions!") + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.quit})
	}
	return fmt.Sprintf("%s\n\n%s", m.ranking.View(), m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.next, m.keys.quit}))
}

func (m *Model) renderMissions() string {
	if m.user == nil {
		return styles.warn.Render("Log in with `fanstats login` to see your missions.") + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.quit})
	}
	return fmt.Sprintf("%s\n\n%s", m.missions.View(), m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.next, m.keys.quit}))
}

func simulationLine(sim *catalog.Simulation) string {
	if sim.Reached {
		return fmt.Sprintf("🎉 %s already reached its daily goal with %s streams today.", sim.Song, shared.FormatNumber(sim.Current))
	}
	hours := fmt.Sprintf("%d hours", sim.HoursNeeded)
	if sim.HoursNeeded >= catalog.Unreachable {
		hours = "unknown (no streams yet today)"
	}
	return fmt.Sprintf("%s: %s to go • %s/hour • estimated %s",
		sim.Song, shared.FormatNumber(sim.Needed), shared.FormatNumber(sim.AveragePerHour), hours)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

package tui

import (
	"net/netip"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TommyGymer/mdns-client/internal/records"
	"github.com/TommyGymer/mdns-client/internal/scan"
)

const (
	// refreshInterval is how often the table re-reads the store.
	refreshInterval = 100 * time.Millisecond

	// notFound fills an address column when the family is missing.
	notFound = "Not found"
)

// mode is the input focus of the browse screen.
type mode int

const (
	// modeViewing browses results; keys scroll the table.
	modeViewing mode = iota
	// modeEditing edits the query; keys go to the text input.
	modeEditing
)

// viewingKeys are the bindings active while browsing results.
type viewingKeys struct {
	Edit key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func defaultViewingKeys() viewingKeys {
	return viewingKeys{
		Edit: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit query"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k viewingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k viewingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Up, k.Down},
		{k.Quit},
	}
}

// editingKeys are the bindings active while the query is being edited.
type editingKeys struct {
	Commit key.Binding
	Quit   key.Binding
}

func defaultEditingKeys() editingKeys {
	return editingKeys{
		Commit: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "start scan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k editingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k editingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Commit}, {k.Quit}}
}

// Model drives the interactive browse screen: a query box above a live
// host/address table, refreshed from the store on a timer.
type Model struct {
	store      *records.Store
	controller *scan.Controller

	mode     mode
	input    textinput.Model
	table    table.Model
	help     help.Model
	viewKeys viewingKeys
	editKeys editingKeys

	scanErr error
	width   int
	height  int
}

// NewModel builds the browse screen. With a non-empty initialQuery the
// screen opens in viewing mode and Init launches the scan; otherwise it
// opens in edit mode waiting for a query.
func NewModel(store *records.Store, controller *scan.Controller, initialQuery string) Model {
	input := textinput.New()
	input.Placeholder = "_http._tcp.local"
	input.Prompt = ""
	input.CharLimit = 253

	columns := []table.Column{
		{Title: "Host", Width: 36},
		{Title: "IPv4", Width: 18},
		{Title: "IPv6", Width: 28},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(highlightColor).
		Bold(true)
	tbl.SetStyles(styles)

	m := Model{
		store:      store,
		controller: controller,
		mode:       modeEditing,
		input:      input,
		table:      tbl,
		help:       help.New(),
		viewKeys:   defaultViewingKeys(),
		editKeys:   defaultEditingKeys(),
	}
	if q := strings.TrimSpace(initialQuery); q != "" {
		m.input.SetValue(q)
		m.mode = modeViewing
	} else {
		m.input.Focus()
	}
	return m
}

// Query returns the current query text.
func (m Model) Query() string {
	return m.input.Value()
}

// tickMsg drives the periodic table refresh.
type tickMsg time.Time

// scanStartedMsg carries the outcome of a scan start.
type scanStartedMsg struct {
	err error
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startScanCmd restarts the background scan for the current query text.
func (m Model) startScanCmd() tea.Cmd {
	controller := m.controller
	query := m.input.Value()
	return func() tea.Msg {
		return scanStartedMsg{err: controller.Start(query)}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), textinput.Blink}
	if m.mode == modeViewing {
		cmds = append(cmds, m.startScanCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		m.refreshRows()
		return m, tickCmd()

	case scanStartedMsg:
		m.scanErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeEditing {
			return m.updateEditing(msg)
		}
		return m.updateViewing(msg)
	}
	return m, nil
}

func (m Model) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.viewKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.viewKeys.Edit):
		m.mode = modeEditing
		m.input.Focus()
		m.input.CursorEnd()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.editKeys.Commit):
		// Enter and Esc both commit; there is no cancel, the committed
		// text is whatever is in the box.
		m.mode = modeViewing
		m.input.Blur()
		m.scanErr = nil
		return m, m.startScanCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refreshRows rebuilds the table from a store snapshot. One row per
// host; a missing family renders as a placeholder so the columns always
// line up.
func (m *Model) refreshRows() {
	snap := m.store.Snapshot()
	hosts := snap.Hosts()
	rows := make([]table.Row, 0, len(hosts))
	for _, host := range hosts {
		ipv4, ipv6 := snap.Lookup(host)
		rows = append(rows, table.Row{host, addrCell(ipv4), addrCell(ipv6)})
	}
	m.table.SetRows(rows)
}

// addrCell renders one address column.
func addrCell(addr netip.Addr) string {
	if !addr.IsValid() {
		return notFound
	}
	return addr.String()
}

// resize spreads the window across the query box, table and footer,
// keeping the original 40/30/30 column split.
func (m *Model) resize() {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	host := width * 40 / 100
	v4 := width * 30 / 100
	v6 := width - host - v4
	m.table.SetColumns([]table.Column{
		{Title: "Host", Width: host},
		{Title: "IPv4", Width: v4},
		{Title: "IPv6", Width: v6},
	})

	height := m.height - 8
	if height < 5 {
		height = 5
	}
	m.table.SetHeight(height)

	m.input.Width = width - 2
	m.help.Width = m.width
}

// View implements tea.Model.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.queryView(),
		m.table.View(),
		m.footerView(),
	)
}

// queryView renders the query box: the live input while editing, the
// committed text otherwise.
func (m Model) queryView() string {
	var content string
	switch {
	case m.mode == modeEditing:
		content = m.input.View()
	case m.input.Value() != "":
		content = queryTextStyle.Render(m.input.Value())
	default:
		content = placeholderStyle.Render("press / to enter a query")
	}

	box := queryBoxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("mDNS Query"),
		box.Render(content),
	)
}

// footerView renders the key help, preceded by the last scan failure and
// its troubleshooting hint when there is one.
func (m Model) footerView() string {
	var helpView string
	if m.mode == modeEditing {
		helpView = m.help.View(m.editKeys)
	} else {
		helpView = m.help.View(m.viewKeys)
	}

	if m.scanErr == nil {
		return helpView
	}

	parts := []string{errorStyle.Render("scan failed: " + m.scanErr.Error())}
	if hint := scan.TroubleshootingHint(m.scanErr); hint != "" {
		parts = append(parts, hintStyle.Render(hint))
	}
	parts = append(parts, helpView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

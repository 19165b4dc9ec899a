package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fruitcat/app"
	"fruitcat/config"
	"fruitcat/log"
	"fruitcat/store"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeFilter
	modeConfirmDelete
	modeAddFruit
	modeEditFruit
	modeHelp
)

type styles struct {
	title   lipgloss.Style
	accent  lipgloss.Style
	success lipgloss.Style
	errText lipgloss.Style
	muted   lipgloss.Style
	popup   lipgloss.Style
	pane    lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent)),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Success)),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Error)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Muted)),
		popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cfg.Theme.Muted)).
			Padding(1, 2),
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cfg.Theme.Muted)).
			Padding(0, 1),
	}
}

// Model is the bubbletea model. All catalogue mutations go through the
// service; the model itself only carries presentation state and the
// mode machine. A form is present exactly while mode is add or edit.
type Model struct {
	svc      *app.Service
	dataPath string

	mode      uiMode
	form      *fruitForm
	editIndex int

	filterInput textinput.Model

	width  int
	height int

	st styles
}

func NewModel(svc *app.Service, dataPath string, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter by name"
	ti.CharLimit = 64
	ti.Width = 40

	return &Model{
		svc:         svc,
		dataPath:    dataPath,
		mode:        modeNormal,
		filterInput: ti,
		st:          newStyles(cfg),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			m.save()
			return m, nil
		}

		switch m.mode {
		case modeFilter:
			return m, m.updateFilterMode(msg)
		case modeConfirmDelete:
			m.updateConfirmMode(msg)
		case modeAddFruit, modeEditFruit:
			m.updateFormMode(msg)
		case modeHelp:
			m.updateHelpMode(msg)
		default:
			cmd, quit := m.updateNormalMode(msg)
			if quit {
				return m, tea.Quit
			}
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "esc":
		// A visible message absorbs the first press; quitting with
		// unsaved changes is refused until the catalogue is saved.
		if m.svc.HasStatus() {
			m.svc.ClearStatus()
			return nil, false
		}
		if m.svc.Dirty() {
			m.svc.SetError("unsaved changes: press ctrl+s to save before quitting")
			return nil, false
		}
		return nil, true
	case "up", "k":
		m.svc.SelectPrevious()
	case "down", "j":
		m.svc.SelectNext()
	case "/":
		m.mode = modeFilter
		m.filterInput.SetValue(m.svc.FilterQuery())
		m.filterInput.CursorEnd()
		return m.filterInput.Focus(), false
	case "a":
		m.form = newFruitForm()
		m.mode = modeAddFruit
	case "e":
		fruit, ok := m.svc.SelectedFruit()
		if !ok {
			m.svc.SetError("no fruit selected")
			break
		}
		idx, _ := m.svc.SelectedFruitIndex()
		m.form = formFromFruit(fruit)
		m.editIndex = idx
		m.mode = modeEditFruit
	case "d":
		m.mode = modeConfirmDelete
	case "?":
		m.mode = modeHelp
	}
	return nil, false
}

func (m *Model) updateFilterMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.svc.ClearFilter()
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.mode = modeNormal
		return nil
	case "enter":
		m.filterInput.Blur()
		m.mode = modeNormal
		return nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.svc.UpdateFilter(m.filterInput.Value())
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		if idx, ok := m.svc.SelectedFruitIndex(); ok {
			if err := m.svc.DeleteFruit(idx); err != nil {
				m.svc.SetError("failed to delete: " + err.Error())
				m.mode = modeNormal
				return
			}
			log.Info("deleted fruit at index %d", idx)
		}
		m.svc.ClearStatus()
		m.mode = modeNormal
	case "n", "esc":
		m.svc.ClearStatus()
		m.mode = modeNormal
	}
}

func (m *Model) updateFormMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q":
		m.form = nil
		m.mode = modeNormal
		return
	case "tab":
		m.form.nextField()
		return
	case "shift+tab":
		m.form.prevField()
		return
	case "enter":
		m.commitForm()
		return
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.form.backspace()
	case tea.KeySpace:
		m.form.insert(" ")
	case tea.KeyRunes:
		m.form.insert(string(msg.Runes))
	}
}

func (m *Model) updateHelpMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "?", "enter":
		m.mode = modeNormal
	}
}

func (m *Model) commitForm() {
	fruit, err := m.form.validate()
	if err != nil {
		// The form shows its own message; keep it open.
		return
	}

	switch m.mode {
	case modeAddFruit:
		m.svc.AddFruit(fruit)
		log.Info("added fruit %q", fruit.Name)
	case modeEditFruit:
		if err := m.svc.UpdateFruit(m.editIndex, fruit); err != nil {
			m.svc.SetError("failed to update: " + err.Error())
		} else {
			log.Info("updated fruit %q at index %d", fruit.Name, m.editIndex)
		}
	}

	m.form = nil
	m.mode = modeNormal
}

func (m *Model) save() {
	fruits := m.svc.Fruits()
	if err := store.Save(m.dataPath, fruits); err != nil {
		log.Error("save catalogue to %s: %v", m.dataPath, err)
		m.svc.SetError("failed to save: " + err.Error())
		return
	}
	m.svc.MarkSaved()
	m.svc.SetStatus(fmt.Sprintf("saved %d fruits", len(fruits)))
	log.Info("saved %d fruits to %s", len(fruits), m.dataPath)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		m.st.title.Render("fruitcat"),
		m.st.muted.Render("  "+m.headerSummary()),
	)

	viewW := m.viewportWidth()
	panelH := m.height - 5
	if panelH < 8 {
		panelH = 8
	}

	leftW, rightW := m.paneWidths(viewW, 1)
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderListPanel(leftW, panelH),
		" ",
		m.renderDetailsPanel(rightW, panelH),
	)

	if overlay := m.renderOverlay(viewW); overlay != "" {
		panes = lipgloss.Place(viewW, panelH+2, lipgloss.Center, lipgloss.Center, overlay)
	}

	return strings.Join([]string{header, panes, m.renderFooter()}, "\n")
}

func (m *Model) headerSummary() string {
	summary := fmt.Sprintf("%d fruits", m.svc.Len())
	if m.svc.IsFiltering() {
		summary += fmt.Sprintf(" • filter: %q", m.svc.FilterQuery())
	}
	if m.svc.Dirty() {
		summary += " • unsaved"
	}
	return summary
}

// renderOverlay picks the popup drawn over the panes. An error or status
// message always wins over the mode overlays.
func (m *Model) renderOverlay(viewW int) string {
	popupW := clamp(viewW-20, 40, 72)

	if msg, isErr := m.svc.Status(); msg != "" {
		title := "Status"
		body := m.st.success.Render(msg)
		if isErr {
			title = "Error"
			body = m.st.errText.Render(msg)
		}
		lines := []string{
			m.st.title.Render(title),
			"",
			body,
			"",
			m.st.muted.Render("press q or Esc to dismiss"),
		}
		return m.st.popup.Width(popupW).Render(strings.Join(lines, "\n"))
	}

	switch m.mode {
	case modeConfirmDelete:
		return m.renderConfirmOverlay(popupW)
	case modeFilter:
		return m.renderFilterOverlay(popupW)
	case modeAddFruit, modeEditFruit:
		return m.renderFormOverlay(popupW)
	case modeHelp:
		return m.renderHelpOverlay(popupW)
	}
	return ""
}

func (m *Model) renderListPanel(width, height int) string {
	fruits := m.svc.DisplayFruits()

	title := "Fruits"
	if m.svc.IsFiltering() {
		title = fmt.Sprintf("Fruits (%d/%d)", len(fruits), m.svc.Len())
	}

	lines := []string{m.st.title.Render(title), ""}
	if len(fruits) == 0 {
		empty := "No fruits. Press 'a' to add one."
		if m.svc.IsFiltering() {
			empty = "No fruits match the filter."
		}
		lines = append(lines, m.st.muted.Render(empty))
	}
	for i, f := range fruits {
		name := truncateRunes(f.Name, width-4)
		if i == m.svc.SelectedIndex() {
			lines = append(lines, m.st.accent.Bold(true).Render("> "+name))
			continue
		}
		lines = append(lines, "  "+name)
	}

	return m.st.pane.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDetailsPanel(width, height int) string {
	var lines []string
	switch fruit, ok := m.svc.SelectedFruit(); {
	case m.svc.Len() == 0:
		lines = []string{m.st.title.Render("Details"), "", m.st.muted.Render("No fruits available")}
	case !ok:
		lines = []string{m.st.title.Render("Details"), "", m.st.muted.Render("Select a fruit")}
	default:
		lines = []string{
			m.st.title.Render(fmt.Sprintf("Details [%d]", m.svc.SelectedIndex()+1)),
			"",
			"Name: " + fruit.Name,
			"",
			"Dimensions:",
			"  Length: " + formatDimension(fruit.Length),
			"  Width : " + formatDimension(fruit.Width),
			"  Height: " + formatDimension(fruit.Height),
			"",
			fmt.Sprintf("Volume: %.2f", fruit.Volume()),
		}
	}

	return m.st.pane.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirmOverlay(width int) string {
	lines := []string{
		m.st.title.Render("Confirm Delete"),
		"",
		"Are you sure you want to delete this fruit?",
		"",
		m.st.accent.Render("[y]") + "es  " + m.st.accent.Render("[n]") + "o",
	}
	return m.st.popup.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFilterOverlay(width int) string {
	lines := []string{
		m.st.title.Render("Search"),
		"",
		m.filterInput.View(),
		"",
		m.st.muted.Render("Enter keep filter • Esc clear"),
	}
	return m.st.popup.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFormOverlay(width int) string {
	title := "Add Fruit"
	if m.mode == modeEditFruit {
		title = "Edit Fruit"
	}

	lines := []string{m.st.title.Render(title), ""}
	for _, field := range []inputField{fieldName, fieldLength, fieldWidth, fieldHeight} {
		label := fmt.Sprintf("%-6s : ", field.label())
		value := *m.form.buffer(field)
		if field == m.form.focused {
			lines = append(lines, m.st.accent.Render("> "+label+value+"▌"))
			continue
		}
		lines = append(lines, "  "+label+value)
	}

	lines = append(lines, "")
	if m.form.err != "" {
		lines = append(lines, m.st.errText.Render(m.form.err))
	} else {
		lines = append(lines, m.st.muted.Render("Tab next field • Enter confirm • Esc cancel"))
	}

	return m.st.popup.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelpOverlay(width int) string {
	lines := []string{
		m.st.title.Render("Keys"),
		"",
		m.st.accent.Render("Browsing"),
		"  j/k or ↓/↑ navigate • / search • Esc clear filter",
		"",
		m.st.accent.Render("Editing"),
		"  a add • e edit • d delete • Tab cycle fields",
		"",
		m.st.accent.Render("Session"),
		"  ctrl+s save • q quit • ? toggle this help",
	}
	return m.st.popup.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	left := "j/k navigate • a add • e edit • d delete • / search • ctrl+s save • q quit"
	right := "? help"

	width := m.viewportWidth()
	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}

	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}

	line := m.st.muted.Render(left) + strings.Repeat(" ", padding) + m.st.muted.Render(right)
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) viewportWidth() int {
	// Reserve one column so the right border survives terminals that
	// wrap on the last cell.
	if m.width > 1 {
		return m.width - 1
	}
	if m.width <= 0 {
		return 1
	}
	return m.width
}

func (m *Model) paneWidths(total, gap int) (int, int) {
	if total <= 0 {
		return 24, 20
	}
	left := total * 6 / 10
	right := total - left - gap
	if left < 20 {
		left = 20
	}
	if right < 16 {
		right = 16
	}
	return left, right
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

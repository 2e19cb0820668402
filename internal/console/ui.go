package console

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/investigator-tracker/internal/app"
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/rules"
	"github.com/jwebster45206/investigator-tracker/pkg/sheet"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
)

const placeholderText = "Type a command, /help for the list"

var (
	sheetPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	rosterPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	deadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

const modalWidth = 60

// notice is one message waiting in a modal.
type notice struct {
	severity rules.Severity
	title    string
	message  string
}

// events collects what the roster hooks and the keeper report between
// updates. The console model is copied on every update, so it holds a pointer.
type events struct {
	selectionChanged bool
	notices          []notice
}

// ConsoleUI is the bubbletea model of the tracker.
type ConsoleUI struct {
	roster    *state.Roster
	keeper    *rules.Keeper
	commander *Commander
	events    *events
	renderer  *glamour.TermRenderer

	sheetViewport viewport.Model
	input         textinput.Model

	width, height int
	ready         bool
	detail        string
	status        string
	statusIsError bool
	showQuitModal bool
}

// NewConsoleUI builds the console for a and installs its roster hooks.
// Install it before loading so load errors reach the first screen.
func NewConsoleUI(a *app.App) ConsoleUI {
	ev := &events{}
	a.Roster.WithHooks(state.Hooks{
		OnSelectionChanged: func() { ev.selectionChanged = true },
		OnError: func(title string, err error) {
			ev.notices = append(ev.notices, notice{
				severity: rules.SeverityCritical,
				title:    title,
				message:  err.Error(),
			})
		},
	})

	ti := textinput.New()
	ti.Placeholder = placeholderText
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 4000
	ti.Focus()

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		roster:        a.Roster,
		keeper:        a.Keeper,
		commander:     NewCommander(a.Roster, a.Keeper, clipboard.WriteAll),
		events:        ev,
		sheetViewport: vp,
		input:         ti,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.events.notices) > 0 {
		return m.updateNoticeModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.sheetViewport, vpCmd = m.sheetViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			m.apply(m.commander.Execute("/prev"))
			return m, nil
		case tea.KeyDown:
			m.apply(m.commander.Execute("/next"))
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.sheetViewport, vpCmd = m.sheetViewport.Update(msg)
			return m, vpCmd
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()
			m.apply(m.commander.Execute(input))
			return m, nil
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	return m, tiCmd
}

// apply shows a command result and collects what the command triggered.
func (m *ConsoleUI) apply(result CommandResult) {
	if result.Quit {
		m.showQuitModal = true
		return
	}
	m.status = result.Message
	m.statusIsError = result.IsError
	m.detail = result.Detail

	for _, a := range m.keeper.TakeAlerts() {
		m.events.notices = append(m.events.notices, notice{severity: a.Severity, title: a.Title, message: a.Message})
	}
	m.events.selectionChanged = false
	m.refreshSheet()
}

func (m *ConsoleUI) resize(width, height int) {
	m.width = width
	m.height = height

	sheetWidth := m.sheetWidth()
	m.sheetViewport.Width = sheetWidth - 2
	m.sheetViewport.Height = max(3, m.height-6)
	m.input.Width = max(10, sheetWidth-6)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, sheetWidth-4)),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.ready = true
	m.refreshSheet()
}

func (m ConsoleUI) sheetWidth() int {
	return int(float64(m.width)*0.75) - 4
}

func (m ConsoleUI) rosterWidth() int {
	return m.width - m.sheetWidth() - 6
}

// refreshSheet renders the selected investigator, or the detail text, into
// the sheet viewport.
func (m *ConsoleUI) refreshSheet() {
	md := m.detail
	if md == "" {
		md = sheetMarkdown(m.roster.Selected())
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}
	m.sheetViewport.SetContent(md)
	m.sheetViewport.GotoTop()
}

func sheetMarkdown(inv *actor.Investigator) string {
	if inv == nil {
		return "*No investigator selected. Use /add to create one.*\n"
	}
	return sheet.Markdown(inv)
}

func (m ConsoleUI) updateNoticeModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.events.notices = m.events.notices[1:]
			if m.events.selectionChanged {
				m.events.selectionChanged = false
				m.refreshSheet()
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.input.Focus()
				return m, textinput.Blink
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) View() string {
	if len(m.events.notices) > 0 {
		return m.renderNoticeModal(m.events.notices[0])
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	sheetWidth := m.sheetWidth()
	sheetPanel := sheetPanelStyle.Width(sheetWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.sheetViewport.View(),
			separatorStyle.Render(strings.Repeat("─", max(1, sheetWidth-4))),
			m.renderStatus(sheetWidth-4),
			m.input.View(),
		),
	)

	rosterPanel := rosterPanelStyle.Width(m.rosterWidth()).Height(m.height - 1).Render(
		m.renderRoster(m.rosterWidth() - 2),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sheetPanel, rosterPanel)
}

func (m ConsoleUI) renderStatus(width int) string {
	line := truncate.StringWithTail(m.status, uint(max(1, width)), "…")
	if m.statusIsError {
		return errorStyle.Render(line)
	}
	return statusStyle.Render(line)
}

func (m ConsoleUI) renderRoster(width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("INVESTIGATORS") + "\n")
	if m.keeper.SessionActive() {
		content.WriteString(warningStyle.Render("Session in progress") + "\n")
	} else {
		content.WriteString(promptStyle.Render("No session") + "\n")
	}
	content.WriteString("\n")

	if m.roster.Len() == 0 {
		content.WriteString(promptStyle.Render("None yet. /add"))
		return content.String()
	}

	selected := m.roster.SelectedIndex()
	for i, inv := range m.roster.Investigators() {
		label := fmt.Sprintf("%d. %s", i+1, sheet.Summary(inv))
		label = truncate.StringWithTail(label, uint(max(4, width)), "…")
		switch {
		case i == selected:
			label = selectedStyle.Render(label)
		case inv.Statuses.Dead:
			label = deadStyle.Render(label)
		}
		content.WriteString(label + "\n")
	}
	return content.String()
}

func (m ConsoleUI) renderNoticeModal(n notice) string {
	if m.width == 0 || m.height == 0 {
		return n.title + "\n\n" + n.message
	}

	title := modalTitleStyle.Render(n.title)
	switch n.severity {
	case rules.SeverityCritical:
		title = modalTitleStyle.Foreground(lipgloss.Color("196")).Render(n.title)
	case rules.SeverityWarning:
		title = modalTitleStyle.Foreground(lipgloss.Color("214")).Render(n.title)
	}

	var content strings.Builder
	content.WriteString(title)
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(n.message, modalWidth-6))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Enter to continue"))

	modal := modalStyle.Width(modalWidth).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Investigators are saved when you quit.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to save and quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

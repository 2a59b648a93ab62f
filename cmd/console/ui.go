package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mgiraldez/mansion-engine/internal/config"
	"github.com/mgiraldez/mansion-engine/internal/engine"
	"github.com/mgiraldez/mansion-engine/pkg/state"
)

const (
	PlaceHolderText = "Type a command (help for a list)..."
	DefaultSaveSlot = "slot1"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *config.Config
	engine       *engine.Engine
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error

	lines  []string
	status engine.Status

	// Name prompt state (game start and high score entry)
	showNameModal bool
	nameInput     string

	// Quit confirmation state
	showQuitModal bool

	// End-of-game state
	showEndModal   bool
	result         state.Result
	scoreSubmitted bool
}

type engineMessageMsg struct {
	text string
}

type statusMsg struct {
	status engine.Status
}

type gameEndedMsg struct {
	result state.Result
}

type actionResultMsg struct {
	text string
	err  error
}

type highScoresMsg struct {
	scores []*state.HighScore
	err    error
}

type scoreSubmittedMsg struct {
	err error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	dangerStyle = lipgloss.NewStyle().
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
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *config.Config, eng *engine.Engine) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:        cfg,
		engine:        eng,
		textarea:      ta,
		chatViewport:  chatVp,
		metaViewport:  metaVp,
		ready:         false,
		showNameModal: true,
	}
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("MANSION") + "\n\n")

	st := m.status
	content.WriteString(fmt.Sprintf("Health:  %d\n", st.Health))
	content.WriteString(fmt.Sprintf("Sanity:  %d\n", st.Sanity))
	content.WriteString(fmt.Sprintf("Battery: %d%%\n", st.Battery))
	if st.FlashlightOn {
		content.WriteString("Flashlight: ON\n")
	} else {
		content.WriteString("Flashlight: off\n")
	}
	content.WriteString("\n")

	content.WriteString("Location:\n")
	content.WriteString(st.RoomName + "\n\n")

	content.WriteString("Time played:\n")
	content.WriteString(state.FormatDuration(st.Elapsed) + "\n\n")

	content.WriteString("Difficulty:\n")
	content.WriteString(string(st.Difficulty) + "\n\n")

	if st.Paused {
		content.WriteString(dangerStyle.Render("PAUSED") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• go <dir>\n")
	content.WriteString("• take <item>\n")
	content.WriteString("• use <item>\n")
	content.WriteString("• examine [item]\n")
	content.WriteString("• inventory\n")
	content.WriteString("• save / load\n")
	content.WriteString("• pause / resume\n")
	content.WriteString("• scores\n")
	content.WriteString("• quit\n")

	return content.String()
}

// writeChatContent reformats the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("THE MANSION") + "\n\n")
	content.WriteString("A haunted house you must escape before it claims you.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, line := range m.lines {
		content.WriteString(wordwrap.String(line, chatWidth) + "\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.writeChatContent()
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Async engine messages are handled in every mode.
	switch msg := msg.(type) {
	case engineMessageMsg:
		m.appendLine(narratorStyle.Render(msg.text))
		return m, nil

	case statusMsg:
		m.status = msg.status
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case gameEndedMsg:
		m.result = msg.result
		m.status = m.engine.Status()
		m.showEndModal = true
		m.nameInput = ""
		m.scoreSubmitted = false
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case highScoresMsg:
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Could not load high scores: " + msg.err.Error()))
		} else {
			m.appendLine(formatHighScores(msg.scores))
		}
		return m, nil

	case scoreSubmittedMsg:
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Could not submit score: " + msg.err.Error()))
		}
		return m, nil

	case actionResultMsg:
		if msg.text != "" {
			m.appendLine(narratorStyle.Render(msg.text))
		} else if msg.err != nil {
			m.appendLine(errorStyle.Render(msg.err.Error()))
		}
		m.status = m.engine.Status()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	if m.showNameModal {
		return m.updateNameModal(msg)
	}
	if m.showEndModal {
		return m.updateEndModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.appendLine(userStyle.Render("> " + input))
			return m.handleCommand(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
	m.ready = true
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))

	switch verb {
	case "go", "move", "walk":
		return m.doAction(func() (string, error) { return m.engine.Move(rest) })
	case "north", "south", "east", "west", "up", "down", "n", "s", "e", "w":
		return m.doAction(func() (string, error) { return m.engine.Move(expandDirection(verb)) })
	case "take", "get", "grab":
		return m.doAction(func() (string, error) { return m.engine.Take(rest) })
	case "use":
		return m.doAction(func() (string, error) { return m.engine.Use(rest) })
	case "examine", "look", "x":
		return m.doAction(func() (string, error) { return m.engine.Examine(rest) })
	case "inventory", "inv", "i":
		return m.doAction(func() (string, error) { return m.engine.ListInventory() })

	case "pause":
		if err := m.engine.Pause(); err != nil {
			m.appendLine(errorStyle.Render(err.Error()))
		} else {
			m.appendLine(promptStyle.Render("Game paused."))
		}
		m.status = m.engine.Status()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case "resume":
		if err := m.engine.Resume(); err != nil {
			m.appendLine(errorStyle.Render(err.Error()))
		} else {
			m.appendLine(promptStyle.Render("Game resumed."))
		}
		m.status = m.engine.Status()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil

	case "save":
		slot := DefaultSaveSlot
		if rest != "" {
			slot = rest
		}
		return m, m.saveGame(slot)

	case "load":
		slot := DefaultSaveSlot
		if rest != "" {
			slot = rest
		}
		return m, m.loadGame(slot)

	case "scores":
		return m, m.fetchHighScores()

	case "saves":
		return m, m.fetchSaves()

	case "delete":
		if rest == "" {
			m.appendLine(errorStyle.Render("Usage: delete <slot>"))
			return m, nil
		}
		return m, m.deleteSave(rest)

	case "copy":
		if err := clipboard.WriteAll(strings.Join(m.engine.History(), "\n\n")); err != nil {
			m.appendLine(errorStyle.Render("Could not copy to clipboard: " + err.Error()))
		} else {
			m.appendLine(promptStyle.Render("Recent narration copied to clipboard."))
		}
		return m, nil

	case "quit", "exit":
		m.showQuitModal = true
		return m, nil

	case "help":
		m.appendLine(helpText())
		return m, nil
	}

	m.appendLine(errorStyle.Render("Unknown command. Type 'help' for a list."))
	return m, nil
}

func (m ConsoleUI) doAction(action func() (string, error)) (tea.Model, tea.Cmd) {
	msg, err := action()
	if msg != "" {
		m.appendLine(narratorStyle.Render(msg))
	} else if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
	}
	m.status = m.engine.Status()
	m.metaViewport.SetContent(m.writeMetadata())
	return m, nil
}

func (m ConsoleUI) saveGame(slot string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.engine.Save(ctx, slot); err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{text: "Game saved to " + slot + "."}
	}
}

func (m ConsoleUI) loadGame(slot string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.engine.Load(ctx, slot); err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{}
	}
}

func (m ConsoleUI) fetchHighScores() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scores, err := m.engine.HighScores(ctx)
		return highScoresMsg{scores: scores, err: err}
	}
}

func (m ConsoleUI) fetchSaves() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		records, err := m.engine.SavedGames(ctx)
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{text: formatSaves(records)}
	}
}

func (m ConsoleUI) deleteSave(slot string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		deleted, err := m.engine.DeleteSave(ctx, slot)
		if err != nil {
			return actionResultMsg{err: err}
		}
		if !deleted {
			return actionResultMsg{text: "Slot " + slot + " is already empty."}
		}
		return actionResultMsg{text: "Deleted save in " + slot + "."}
	}
}

func (m ConsoleUI) submitScore(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return scoreSubmittedMsg{err: m.engine.SubmitHighScore(ctx, name)}
	}
}

func (m ConsoleUI) updateNameModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			name := strings.TrimSpace(m.nameInput)
			if name == "" {
				name = "Stranger"
			}
			m.showNameModal = false
			m.engine.NewGame(name)
			m.status = m.engine.Status()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			return m, textarea.Blink
		case tea.KeyBackspace:
			if len(m.nameInput) > 0 {
				m.nameInput = m.nameInput[:len(m.nameInput)-1]
			}
		case tea.KeyRunes, tea.KeySpace:
			if len(m.nameInput) < 24 {
				m.nameInput += string(msg.Runes)
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) updateEndModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.scoreSubmitted {
				return m, tea.Quit
			}
			name := strings.TrimSpace(m.nameInput)
			if name == "" {
				name = "Stranger"
			}
			m.scoreSubmitted = true
			return m, m.submitScore(name)
		case tea.KeyBackspace:
			if len(m.nameInput) > 0 {
				m.nameInput = m.nameInput[:len(m.nameInput)-1]
			}
		case tea.KeyRunes, tea.KeySpace:
			if !m.scoreSubmitted && len(m.nameInput) < 24 {
				m.nameInput += string(msg.Runes)
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) renderNameModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("THE MANSION"))
	content.WriteString("\n\n")
	content.WriteString("What is your name, stranger?")
	content.WriteString("\n\n")
	content.WriteString(userStyle.Render("> " + m.nameInput + "_"))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Enter to begin, Ctrl+C to leave while you still can"))

	modal := modalStyle.Width(56).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderEndModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.result.Victory {
		content.WriteString(modalTitleStyle.Render(m.result.Headline))
	} else {
		content.WriteString(modalTitleStyle.Render(errorStyle.Render(m.result.Headline)))
	}
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(m.result.Summary, 52))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Final score: %d", m.result.Score))
	content.WriteString("\n\n")

	if m.scoreSubmitted {
		content.WriteString(promptStyle.Render("Score submitted. Press Enter to exit."))
	} else {
		content.WriteString("Name for the high score table:")
		content.WriteString("\n")
		content.WriteString(userStyle.Render("> " + m.nameInput + "_"))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Enter to submit, Esc to exit without submitting"))
	}

	modal := modalStyle.Width(58).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("The mansion will be waiting for you.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep exploring"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNameModal {
		return m.renderNameModal()
	}
	if m.showEndModal {
		return m.renderEndModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

func expandDirection(verb string) string {
	switch verb {
	case "n":
		return "north"
	case "s":
		return "south"
	case "e":
		return "east"
	case "w":
		return "west"
	}
	return verb
}

func formatHighScores(scores []*state.HighScore) string {
	if len(scores) == 0 {
		return "No high scores yet. The mansion has kept them all."
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("HIGH SCORES") + "\n")
	for i, hs := range scores {
		sb.WriteString(fmt.Sprintf("%2d. %-20s %6d  (%s, %s)\n",
			i+1, hs.Name, hs.Score, hs.Difficulty,
			state.FormatDuration(time.Duration(hs.Time*float64(time.Second)))))
	}
	return sb.String()
}

func formatSaves(records []*state.SaveRecord) string {
	if len(records) == 0 {
		return "No saved games."
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SAVED GAMES") + "\n")
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("• %-10s %s - %s (%s)\n",
			rec.Slot, rec.Name, rec.DateString,
			state.FormatDuration(time.Duration(rec.ElapsedTime*float64(time.Second)))))
	}
	return sb.String()
}

func helpText() string {
	return `Commands:
• go <direction> - Move (north/south/east/west/up/down; shortcuts n/s/e/w)
• take <item> - Pick up an object in the room
• use <item> - Use an object you are carrying
• examine [item] - Look at the room or an object
• inventory - List what you are carrying
• save [slot] / load [slot] - Save or restore your progress
• saves / delete <slot> - List or delete saved games
• pause / resume - Freeze or unfreeze the clock
• scores - Show the high score table
• copy - Copy the recent narration to the clipboard
• quit - Leave the mansion (it remembers)`
}

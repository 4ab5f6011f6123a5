package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aimarket/haggle-engine/pkg/chat"
)

const (
	VendorName      = "Vendor"
	PlaceHolderText = "Make an offer..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *apiClient
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Level selection state
	showLevelModal bool
	levels         []LevelSummary
	selectedLevel  int
	loadingLevels  bool
	level          *LevelSummary

	// Session state
	history   *History
	completed bool
	stars     *int
	points    int

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type levelsLoadedMsg struct {
	levels []LevelSummary
	err    error
}

type historyLoadedMsg struct {
	history *History
	err     error
}

type sendResultMsg struct {
	playerText string
	response   *chat.SendMessageResponse
	err        error
}

type progressTickMsg struct{}

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

	vendorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

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

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalLockedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *apiClient) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:         cfg,
		client:         client,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		ready:          false,
		showLevelModal: true,
		loadingLevels:  true,
		selectedLevel:  0,
	}
}

// wrap reflows text to the given width.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// writeChatContent builds the chat content from the session history.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("HAGGLE") + "\n\n")
	if m.level != nil {
		content.WriteString(wrap(m.level.ProductDescription, chatWidth) + "\n")
		content.WriteString(fmt.Sprintf("Asking price: $%.2f\n\n", m.level.InitialPrice))
	}
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 10))) + "\n\n")

	if m.history != nil {
		for _, turn := range m.history.Turns {
			switch turn.Speaker {
			case "vendor":
				content.WriteString(vendorStyle.Render(VendorName+": ") + wrap(turn.Text, chatWidth-8) + "\n\n")
			case "player":
				content.WriteString(userStyle.Render("You: ") + wrap(turn.Text, chatWidth-6) + "\n\n")
			}
		}
	}

	if m.completed {
		content.WriteString(starStyle.Render(renderStars(m.stars)) + "\n")
		content.WriteString(fmt.Sprintf("Deal closed. You earned %d points.\n", m.points))
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func renderStars(stars *int) string {
	if stars == nil {
		return ""
	}
	return strings.Repeat("★", *stars) + strings.Repeat("☆", 3-*stars)
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("NEGOTIATION") + "\n\n")

	if m.level != nil {
		content.WriteString("Level:\n")
		content.WriteString(m.level.Name + "\n\n")

		content.WriteString("Vendor:\n")
		content.WriteString(wrap(m.level.VendorPersonality, m.metaViewport.Width-2) + "\n\n")
	}

	if m.history != nil {
		content.WriteString("Messages:\n")
		content.WriteString(fmt.Sprintf("%d total\n\n", len(m.history.Turns)))
	}

	if m.completed {
		content.WriteString("Result:\n")
		content.WriteString(starStyle.Render(renderStars(m.stars)) + "\n")
		content.WriteString(fmt.Sprintf("%d points\n\n", m.points))
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+L: Levels\n")

	m.metaViewport.SetContent(content.String())
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadLevels()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showLevelModal {
		return m.updateLevelModal(msg)
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
		m.writeMetadata()
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlL:
			m.showLevelModal = true
			m.loadingLevels = true
			return m, m.loadLevels()
		case tea.KeyEnter:
			if m.loading || m.completed {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			// Show the player's line right away.
			m.history.Turns = append(m.history.Turns, HistoryTurn{Speaker: "player", Text: input})
			m.writeChatContent()

			return m, tea.Batch(m.send(input), progressTick())
		}

	case sendResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
			m.chatViewport.GotoBottom()
			return m, nil
		}

		m.history.Turns = append(m.history.Turns, HistoryTurn{Speaker: "vendor", Text: msg.response.Message})
		if msg.response.Accepted {
			m.completed = true
			m.stars = msg.response.Stars
			if msg.response.Points != nil {
				m.points = *msg.response.Points
			}
		}
		m.writeChatContent()
		m.writeMetadata()
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.history = &History{}
		} else {
			m.history = msg.history
			m.completed = msg.history.Completed
			m.stars = msg.history.Stars
			m.points = msg.history.Points
		}
		m.writeChatContent()
		m.writeMetadata()
		return m, textarea.Blink

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
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
}

func (m ConsoleUI) loadLevels() tea.Cmd {
	return func() tea.Msg {
		levels, err := m.client.listLevels()
		return levelsLoadedMsg{levels, err}
	}
}

func (m ConsoleUI) loadHistory(levelID string) tea.Cmd {
	return func() tea.Msg {
		h, err := m.client.getHistory(levelID)
		return historyLoadedMsg{h, err}
	}
}

func (m ConsoleUI) send(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.sendMessage(m.level.ID, message)
		return sendResultMsg{message, resp, err}
	}
}

func (m ConsoleUI) updateLevelModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case levelsLoadedMsg:
		m.loadingLevels = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.levels = msg.levels
		}

	case tea.KeyMsg:
		if m.loadingLevels {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedLevel > 0 {
				m.selectedLevel--
			}
		case tea.KeyDown:
			if m.selectedLevel < len(m.levels)-1 {
				m.selectedLevel++
			}
		case tea.KeyEnter:
			if len(m.levels) == 0 {
				return m, nil
			}
			selected := m.levels[m.selectedLevel]
			if !selected.Unlocked {
				return m, nil
			}
			m.level = &selected
			m.showLevelModal = false
			m.err = nil
			if m.width > 0 && m.height > 0 {
				m.resize()
				m.ready = true
			}
			m.textarea.Focus()
			return m, m.loadHistory(selected.ID)
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
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showLevelModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Market?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved. Come back any time.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep haggling"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderLevelModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingLevels {
		content.WriteString(modalTitleStyle.Render("Loading Levels..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching the market stalls..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load levels: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		content.WriteString(modalTitleStyle.Render("Pick a Negotiation"))
		content.WriteString("\n\n")

		for i, l := range m.levels {
			label := fmt.Sprintf("%s ($%.2f)", l.Name, l.InitialPrice)
			if l.Completed {
				label += " " + renderStars(l.Stars)
			}
			if !l.Unlocked {
				label += fmt.Sprintf(" — locked, needs %d points", l.RequiredPoints)
			}

			switch {
			case i == m.selectedLevel:
				content.WriteString(modalSelectedItemStyle.Render("▶ " + label))
			case !l.Unlocked:
				content.WriteString(modalLockedItemStyle.Render("  " + label))
			default:
				content.WriteString(modalItemStyle.Render("  " + label))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(64).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showLevelModal {
		return m.renderLevelModal()
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
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 10))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/docent-ai/docent/internal/adapters/driving/tui/keymap"
	"github.com/docent-ai/docent/internal/adapters/driving/tui/messages"
	"github.com/docent-ai/docent/internal/adapters/driving/tui/styles"
)

// speaker identifies who produced a transcript entry.
type speaker int

const (
	speakerUser speaker = iota
	speakerAssistant
)

// turn is a single rendered entry in the conversation transcript.
type turn struct {
	speaker speaker
	text    string
}

// App is the chat TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// input is the query entry field.
	input textinput.Model

	// transcriptView scrolls the conversation transcript.
	transcriptView viewport.Model

	// spinner indicates an in-flight agent turn.
	spinner spinner.Model

	// sessionID keys this conversation's memory.
	sessionID string

	// transcript holds the turns shown on screen.
	transcript []turn

	// waiting is true while an agent turn is in flight.
	waiting bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its dimensions.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask about your documents..."
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 70

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         keymap.DefaultKeyMap(),
		input:          ti,
		transcriptView: viewport.New(80, 18),
		spinner:        sp,
		sessionID:      uuid.NewString(),
		width:          80,
		height:         24,
	}, nil
}

// WithContext sets the context used for agent calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// SessionID returns the current conversation session id.
func (a *App) SessionID() string {
	return a.sessionID
}

// Waiting reports whether an agent turn is in flight.
func (a *App) Waiting() bool {
	return a.waiting
}

// Init initialises the app.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.transcriptView.Width = msg.Width
		a.transcriptView.Height = max(msg.Height-6, 3)
		a.input.Width = max(msg.Width-6, 20)
		a.ready = true
		a.refreshTranscript()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ChatCompleted:
		// Stale answers from an abandoned session are dropped.
		if msg.SessionID != a.sessionID {
			return a, nil
		}
		a.waiting = false
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.err = nil
			a.transcript = append(a.transcript, turn{speaker: speakerAssistant, text: msg.Answer})
		}
		a.refreshTranscript()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var vpCmd tea.Cmd
	a.transcriptView, vpCmd = a.transcriptView.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.NewSession):
		a.sessionID = uuid.NewString()
		a.transcript = nil
		a.err = nil
		a.waiting = false
		a.input.SetValue("")
		a.refreshTranscript()
		return a, func() tea.Msg {
			return messages.SessionStarted{SessionID: a.sessionID}
		}

	case key.Matches(msg, a.keymap.Submit):
		if a.waiting {
			return a, nil
		}
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			return a, nil
		}
		a.transcript = append(a.transcript, turn{speaker: speakerUser, text: query})
		a.input.SetValue("")
		a.err = nil
		a.waiting = true
		a.refreshTranscript()
		return a, tea.Batch(a.ask(query), a.spinner.Tick)

	case key.Matches(msg, a.keymap.ScrollUp), key.Matches(msg, a.keymap.ScrollDown):
		// The viewport's own keymap covers these bindings.
		var cmd tea.Cmd
		a.transcriptView, cmd = a.transcriptView.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// ask returns a command that runs one agent turn.
func (a *App) ask(query string) tea.Cmd {
	ctx := a.ctx
	chat := a.ports.Chat
	sessionID := a.sessionID
	return func() tea.Msg {
		answer, err := chat.Chat(ctx, sessionID, query)
		return messages.ChatCompleted{SessionID: sessionID, Answer: answer, Err: err}
	}
}

// refreshTranscript re-renders the transcript into the viewport and
// keeps it scrolled to the latest turn.
func (a *App) refreshTranscript() {
	a.transcriptView.SetContent(a.renderTranscript())
	a.transcriptView.GotoBottom()
}

// renderTranscript renders all transcript turns.
func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return a.styles.Muted.Render("Upload documents, then ask questions or book an interview.")
	}

	var b strings.Builder
	for i, t := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch t.speaker {
		case speakerUser:
			b.WriteString(a.styles.UserLabel.Render("You"))
		case speakerAssistant:
			b.WriteString(a.styles.AssistantLabel.Render("Docent"))
		}
		b.WriteString("\n")
		b.WriteString(a.styles.Message.Render(t.text))
	}
	return b.String()
}

// View renders the app.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Docent"))
	b.WriteString("  ")
	b.WriteString(a.styles.Muted.Render("session " + shortID(a.sessionID)))
	b.WriteString("\n\n")

	b.WriteString(a.transcriptView.View())
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.ErrorText.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}
	if a.waiting {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" thinking..."))
	} else {
		b.WriteString(a.styles.InputField.Render(a.input.View()))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("enter send · ctrl+n new session · esc quit"))

	return b.String()
}

// shortID abbreviates a session id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the TUI program and blocks until it exits.
func Run(ctx context.Context, ports *Ports) error {
	app, err := NewApp(ports)
	if err != nil {
		return err
	}
	app = app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

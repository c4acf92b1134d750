package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	chatDefaultWidth  = 80
	chatDefaultHeight = 24
	// chatChromeHeight is the header, prompt and help lines around the
	// transcript.
	chatChromeHeight = 4
)

type chatKeys struct {
	Send key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k chatKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Up, k.Down, k.Quit}
}

func (k chatKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultChatKeys() chatKeys {
	return chatKeys{
		Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Up:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		Down: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// chatModel is an interactive conversation with the assistant about one
// contact. Lines starting with "/" are chat commands; everything else is
// sent to the assistant.
type chatModel struct {
	ctx    context.Context
	app    *App
	person *domain.Person

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     chatKeys
	md       *formatter.Markdown

	transcript []string
	width      int
}

func newChatModel(ctx context.Context, app *App, p *domain.Person) *chatModel {
	ti := textinput.New()
	ti.Placeholder = `try "summarize our last meeting" or /help`
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Focus()

	m := &chatModel{
		ctx:      ctx,
		app:      app,
		person:   p,
		input:    ti,
		viewport: viewport.New(chatDefaultWidth, chatDefaultHeight-chatChromeHeight),
		help:     help.New(),
		keys:     defaultChatKeys(),
		width:    chatDefaultWidth,
	}
	m.md = formatter.NewMarkdown(m.width-2, app.Plain)
	m.appendLine(formatter.Dim(fmt.Sprintf("Chatting about %s. Type /help for commands.", p.Name)))
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chatChromeHeight, 1)
		m.input.Width = max(msg.Width-len(m.promptLabel())-2, 10)
		m.md = formatter.NewMarkdown(msg.Width-2, m.app.Plain)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Send):
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			return m, m.handleInput(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("rapport") + formatter.Dim(" · ") + formatter.Bold(m.person.Name))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(formatter.StylePurple.Render(m.promptLabel()) + formatter.Dim("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *chatModel) promptLabel() string {
	return strings.ToLower(m.person.FirstName())
}

func (m *chatModel) handleInput(line string) tea.Cmd {
	if strings.HasPrefix(line, "/") {
		return m.handleCommand(line)
	}

	m.appendLine(formatter.Dim("You: ") + line)
	resp, err := m.app.Assistant.Process(m.ctx, m.person.ID, line)
	if err != nil {
		m.appendLine(formatter.StyleRed.Render("Error: " + err.Error()))
		return nil
	}
	m.appendLine(formatter.FormatResponse(resp, m.md))
	m.reload()
	return nil
}

func (m *chatModel) handleCommand(line string) tea.Cmd {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return tea.Quit
	case "help":
		m.appendLine(strings.Join([]string{
			formatter.Bold("Chat commands"),
			"  /insight        relationship overview",
			"  /show           contact details",
			"  /switch <name>  talk about someone else",
			"  /clear          clear the transcript",
			"  /quit           leave the chat",
		}, "\n"))
	case "insight":
		resp, err := m.app.Assistant.Insight(m.ctx, m.person.ID)
		if err != nil {
			m.appendLine(formatter.StyleRed.Render("Error: " + err.Error()))
			return nil
		}
		m.appendLine(formatter.FormatResponse(resp, m.md))
	case "show":
		m.reload()
		m.appendLine(strings.TrimRight(formatter.FormatContactDetail(m.person, m.app.now()), "\n"))
	case "switch":
		p, err := resolvePerson(m.ctx, m.app, arg)
		if err != nil {
			m.appendLine(formatter.StyleRed.Render("Error: " + err.Error()))
			return nil
		}
		m.person = p
		m.appendLine(formatter.Dim("Now chatting about " + p.Name + "."))
	case "clear":
		m.transcript = nil
		m.refresh()
	default:
		m.appendLine(formatter.StyleYellow.Render(fmt.Sprintf("Unknown command /%s. Type /help.", name)))
	}
	return nil
}

// reload refreshes the contact after the assistant may have changed it.
func (m *chatModel) reload() {
	if p, err := m.app.Contacts.Get(m.ctx, m.person.ID); err == nil {
		m.person = p
	}
}

func (m *chatModel) appendLine(s string) {
	m.transcript = append(m.transcript, s)
	m.refresh()
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

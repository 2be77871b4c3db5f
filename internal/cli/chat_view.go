package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var chatKeys = struct {
	Send key.Binding
	Quit key.Binding
}{
	Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

type chatReplyMsg struct {
	msg *domain.ChatMessage
	err error
}

// chatModel is the interactive coach conversation.
type chatModel struct {
	ctx       context.Context
	app       *App
	sessionID string
	input     textinput.Model

	lines   []string
	sending bool
}

func newChatModel(ctx context.Context, app *App, sessionID string, history []*domain.ChatMessage) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask your coach anything..."
	ti.CharLimit = 1000

	m := &chatModel{ctx: ctx, app: app, sessionID: sessionID, input: ti}
	for _, turn := range domain.Transcript(history) {
		m.lines = append(m.lines, strings.TrimRight(formatter.FormatTurn(turn), "\n"))
	}
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, chatKeys.Send):
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.input.Reset()
			switch strings.ToLower(text) {
			case "/quit", "/exit", "/q":
				return m, tea.Quit
			}
			m.lines = append(m.lines, strings.TrimRight(formatter.FormatTurn(domain.ChatTurn{Role: domain.RoleUser, Content: text}), "\n"))
			m.sending = true
			return m, m.send(text)
		}

	case chatReplyMsg:
		m.sending = false
		if msg.err != nil {
			m.lines = append(m.lines, formatter.StyleRed.Render("Coach unavailable: ")+msg.err.Error())
			return m, nil
		}
		m.lines = append(m.lines, strings.TrimRight(formatter.FormatTurn(domain.ChatTurn{Role: domain.RoleAssistant, Content: msg.msg.Response}), "\n"))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.app.Chat.Send(m.ctx, m.app.User, text)
		return chatReplyMsg{msg: reply, err: err}
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Coach"))
	b.WriteString("\n")
	b.WriteString(formatter.Dim("session " + m.sessionID))
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(formatter.Dim("No messages yet. Say hi to your coach!"))
		b.WriteString("\n")
	}
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.sending {
		b.WriteString(formatter.Dim("Coach is typing..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.StylePurple.Render("you") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim(helpLine(chatKeys.Send, chatKeys.Quit)))
	return b.String()
}

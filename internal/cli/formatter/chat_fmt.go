package formatter

import (
	"strings"

	"github.com/alexanderramin/repcoach/internal/domain"
)

const (
	youLabel   = "You"
	coachLabel = "Coach"
)

// FormatTranscript renders stored exchanges oldest first.
func FormatTranscript(msgs []*domain.ChatMessage) string {
	if len(msgs) == 0 {
		return Dim("No messages yet. Say hi to your coach!") + "\n"
	}
	var b strings.Builder
	for _, turn := range domain.Transcript(msgs) {
		b.WriteString(FormatTurn(turn))
	}
	return b.String()
}

// FormatTurn renders one transcript line.
func FormatTurn(turn domain.ChatTurn) string {
	if turn.Role == domain.RoleUser {
		return StyleBlue.Render(youLabel+":") + " " + turn.Content + "\n"
	}
	return StyleGreen.Render(coachLabel+":") + " " + turn.Content + "\n"
}

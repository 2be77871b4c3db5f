package domain

import "time"

// ChatMessage is one exchange with the coach: the user's message and the reply.
type ChatMessage struct {
	ID        string
	UserID    string
	SessionID string
	Message   string
	Response  string
	CreatedAt time.Time
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is a single line of a rendered transcript.
type ChatTurn struct {
	Role    ChatRole
	Content string
}

// Transcript flattens stored exchanges into alternating user/assistant turns.
func Transcript(msgs []*ChatMessage) []ChatTurn {
	turns := make([]ChatTurn, 0, len(msgs)*2)
	for _, m := range msgs {
		turns = append(turns,
			ChatTurn{Role: RoleUser, Content: m.Message},
			ChatTurn{Role: RoleAssistant, Content: m.Response},
		)
	}
	return turns
}

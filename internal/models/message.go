package models

// Role tags a chat turn. Anything other than RoleAssistant is sent upstream as a user turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one turn of the caller-held conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// IsAssistant reports whether the turn was produced by the model.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

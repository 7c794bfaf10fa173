package assistant

import (
	"strings"

	"ledes/internal/models"
)

// IntentDetector decides from the last user message whether the user wants to create
// an entity. It can be swapped for a classifier without touching the controller.
type IntentDetector func(lastUserMessage string) bool

// DetectCreateEntity is a substring heuristic: "create" together with "llc" or
// "entity". It does not understand negation, so "I don't want to create an entity"
// also matches.
func DetectCreateEntity(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "create") &&
		(strings.Contains(lower, "llc") || strings.Contains(lower, "entity"))
}

// lastUserMessage returns the content of the last turn not authored by the assistant.
func lastUserMessage(history []models.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].IsAssistant() {
			return history[i].Content, true
		}
	}
	return "", false
}

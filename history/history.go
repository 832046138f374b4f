package history

import "context"

// History records the turns of a Q&A session and retrieves context for the
// prompt's conversation-history section.
type History interface {
	Append(ctx context.Context, sessionId string, role string, text string) error
	Recent(ctx context.Context, sessionId string, limit int) ([]Turn, error)
	Search(ctx context.Context, query string, limit int) ([]Turn, error)
}

type Turn struct {
	Id        string `json:"id"`
	SessionId string `json:"session_id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
}

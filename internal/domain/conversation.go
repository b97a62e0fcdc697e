package domain

// Message represents one turn in a conversation (user or assistant).
// Messages are immutable once created; a transcript only grows, except
// for an explicit reset that reseeds it with a fresh greeting.
type Message struct {
	ID        MessageID
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// Prompt is the unit the gateway sends to the generative backend:
// a system instruction plus the user-facing content.
type Prompt struct {
	System string
	User   string
}

package model

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// DefaultThreadTitle is the placeholder title of a thread until a summary is generated.
const DefaultThreadTitle = "New Search"

// DefaultSourceTitle is used for citations that arrive without a title.
const DefaultSourceTitle = "Web Source"

// Source is a web citation attached to a model message.
type Source struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Favicon string `json:"favicon,omitempty"`
}

// Message is one turn in a thread. Timestamps are Unix milliseconds.
type Message struct {
	ID        string   `json:"id"`
	Role      Role     `json:"role"`
	Content   string   `json:"content"`
	Sources   []Source `json:"sources,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// Thread is one persisted conversation.
// The JSON layout matches the blob stored under the threads key.
type Thread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt int64     `json:"updatedAt"`
}

// Clone returns a deep copy of the thread.
func (t Thread) Clone() Thread {
	out := t
	out.Messages = make([]Message, len(t.Messages))
	for i, m := range t.Messages {
		out.Messages[i] = m
		if m.Sources != nil {
			out.Messages[i].Sources = append([]Source(nil), m.Sources...)
		}
	}
	return out
}

// Turn is a role-tagged piece of conversation history sent to the generation service.
type Turn struct {
	Role Role
	Text string
}

// StreamEventType enumerates the events emitted during a chat exchange.
type StreamEventType string

const (
	EventStart   StreamEventType = "start"
	EventChunk   StreamEventType = "chunk"
	EventSources StreamEventType = "sources"
	EventTitle   StreamEventType = "title"
	EventDone    StreamEventType = "done"
)

// StreamEvent is a single event in a streamed chat exchange.
type StreamEvent struct {
	Type          StreamEventType `json:"type"`
	ThreadID      string          `json:"thread_id"`
	MessageID     string          `json:"message_id,omitempty"`
	UserMessageID string          `json:"user_message_id,omitempty"`
	Content       string          `json:"content,omitempty"`
	Sources       []Source        `json:"sources,omitempty"`
	Title         string          `json:"title,omitempty"`
}

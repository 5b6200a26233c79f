package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the in-memory conversation history the
// client carries between requests. Nothing is persisted server side.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseSource tells the client which stage produced the answer.
type ResponseSource string

const (
	SourceSecurity ResponseSource = "security"
	SourceMess     ResponseSource = "mess"
	SourcePattern  ResponseSource = "pattern"
	SourceAPI      ResponseSource = "api"
	SourceFallback ResponseSource = "fallback"
)

// Action is an optional UI instruction attached to a response, e.g.
// opening the projects panel next to the chat widget.
type Action struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// AIResponse is the contract every query resolves to, whatever happened
// on the way.
type AIResponse struct {
	Text   string         `json:"text"`
	Action *Action        `json:"action,omitempty"`
	Source ResponseSource `json:"source"`
}

package entity

// ChatRole identifies who authored a transcript entry.
type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleBot  ChatRole = "bot"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ChatQuery is a natural-language question scoped to a period.
type ChatQuery struct {
	Query  string `json:"query"`
	Period Period `json:"period"`
}

// ChatReply is the advisory endpoint's answer.
type ChatReply struct {
	Response string `json:"response"`
}

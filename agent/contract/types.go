package contract

import "time"

// Broker is immutable reference data describing one human broker.
// Records are created at startup and never mutated afterwards.
type Broker struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Specialty   string  `json:"specialty"`
	Rating      float64 `json:"rating"`
	DealsClosed int     `json:"deals_closed"`
	AvatarURL   string  `json:"avatar_url,omitempty"`
}

type Urgency string

const (
	UrgencyHigh Urgency = "HIGH"
	UrgencyMed  Urgency = "MED"
	UrgencyLow  Urgency = "LOW"
)

// Lead is a prospective-client record derived from a chat interaction.
type Lead struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Budget      string  `json:"budget"`
	Preferences string  `json:"preferences"`
	Urgency     Urgency `json:"urgency"`
	MatchScore  int     `json:"match_score"`
}

type ProjectStatus string

const (
	ProjectAvailable ProjectStatus = "Available"
	ProjectPending   ProjectStatus = "Pending"
	ProjectDeveloped ProjectStatus = "Developed"
)

// Project describes a development plot submitted for advisory evaluation.
type Project struct {
	ID       string        `json:"id"`
	Location string        `json:"location"`
	Size     string        `json:"size"`
	Zoning   string        `json:"zoning"`
	Status   ProjectStatus `json:"status,omitempty"`
}

type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// Turn is one entry of a session's public conversation history.
// Turns are append-only and never mutated after creation.
type Turn struct {
	ID               string    `json:"id"`
	Role             Role      `json:"role"`
	Text             string    `json:"text"`
	CreatedAt        time.Time `json:"created_at"`
	Brokers          []Broker  `json:"brokers,omitempty"`
	IsRecommendation bool      `json:"is_recommendation,omitempty"`
}

// ToolRequest is a tool invocation emitted by the model. CallID correlates
// the request with its result inside one exchange.
type ToolRequest struct {
	CallID string         `json:"call_id"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ToolOutcome carries everything a dispatch produced: the result to feed
// back to the model, the typed broker matches, and the derived lead. The
// caller decides when the lead is committed; Dispatch itself does not
// mutate shared state.
type ToolOutcome struct {
	Result  ToolResult
	Brokers []Broker
	Lead    *Lead
}

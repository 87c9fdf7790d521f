package storage

import "context"

// Message senders and types as persisted inside a session chat.
const (
	SenderUser = "user"
	SenderBot  = "bot"

	TypeText          = "text"
	TypeSecondaryNote = "secondary-note"
)

// Message is one transcript entry of a report session. Date is the ISO
// timestamp of the report date the message was written under; Month is
// its derived "YYYY-MM" tag, used to scope which notes get bundled into
// the next generation request.
type Message struct {
	Sender string `json:"sender"`
	Type   string `json:"type,omitempty"`
	Text   string `json:"text,omitempty"`
	Date   string `json:"date,omitempty"`
	Month  string `json:"month,omitempty"`
}

// ReportSession is one candidate's accumulated report history entry. ID
// is the request id of the chat that created the entry; follow-up turns
// reference it as their parent report id.
type ReportSession struct {
	ID                   string    `json:"id"`
	Date                 string    `json:"date"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	CoachID              int       `json:"coachId"`
	CoachName            string    `json:"coachName"`
	ProgramName          string    `json:"programName"`
	ProgramType          string    `json:"programType"`
	ProgramDuration      string    `json:"programDuration"`
	ProgramActiveDate    string    `json:"programActiveDate"`
	ProgramCompletedDate string    `json:"programCompletedDate"`
	ReportDate           string    `json:"report_date"`
	Note                 string    `json:"note"`
	Report               string    `json:"report"`
	Chat                 []Message `json:"chat,omitempty"`
}

// HistoryStorage persists the ordered session list, most recent first.
// Writes replace the whole list; there is no partial update API.
type HistoryStorage interface {
	// SaveSessions stores the full session list, replacing the previous one
	SaveSessions(ctx context.Context, sessions []ReportSession) error

	// GetSessions retrieves the stored session list
	// An empty store yields an empty list, not an error
	GetSessions(ctx context.Context) ([]ReportSession, error)
}

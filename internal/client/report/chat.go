package report

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/primacrm/primacli/internal/client/storage"
)

// Greeting is the first bot message of every new chat.
const Greeting = "Hi there! Please select your details and enter your prompt to generate the report."

// Chat is the live transcript of one report session. The request id is
// generated once and reused for every turn; it doubles as the history
// key when the first turn creates a new session entry.
type Chat struct {
	RequestID   string
	CandidateID int
	Messages    []storage.Message
}

// NewChat starts a fresh transcript with a greeting and a new request id.
func NewChat() *Chat {
	return &Chat{
		RequestID:   "req_" + uuid.NewString(),
		CandidateID: rand.Intn(100000) + 1,
		Messages: []storage.Message{
			{Sender: storage.SenderBot, Type: storage.TypeText, Text: Greeting},
		},
	}
}

// ResumeSession loads a stored session back into the live transcript.
// Old entries persisted before month tags existed get theirs derived
// from the message date; entries without a usable chat are synthesized
// from the stored note and report.
func ResumeSession(chat *Chat, session storage.ReportSession) {
	msgs := session.Chat
	if len(msgs) <= 1 {
		msgs = []storage.Message{
			{Sender: storage.SenderUser, Type: storage.TypeText, Text: session.Note},
		}
		if session.Report != "" {
			msgs = append(msgs, storage.Message{
				Sender: storage.SenderBot,
				Type:   storage.TypeText,
				Text:   session.Report,
			})
		}
	}

	out := make([]storage.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Month == "" && m.Date != "" {
			m.Month = monthOf(m.Date)
		}
		out = append(out, m)
	}
	chat.Messages = out
}

// isoDate converts a YYYY-MM-DD report date into the ISO timestamp
// stored on transcript messages.
func isoDate(reportDate string) string {
	t, err := time.Parse("2006-01-02", reportDate)
	if err != nil {
		return reportDate
	}
	return t.UTC().Format(time.RFC3339)
}

// monthOf derives the YYYY-MM month tag from a date or timestamp string.
func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

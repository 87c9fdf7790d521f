// Package report holds the dashboard's business logic: submission
// validation, request payload assembly and reconciliation of generated
// reports into the live transcript and the persisted session history.
// It has no presentation concerns and is driven by whatever front-end
// owns the form state.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/catalog"
	"github.com/primacrm/primacli/internal/client/storage"
	pkgapi "github.com/primacrm/primacli/pkg/api"
)

var (
	// ErrGenerationInFlight rejects a submission while another one is
	// still running. Concurrent submissions are rejected, not queued;
	// this is the documented contract.
	ErrGenerationInFlight = errors.New("report generation already in progress")

	// ErrEmptyReport marks a well-formed response that carried no usable
	// report text. The transcript and history are still updated; the
	// caller shows a notice instead of failing.
	ErrEmptyReport = errors.New("report contained no usable content")

	// ErrSessionNotFound is returned for history operations on an
	// unknown session id.
	ErrSessionNotFound = errors.New("report session not found")
)

// reportAPI is the slice of the API client the controller needs.
type reportAPI interface {
	GenerateReport(ctx context.Context, token string, req pkgapi.GenerateReportRequest) (*pkgapi.GenerateReportResponse, error)
	ModifyReport(ctx context.Context, token string, req pkgapi.ModifyReportRequest) error
	FinalizeReport(ctx context.Context, token string, req pkgapi.FinalizeReportRequest) error
	BulkModifyReports(ctx context.Context, token string, req pkgapi.BulkModifyRequest) error
}

// authService wraps backend calls with the token lifecycle guard.
type authService interface {
	Do(ctx context.Context, fn func(ctx context.Context, token string) error) error
}

// Submission carries the form state of one report request.
type Submission struct {
	Prompt               string
	FirstName            string
	LastName             string
	Coach                catalog.Coach
	ProgramName          string
	ProgramType          string
	ProgramDuration      string
	ProgramActiveDate    string
	ProgramCompletedDate string
	ReportDate           string
}

// Result is the outcome of a successful (possibly empty) generation.
type Result struct {
	UserMessage storage.Message
	BotMessages []storage.Message
	Report      string
	ReportID    string
}

// Controller is the composition root of the dashboard: it validates the
// form, assembles the backend payload from current selections plus prior
// session context, invokes the authenticated call wrapper and folds the
// response into the transcript and the persisted history.
type Controller struct {
	auth       authService
	api        reportAPI
	history    storage.HistoryStorage
	selections storage.SelectionsStorage
	createdBy  int

	mu       sync.Mutex
	inFlight bool
}

// NewController creates a new dashboard controller. createdBy is the
// backend user id stamped on generated reports.
func NewController(
	auth authService,
	apiClient reportAPI,
	history storage.HistoryStorage,
	selections storage.SelectionsStorage,
	createdBy int,
) *Controller {
	return &Controller{
		auth:       auth,
		api:        apiClient,
		history:    history,
		selections: selections,
		createdBy:  createdBy,
	}
}

// AddNote appends a secondary note to the live transcript without
// triggering a generation. The note is bundled into the next request for
// the same report month.
func (c *Controller) AddNote(chat *Chat, text, reportDate string) (storage.Message, error) {
	if reportDate == "" {
		return storage.Message{}, errors.New("please select a report date first")
	}

	note := strings.TrimSpace(text)
	if len(note) < 5 {
		return storage.Message{}, errors.New("secondary note cannot be empty or too short")
	}

	msg := storage.Message{
		Sender: storage.SenderUser,
		Type:   storage.TypeSecondaryNote,
		Text:   note,
		Date:   isoDate(reportDate),
		Month:  monthOf(reportDate),
	}
	chat.Messages = append(chat.Messages, msg)
	return msg, nil
}

// Generate validates the submission, sends one generation request and
// reconciles the outcome.
//
// On success every non-empty returned segment becomes one bot message and
// the turn is folded into the session history (appending to the existing
// entry matching the candidate's first name, or creating a new one). A
// response without usable segments still updates transcript and history
// but returns ErrEmptyReport. A transport or backend failure appends a
// single bot-style error message and skips the history write.
// Cancellation through ctx appends nothing and writes nothing; the
// context error is returned as-is so the front-end can show a distinct
// "stopped" notice.
func (c *Controller) Generate(ctx context.Context, chat *Chat, sub Submission) (*Result, error) {
	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	note := strings.TrimSpace(sub.Prompt)
	month := monthOf(sub.ReportDate)

	sessions, err := c.history.GetSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// Notes are gathered from the transcript as it was before this turn,
	// then the new note is appended last
	notes := append(currentMonthNotes(chat.Messages, month), note)

	matching := matchingSessions(sessions, sub.FirstName)
	prevReports, prevIDs := previousReports(matching)
	var parentID *string
	if len(matching) > 0 {
		parentID = &matching[0].ID
	}

	userMsg := storage.Message{
		Sender: storage.SenderUser,
		Type:   storage.TypeText,
		Text:   note,
		Date:   isoDate(sub.ReportDate),
		Month:  month,
	}
	chat.Messages = append(chat.Messages, userMsg)

	req := pkgapi.GenerateReportRequest{
		RequestID: chat.RequestID,
		Candidate: pkgapi.Candidate{
			ID:        chat.CandidateID,
			FirstName: sub.FirstName,
			LastName:  sub.LastName,
		},
		Coach: pkgapi.Coach{
			ID:   sub.Coach.ID,
			Name: sub.Coach.Name,
		},
		Program: pkgapi.Program{
			ProgramName:          sub.ProgramName,
			ProgramType:          sub.ProgramType,
			ProgramDuration:      sub.ProgramDuration,
			InitialMeetingDate:   nil,
			ProgramActiveDate:    sub.ProgramActiveDate,
			ProgramCompletedDate: sub.ProgramCompletedDate,
		},
		Notes:             notes,
		PreviousReports:   prevReports,
		ParentReportID:    parentID,
		PreviousReportsID: prevIDs,
		OutputConfig:      pkgapi.OutputConfig{Type: "TEXT"},
		Status:            "completed",
		CreatedBy:         c.createdBy,
		ReportDate:        sub.ReportDate,
	}

	var resp *pkgapi.GenerateReportResponse
	err = c.auth.Do(ctx, func(ctx context.Context, token string) error {
		r, err := c.api.GenerateReport(ctx, token, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		// Cancellation and session teardown are not transcript material
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isAbort(err) {
			return nil, err
		}
		chat.Messages = append(chat.Messages, storage.Message{
			Sender: storage.SenderBot,
			Type:   storage.TypeText,
			Text:   "Failed to generate report: " + err.Error(),
		})
		return nil, err
	}

	var botMsgs []storage.Message
	var generated strings.Builder
	for _, seg := range resp.Segments() {
		text := seg.ReportSegment
		if strings.TrimSpace(text) == "" {
			continue
		}
		botMsgs = append(botMsgs, storage.Message{
			Sender: storage.SenderBot,
			Type:   storage.TypeText,
			Text:   text,
		})
		generated.WriteString(text)
		generated.WriteString("\n\n")
	}
	chat.Messages = append(chat.Messages, botMsgs...)

	report := strings.TrimSpace(generated.String())
	turn := append([]storage.Message{userMsg}, botMsgs...)
	updated := reconcile(sessions, chat, sub, note, report, turn)
	if err := c.history.SaveSessions(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	if err := c.saveSelections(ctx, sub); err != nil {
		slog.Warn("failed to save selections", "error", err)
	}

	res := &Result{
		UserMessage: userMsg,
		BotMessages: botMsgs,
		Report:      report,
		ReportID:    resp.ResolveReportID(),
	}
	if len(botMsgs) == 0 {
		return res, ErrEmptyReport
	}
	return res, nil
}

// Sessions returns the persisted session history, most recent first.
func (c *Controller) Sessions(ctx context.Context) ([]storage.ReportSession, error) {
	return c.history.GetSessions(ctx)
}

// DeleteSession removes one session from the history.
func (c *Controller) DeleteSession(ctx context.Context, id string) error {
	sessions, err := c.history.GetSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	kept := make([]storage.ReportSession, 0, len(sessions))
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sessions) {
		return ErrSessionNotFound
	}

	return c.history.SaveSessions(ctx, kept)
}

// Modify pushes edited report text to the backend and updates the local
// session copy.
func (c *Controller) Modify(ctx context.Context, sessionID, content string) error {
	sessions, err := c.history.GetSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	idx := -1
	for i, s := range sessions {
		if s.ID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSessionNotFound
	}

	err = c.auth.Do(ctx, func(ctx context.Context, token string) error {
		return c.api.ModifyReport(ctx, token, pkgapi.ModifyReportRequest{
			ReportID: sessionID,
			Content:  content,
		})
	})
	if err != nil {
		return err
	}

	sessions[idx].Report = content
	return c.history.SaveSessions(ctx, sessions)
}

// Finalize marks a generated report as final on the backend.
func (c *Controller) Finalize(ctx context.Context, sessionID string) error {
	sessions, err := c.history.GetSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	found := false
	for _, s := range sessions {
		if s.ID == sessionID {
			found = true
			break
		}
	}
	if !found {
		return ErrSessionNotFound
	}

	return c.auth.Do(ctx, func(ctx context.Context, token string) error {
		return c.api.FinalizeReport(ctx, token, pkgapi.FinalizeReportRequest{
			ReportID: sessionID,
		})
	})
}

// PushAll sends every stored report with content to the backend in one
// bulk call.
func (c *Controller) PushAll(ctx context.Context) (int, error) {
	sessions, err := c.history.GetSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load history: %w", err)
	}

	var req pkgapi.BulkModifyRequest
	for _, s := range sessions {
		if s.Report == "" {
			continue
		}
		req.Reports = append(req.Reports, pkgapi.ModifyReportRequest{
			ReportID: s.ID,
			Content:  s.Report,
		})
	}
	if len(req.Reports) == 0 {
		return 0, nil
	}

	err = c.auth.Do(ctx, func(ctx context.Context, token string) error {
		return c.api.BulkModifyReports(ctx, token, req)
	})
	if err != nil {
		return 0, err
	}
	return len(req.Reports), nil
}

// SavedSelections returns the last-used form selections, or nil when
// none were saved yet.
func (c *Controller) SavedSelections(ctx context.Context) (*storage.Selections, error) {
	sel, err := c.selections.GetSelections(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSelectionsNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sel, nil
}

func (c *Controller) saveSelections(ctx context.Context, sub Submission) error {
	return c.selections.SaveSelections(ctx, &storage.Selections{
		FirstName:            sub.FirstName,
		LastName:             sub.LastName,
		CoachID:              sub.Coach.ID,
		CoachName:            sub.Coach.Name,
		ProgramName:          sub.ProgramName,
		ProgramType:          sub.ProgramType,
		ProgramDuration:      sub.ProgramDuration,
		ProgramActiveDate:    sub.ProgramActiveDate,
		ProgramCompletedDate: sub.ProgramCompletedDate,
	})
}

// isAbort reports whether the wrapper already handled the failure, so no
// transcript error message should be added.
func isAbort(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, auth.ErrSessionExpired)
}

// currentMonthNotes collects the user-authored note texts of the given
// report month from the transcript, in order.
func currentMonthNotes(messages []storage.Message, month string) []string {
	var notes []string
	for _, msg := range messages {
		if msg.Sender != storage.SenderUser {
			continue
		}
		if msg.Type != storage.TypeText && msg.Type != storage.TypeSecondaryNote {
			continue
		}
		msgMonth := msg.Month
		if msgMonth == "" {
			msgMonth = monthOf(msg.Date)
		}
		if msgMonth != month {
			continue
		}
		if text := strings.TrimSpace(msg.Text); text != "" {
			notes = append(notes, text)
		}
	}
	return notes
}

// matchingSessions returns the stored sessions belonging to the given
// first name, preserving their most-recent-first order. The match is
// case-insensitive on the trimmed first name only; collisions between
// candidates sharing a first name are a known limitation of the backend
// contract.
func matchingSessions(sessions []storage.ReportSession, firstName string) []storage.ReportSession {
	want := strings.ToLower(strings.TrimSpace(firstName))
	var out []storage.ReportSession
	for _, s := range sessions {
		if strings.ToLower(strings.TrimSpace(s.FirstName)) == want {
			out = append(out, s)
		}
	}
	return out
}

// previousReports extracts every bot message text from the given
// sessions together with a synthesized "{sessionID}_msg_{index}" id.
func previousReports(sessions []storage.ReportSession) ([]string, []string) {
	var reports, ids []string
	for _, s := range sessions {
		for i, msg := range s.Chat {
			if msg.Sender != storage.SenderBot {
				continue
			}
			reports = append(reports, strings.TrimSpace(msg.Text))
			ids = append(ids, fmt.Sprintf("%s_msg_%d", s.ID, i))
		}
	}
	return reports, ids
}

// reconcile folds one finished turn into the session list: the entry
// matching the candidate's first name absorbs the turn and moves to the
// front, otherwise a new entry keyed by the chat request id is
// prepended.
func reconcile(
	sessions []storage.ReportSession,
	chat *Chat,
	sub Submission,
	note, generated string,
	turn []storage.Message,
) []storage.ReportSession {
	want := strings.ToLower(strings.TrimSpace(sub.FirstName))
	idx := -1
	for i, s := range sessions {
		if strings.ToLower(strings.TrimSpace(s.FirstName)) == want {
			idx = i
			break
		}
	}

	if idx >= 0 {
		item := sessions[idx]
		item.Chat = append(append([]storage.Message{}, item.Chat...), turn...)
		item.Report = strings.TrimSpace(item.Report + "\n\n" + generated)
		item.Date = sub.ReportDate
		item.Note = note

		out := make([]storage.ReportSession, 0, len(sessions))
		out = append(out, item)
		out = append(out, sessions[:idx]...)
		out = append(out, sessions[idx+1:]...)
		return out
	}

	entry := storage.ReportSession{
		ID:                   chat.RequestID,
		Date:                 sub.ReportDate,
		FirstName:            sub.FirstName,
		LastName:             sub.LastName,
		CoachID:              sub.Coach.ID,
		CoachName:            sub.Coach.Name,
		ProgramName:          sub.ProgramName,
		ProgramType:          sub.ProgramType,
		ProgramDuration:      sub.ProgramDuration,
		ProgramActiveDate:    sub.ProgramActiveDate,
		ProgramCompletedDate: sub.ProgramCompletedDate,
		ReportDate:           sub.ReportDate,
		Note:                 note,
		Report:               generated,
		Chat:                 turn,
	}
	return append([]storage.ReportSession{entry}, sessions...)
}

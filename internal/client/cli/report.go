package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/report"
	"github.com/primacrm/primacli/internal/client/storage"
)

// runReport drives the interactive dashboard: one submission form, then
// a prompt loop over a live chat transcript.
func (c *Cli) runReport(ctx context.Context) error {
	creds, err := c.auth.Credentials(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialsNotFound) {
			return fmt.Errorf("not authenticated. Please run 'primacli login' first")
		}
		return err
	}
	if auth.IsExpired(creds.RefreshTokenExpiry) {
		return fmt.Errorf("session expired. Please run 'primacli login' first")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.auth.NotifyLogout(func() {
		c.io.Println("")
		c.io.Println("Session expired. Please login again.")
		cancel()
	})
	go func() {
		_ = c.auth.Watch(runCtx, c.cfg.RefreshCheckInterval)
	}()

	sub, err := c.collectSubmission(ctx)
	if err != nil {
		return err
	}

	chat := report.NewChat()
	c.io.Println("")
	c.io.Println(report.Greeting)
	c.io.Println("Type a prompt to generate, /note <text>, /date <YYYY-MM-DD>, /history, /load <n>, /new or /quit.")

	for {
		if runCtx.Err() != nil {
			return nil
		}

		line, err := c.io.ReadInput("> ")
		if err != nil {
			// EOF ends the session like /quit
			return nil
		}

		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/new":
			chat = report.NewChat()
			if sub, err = c.collectSubmission(ctx); err != nil {
				return err
			}
			c.io.Println(report.Greeting)
		case line == "/history":
			if err := c.printHistory(ctx); err != nil {
				c.io.Printf("Error: %v\n", err)
			}
		case strings.HasPrefix(line, "/load "):
			c.loadSession(ctx, chat, &sub, strings.TrimSpace(strings.TrimPrefix(line, "/load ")))
		case strings.HasPrefix(line, "/date "):
			date := strings.TrimSpace(strings.TrimPrefix(line, "/date "))
			if !validDate(date) {
				c.io.Println("Invalid date, expected YYYY-MM-DD.")
				continue
			}
			sub.ReportDate = date
		case strings.HasPrefix(line, "/note "):
			note := strings.TrimPrefix(line, "/note ")
			if _, err := c.controller.AddNote(chat, note, sub.ReportDate); err != nil {
				c.io.Printf("Error: %v\n", err)
			} else {
				c.io.Println("Secondary note added.")
			}
		default:
			sub.Prompt = line
			c.generate(runCtx, chat, sub)
		}
	}
}

// generate runs one submission with Ctrl+C wired to cancellation.
func (c *Cli) generate(ctx context.Context, chat *report.Chat, sub report.Submission) {
	genCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	c.io.Println("Generating report... (Ctrl+C to stop)")

	res, err := c.controller.Generate(genCtx, chat, sub)
	switch {
	case err == nil:
		for _, msg := range res.BotMessages {
			c.io.Println("")
			c.io.Println(msg.Text)
		}
		c.io.Println("")
		c.io.Println("Report generated successfully.")
	case errors.Is(err, context.Canceled) && ctx.Err() == nil:
		// Stopped by the user, not an error
		c.io.Println("Generation stopped.")
	case errors.Is(err, report.ErrEmptyReport):
		c.io.Println("Report generated but returned no usable content.")
	case errors.Is(err, auth.ErrSessionExpired):
		// The logout hook already told the user
	default:
		c.io.Printf("Failed to generate report: %v\n", err)
	}
}

// loadSession resumes a stored session into the live transcript and
// restores its form selections.
func (c *Cli) loadSession(ctx context.Context, chat *report.Chat, sub *report.Submission, arg string) {
	sessions, err := c.controller.Sessions(ctx)
	if err != nil {
		c.io.Printf("Error: %v\n", err)
		return
	}

	idx := parseIndex(arg, len(sessions))
	if idx < 0 {
		c.io.Println("Usage: /load <number from /history>")
		return
	}

	session := sessions[idx]
	report.ResumeSession(chat, session)
	*sub = submissionFromSession(session)

	c.io.Printf("Loaded session for %s %s (%s).\n", session.FirstName, session.LastName, session.ProgramName)
	for _, msg := range chat.Messages {
		c.io.Printf("[%s] %s\n", msg.Sender, msg.Text)
	}
}

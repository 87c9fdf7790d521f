package cli

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/primacrm/primacli/internal/client/catalog"
	"github.com/primacrm/primacli/internal/client/report"
	"github.com/primacrm/primacli/internal/client/storage"
)

// collectSubmission walks the user through the dashboard form, offering
// the last-used selections as defaults.
func (c *Cli) collectSubmission(ctx context.Context) (report.Submission, error) {
	var sub report.Submission

	saved, err := c.controller.SavedSelections(ctx)
	if err != nil {
		return sub, err
	}
	if saved == nil {
		saved = &storage.Selections{}
	}

	if sub.FirstName, err = c.pick("First Name", catalog.FirstNames, saved.FirstName); err != nil {
		return sub, err
	}
	if sub.LastName, err = c.pick("Last Name", catalog.LastNames, saved.LastName); err != nil {
		return sub, err
	}
	if sub.Coach, err = c.pickCoach(saved.CoachID); err != nil {
		return sub, err
	}
	if sub.ProgramName, err = c.pick("Program Name", catalog.ProgramNames, saved.ProgramName); err != nil {
		return sub, err
	}
	if sub.ProgramType, err = c.pick("Program Type", catalog.ProgramTypes, saved.ProgramType); err != nil {
		return sub, err
	}
	if sub.ProgramDuration, err = c.pick("Program Duration", catalog.ProgramDurations, saved.ProgramDuration); err != nil {
		return sub, err
	}
	if sub.ProgramActiveDate, err = c.pickDate("Active Date", saved.ProgramActiveDate); err != nil {
		return sub, err
	}
	if sub.ProgramCompletedDate, err = c.pickDate("Completed Date", saved.ProgramCompletedDate); err != nil {
		return sub, err
	}
	if sub.ReportDate, err = c.pickDate("Report Date", ""); err != nil {
		return sub, err
	}

	return sub, nil
}

// pick shows a numbered option list and reads a choice. An empty answer
// keeps the default when one exists.
func (c *Cli) pick(label string, options []string, def string) (string, error) {
	c.io.Printf("%s:\n", label)
	for i, opt := range options {
		c.io.Printf("  %2d. %s\n", i+1, opt)
	}

	prompt := "Select: "
	if def != "" {
		prompt = fmt.Sprintf("Select [%s]: ", def)
	}

	for {
		answer, err := c.io.ReadInput(prompt)
		if err != nil {
			return "", err
		}
		if answer == "" && def != "" {
			return def, nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if opt == answer {
				return opt, nil
			}
		}
		c.io.Printf("Please pick a number between 1 and %d.\n", len(options))
	}
}

// pickCoach is pick for the id+name coach list.
func (c *Cli) pickCoach(defID int) (catalog.Coach, error) {
	c.io.Println("Coach:")
	for i, coach := range catalog.Coaches {
		c.io.Printf("  %2d. %s\n", i+1, coach.Name)
	}

	prompt := "Select: "
	if def, ok := catalog.CoachByID(defID); ok {
		prompt = fmt.Sprintf("Select [%s]: ", def.Name)
	}

	for {
		answer, err := c.io.ReadInput(prompt)
		if err != nil {
			return catalog.Coach{}, err
		}
		if answer == "" {
			if def, ok := catalog.CoachByID(defID); ok {
				return def, nil
			}
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(catalog.Coaches) {
			return catalog.Coaches[n-1], nil
		}
		c.io.Printf("Please pick a number between 1 and %d.\n", len(catalog.Coaches))
	}
}

// pickDate reads a YYYY-MM-DD date that is not in the future.
func (c *Cli) pickDate(label, def string) (string, error) {
	prompt := label + " (YYYY-MM-DD): "
	if def != "" {
		prompt = fmt.Sprintf("%s (YYYY-MM-DD) [%s]: ", label, def)
	}

	for {
		answer, err := c.io.ReadInput(prompt)
		if err != nil {
			return "", err
		}
		if answer == "" && def != "" {
			return def, nil
		}
		if validDate(answer) {
			return answer, nil
		}
		c.io.Println("Invalid date, expected YYYY-MM-DD not in the future.")
	}
}

// validDate accepts YYYY-MM-DD dates up to today.
func validDate(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return !t.After(time.Now())
}

// parseIndex converts a 1-based list answer into a slice index, or -1.
func parseIndex(arg string, length int) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > length {
		return -1
	}
	return n - 1
}

// submissionFromSession restores the form state of a stored session.
func submissionFromSession(s storage.ReportSession) report.Submission {
	coach, _ := catalog.CoachByID(s.CoachID)
	if coach.Name == "" {
		coach = catalog.Coach{ID: s.CoachID, Name: s.CoachName}
	}
	return report.Submission{
		FirstName:            s.FirstName,
		LastName:             s.LastName,
		Coach:                coach,
		ProgramName:          s.ProgramName,
		ProgramType:          s.ProgramType,
		ProgramDuration:      s.ProgramDuration,
		ProgramActiveDate:    s.ProgramActiveDate,
		ProgramCompletedDate: s.ProgramCompletedDate,
		ReportDate:           s.Date,
	}
}

var markdownChars = regexp.MustCompile("[#*`>]")

// snippet renders the sidebar-style report preview: markdown markers
// stripped, cut at 60 characters.
func snippet(report string) string {
	s := markdownChars.ReplaceAllString(report, "")
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}

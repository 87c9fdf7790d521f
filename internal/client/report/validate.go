package report

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// MinPromptLen is the minimum prompt length for a generation request
const MinPromptLen = 10

var onlyDigitsPattern = regexp.MustCompile(`^\d+$`)

// ValidateSubmission checks the form state in the order the dashboard
// does; the first failing check wins and its message is the single
// notice shown to the user. No network call happens before this passes.
func ValidateSubmission(sub Submission) error {
	prompt := strings.TrimSpace(sub.Prompt)
	switch {
	case prompt == "":
		return errors.New("prompt cannot be empty")
	case len(prompt) < MinPromptLen:
		return errors.New("prompt must be at least 10 characters")
	case onlyDigitsPattern.MatchString(prompt):
		return errors.New("prompt cannot be only consecutive numbers")
	}
	// Numeric-looking prompts like "12.5" are not digits-only but still
	// carry nothing to write a report about
	if _, err := strconv.ParseFloat(prompt, 64); err == nil {
		return errors.New("invalid prompt")
	}

	switch {
	case sub.FirstName == "":
		return errors.New("please select a first name")
	case sub.LastName == "":
		return errors.New("please select a last name")
	case sub.Coach.ID == 0 || sub.Coach.Name == "":
		return errors.New("please select a coach")
	case sub.ProgramName == "":
		return errors.New("please select a program name")
	case sub.ProgramType == "":
		return errors.New("please select a program type")
	case sub.ProgramDuration == "":
		return errors.New("please select a program duration")
	case sub.ProgramActiveDate == "":
		return errors.New("please select an active date")
	case sub.ProgramCompletedDate == "":
		return errors.New("please select a completed date")
	case sub.ReportDate == "":
		return errors.New("please select a report date")
	}

	return nil
}

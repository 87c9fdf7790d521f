package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubmission_PromptChecksComeFirst(t *testing.T) {
	// A bad prompt wins even when the rest of the form is empty too
	err := ValidateSubmission(Submission{Prompt: "123"})
	assert.EqualError(t, err, "prompt must be at least 10 characters")
}

func TestValidateSubmission_Prompts(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr string
	}{
		{name: "empty", prompt: "", wantErr: "prompt cannot be empty"},
		{name: "whitespace only", prompt: "    \t", wantErr: "prompt cannot be empty"},
		{name: "below minimum", prompt: "short one", wantErr: "prompt must be at least 10 characters"},
		{name: "digits only", prompt: "1234567890", wantErr: "prompt cannot be only consecutive numbers"},
		{name: "decimal number", prompt: "12345.6789", wantErr: "invalid prompt"},
		{name: "scientific notation", prompt: "1234567e12", wantErr: "invalid prompt"},
		{name: "exactly ten characters", prompt: "hello team", wantErr: ""},
		{name: "digits with words", prompt: "3 sessions completed this month", wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Prompt = tt.prompt
			err := ValidateSubmission(sub)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmission_FieldOrder(t *testing.T) {
	// Each missing field is reported in form order
	sub := validSubmission()
	sub.FirstName = ""
	sub.LastName = ""
	assert.EqualError(t, ValidateSubmission(sub), "please select a first name")

	sub.FirstName = "Cherie"
	assert.EqualError(t, ValidateSubmission(sub), "please select a last name")

	sub.LastName = "Wiggins"
	sub.ProgramDuration = ""
	sub.ProgramActiveDate = ""
	assert.EqualError(t, ValidateSubmission(sub), "please select a program duration")

	sub.ProgramDuration = "3_MONTHS"
	assert.EqualError(t, ValidateSubmission(sub), "please select an active date")
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.NoError(t, ValidateSubmission(validSubmission()))
}

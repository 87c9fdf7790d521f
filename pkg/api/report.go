package api

import "encoding/json"

// Candidate identifies the person the report is generated for.
type Candidate struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Coach is the coach assigned to the candidate.
type Coach struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Program describes the coaching program attributes of a report request.
type Program struct {
	ProgramName          string  `json:"program_name"`
	ProgramType          string  `json:"program_type"`
	ProgramDuration      string  `json:"program_duration"`
	InitialMeetingDate   *string `json:"initial_meeting_date"`
	ProgramActiveDate    string  `json:"program_active_date"`
	ProgramCompletedDate string  `json:"program_completed_date"`
}

// OutputConfig selects the report output format.
type OutputConfig struct {
	Type string `json:"type"`
}

// GenerateReportRequest is the payload for /report/generate.
type GenerateReportRequest struct {
	RequestID         string       `json:"request_id"`
	Candidate         Candidate    `json:"candidate"`
	Coach             Coach        `json:"coach"`
	Program           Program      `json:"program"`
	Notes             []string     `json:"notes"`
	PreviousReports   []string     `json:"previous_reports"`
	ParentReportID    *string      `json:"parent_report_id"`
	PreviousReportsID []string     `json:"previous_reports_id"`
	OutputConfig      OutputConfig `json:"output_config"`
	Status            string       `json:"status"`
	CreatedBy         int          `json:"created_by"`
	ReportDate        string       `json:"report_date"`
}

// ReportSegment is one unit of generated report text.
type ReportSegment struct {
	ReportSegment string `json:"report_segment"`
}

// GenerateReportResponse is the /report/generate body. The backend is not
// consistent about the shape of Data: it is either a bare list of
// segments or an object wrapping a "content" list. Data is kept raw and
// decoded leniently through Segments.
type GenerateReportResponse struct {
	ReportID string          `json:"report_id,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// Segments decodes the response data into segment records. Both known
// shapes are accepted; anything else yields no segments, which callers
// treat as a soft failure rather than an error.
func (r *GenerateReportResponse) Segments() []ReportSegment {
	if len(r.Data) == 0 {
		return nil
	}

	var list []ReportSegment
	if err := json.Unmarshal(r.Data, &list); err == nil {
		return list
	}

	var wrapped struct {
		Content []ReportSegment `json:"content"`
	}
	if err := json.Unmarshal(r.Data, &wrapped); err == nil {
		return wrapped.Content
	}

	return nil
}

// ResolveReportID returns the report id, preferring the one nested inside
// Data over the top-level field.
func (r *GenerateReportResponse) ResolveReportID() string {
	var nested struct {
		ReportID string `json:"report_id"`
	}
	if err := json.Unmarshal(r.Data, &nested); err == nil && nested.ReportID != "" {
		return nested.ReportID
	}
	return r.ReportID
}

// ModifyReportRequest is the payload for /report/modify.
type ModifyReportRequest struct {
	ReportID string `json:"report_id"`
	Content  string `json:"content"`
}

// FinalizeReportRequest is the payload for /report/finalize.
type FinalizeReportRequest struct {
	ReportID string `json:"report_id"`
}

// BulkModifyRequest is the payload for /report/bulk.
type BulkModifyRequest struct {
	Reports []ModifyReportRequest `json:"reports"`
}

// ReportActionResponse is the acknowledgement body of the report
// lifecycle endpoints.
type ReportActionResponse struct {
	Message string `json:"message,omitempty"`
}

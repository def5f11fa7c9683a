package request

// CreateReportPeriod opens a new reporting window and triggers the
// region fan-out.
type CreateReportPeriod struct {
	StartDate string                  `json:"startDate" binding:"required"`
	EndDate   string                  `json:"endDate" binding:"required"`
	Templates []ReportTemplatePayload `json:"templates" binding:"required,min=1,dive"`
}

// ReportTemplatePayload is one assignment inside a new period.
type ReportTemplatePayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Theme       string `json:"theme" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// UpdateDeputyRecord marks a deputy available or not for a period.
type UpdateDeputyRecord struct {
	IsAvailable *bool  `json:"isAvailable" binding:"required"`
	Reason      string `json:"reason"`
}

// FillReportRecord attaches the completion link to a report record.
type FillReportRecord struct {
	Link string `json:"link" binding:"required,max=500"`
}

// RenderReport is the payload of the PDF rendering endpoint. Sections
// map a heading to free-form body text.
type RenderReport struct {
	Title    string            `json:"title" binding:"required"`
	Period   string            `json:"period"`
	Sections []RenderedSection `json:"sections" binding:"required,min=1,dive"`
}

// RenderedSection is one heading plus body in a rendered report.
type RenderedSection struct {
	Heading string `json:"heading" binding:"required"`
	Body    string `json:"body"`
}

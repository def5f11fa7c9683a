package response

import (
	"time"

	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// ReportPeriodSummary is the list shape of a reporting window.
type ReportPeriodSummary struct {
	ID          uint      `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Templates   int       `json:"templates"`
	RegionCount int       `json:"region_count"`
}

// NewReportPeriodSummary maps a period with counts instead of rosters.
func NewReportPeriodSummary(p *entity.ReportPeriod) ReportPeriodSummary {
	return ReportPeriodSummary{
		ID:          p.ID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Templates:   len(p.Templates),
		RegionCount: len(p.RegionReports),
	}
}

// RenderedReportResponse points the caller at a rendered PDF.
type RenderedReportResponse struct {
	FileName  string    `json:"file_name"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

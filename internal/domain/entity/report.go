package entity

import (
	"time"
)

// ReportTheme classifies what a reporting assignment is about.
type ReportTheme string

const (
	ThemeInfoStrike    ReportTheme = "infoudar"
	ThemeVDPG          ReportTheme = "vdpg"
	ThemeEvent         ReportTheme = "event"
	ThemeRegionalEvent ReportTheme = "reg_event"
	ThemeOptionalEvent ReportTheme = "opt_event"
	ThemeLetter        ReportTheme = "letter"
)

// ReportPeriod is one reporting window. Creating a period fans out a
// RegionReport per region and, under each, the deputy roster with one
// empty ReportRecord per template.
type ReportPeriod struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Templates     []ReportTemplate `gorm:"foreignKey:PeriodID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"templates"`
	RegionReports []RegionReport   `gorm:"foreignKey:PeriodID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"region_reports"`
}

func (ReportPeriod) TableName() string { return "report_periods" }

// ReportTemplate is one reporting assignment inside a period.
type ReportTemplate struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	PeriodID    uint        `gorm:"column:period_id;not null;index" json:"-"`
	Name        string      `gorm:"size:250;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Theme       ReportTheme `gorm:"size:20;not null" json:"theme"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
}

func (ReportTemplate) TableName() string { return "report_templates" }

// RegionReport groups the deputy roster of one region within a period.
type RegionReport struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PeriodID uint   `gorm:"column:period_id;not null;index" json:"-"`
	Region   string `gorm:"size:150;not null;index" json:"region"`

	DeputyRecords []DeputyRecord `gorm:"foreignKey:RegionReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"deputy_records"`
}

func (RegionReport) TableName() string { return "region_reports" }

// DeputyRecord is one deputy's row in a region roster. FullName is a
// snapshot taken at fan-out time so later form edits do not rewrite
// past periods.
type DeputyRecord struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegionReportID uint   `gorm:"column:region_report_id;not null;index" json:"-"`
	UserID         int64  `gorm:"not null;index" json:"user_id"`
	FullName       string `gorm:"size:450;not null" json:"full_name"`
	Level          string `gorm:"size:50" json:"level"`
	IsAvailable    bool   `gorm:"not null;default:true" json:"is_available"`
	Reason         string `gorm:"size:250" json:"reason"`

	ReportRecords []ReportRecord `gorm:"foreignKey:DeputyRecordID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"report_records"`
}

func (DeputyRecord) TableName() string { return "deputy_records" }

// ReportRecord links one deputy to one template. Link is filled when
// the deputy submits proof of completion.
type ReportRecord struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DeputyRecordID uint   `gorm:"column:deputy_record_id;not null;index" json:"-"`
	TemplateID     uint   `gorm:"column:template_id;not null;index" json:"-"`
	Link           string `gorm:"size:500" json:"link"`
}

func (ReportRecord) TableName() string { return "report_records" }

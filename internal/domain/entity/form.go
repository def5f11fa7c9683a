package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a JSON-encoded list of strings stored in a text column.
// Scanning or unmarshalling anything other than a homogeneous string
// list fails.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("malformed string list: %w", err)
	}
	*l = items
	return nil
}

// RegistrationForm is the aggregate root of a deputy questionnaire.
// It is keyed by the owning user and cascades to its child collections.
type RegistrationForm struct {
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`

	// Personal
	LastName   string    `gorm:"size:150;not null" json:"last_name"`
	FirstName  string    `gorm:"size:150;not null" json:"first_name"`
	MiddleName string    `gorm:"size:150;not null" json:"middle_name"`
	Gender     string    `gorm:"size:20;not null" json:"gender"`
	BirthDate  time.Time `gorm:"not null" json:"birth_date"`
	Region     string    `gorm:"size:150;not null;index" json:"region"`
	Occupation string    `gorm:"size:250" json:"occupation"`

	// Contacts
	PhoneNumber     string `gorm:"size:12;not null" json:"phone_number"`
	Email           string `gorm:"size:254;not null" json:"email"`
	VKPage          string `gorm:"column:vk_page;size:250" json:"vk_page"`
	VKGroup         string `gorm:"column:vk_group;size:250" json:"vk_group"`
	TelegramChannel string `gorm:"size:250" json:"telegram_channel"`
	PersonalSite    string `gorm:"size:250" json:"personal_site"`

	// Family
	MaritalStatus        string `gorm:"size:50;not null" json:"marital_status"`
	ChildrenCount        *int   `json:"children_count"`
	ChildrenMaleCount    *int   `json:"children_male_count"`
	ChildrenFemaleCount  *int   `json:"children_female_count"`
	UnderageChildrenCount       *int `json:"underage_children_count"`
	UnderageChildrenMaleCount   *int `json:"underage_children_male_count"`
	UnderageChildrenFemaleCount *int `json:"underage_children_female_count"`

	// Party
	PartyExperience int    `gorm:"not null" json:"party_experience"`
	PartyPosition   string `gorm:"size:250" json:"party_position"`
	PartyRole       string `gorm:"size:250" json:"party_role"`

	// Elected office
	RepresentativeBodyName     string `gorm:"size:250" json:"representative_body_name"`
	RepresentativeBodyLevel    string `gorm:"size:50;index" json:"representative_body_level"`
	RepresentativeBodyPosition string `gorm:"size:250" json:"representative_body_position"`
	CommitteeName              string `gorm:"size:250" json:"committee_name"`
	CommitteeStatus            string `gorm:"size:100" json:"committee_status"`

	// Interests and skills
	ProfessionalSphere StringList `gorm:"type:text" json:"professional_sphere"`
	Sports             StringList `gorm:"type:text" json:"sports"`
	Recreation         StringList `gorm:"type:text" json:"recreation"`
	Hobbies            StringList `gorm:"type:text" json:"hobbies"`
	PartyResources     StringList `gorm:"type:text" json:"party_resources"`
	KnowledgeGaps      StringList `gorm:"type:text" json:"knowledge_gaps"`

	// Free text
	Awards                 string `gorm:"type:text" json:"awards"`
	CentralOfficeAssistant string `gorm:"type:text" json:"central_office_assistant"`
	AdditionalInfo         string `gorm:"type:text" json:"additional_info"`
	Suggestions            string `gorm:"type:text" json:"suggestions"`
	Talents                string `gorm:"type:text" json:"talents"`
	KnowledgeToShare       string `gorm:"type:text" json:"knowledge_to_share"`
	Superpower             string `gorm:"type:text" json:"superpower"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	OtherLinks          []OtherLink          `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"other_links"`
	Educations          []Education          `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"educations"`
	WorkExperiences     []WorkExperience     `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"work_experiences"`
	ForeignLanguages    []ForeignLanguage    `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"foreign_languages"`
	NativeLanguages     []NativeLanguage     `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"native_languages"`
	SocialOrganizations []SocialOrganization `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"social_organizations"`
}

// TableName specifies the table name for RegistrationForm
func (RegistrationForm) TableName() string {
	return "registration_forms"
}

// FullName returns the display name used in report rosters.
func (f *RegistrationForm) FullName() string {
	return f.LastName + " " + f.FirstName + " " + f.MiddleName
}

// OtherLink is an extra personal resource URL attached to a form.
type OtherLink struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID int64  `gorm:"column:form_id;not null;index" json:"-"`
	URL    string `gorm:"size:250;not null" json:"url"`
}

func (OtherLink) TableName() string { return "other_links" }

// Education is one education record of a form. The Has* fields hold the
// questionnaire's yes/no answers and gate the dependent fields.
type Education struct {
	ID                       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID                   int64  `gorm:"column:form_id;not null;index" json:"-"`
	Level                    string `gorm:"size:100;not null" json:"level"`
	Organization             string `gorm:"size:250;not null" json:"organization"`
	Specialty                string `gorm:"size:250" json:"specialty"`
	HasPostgraduate          string `gorm:"size:10" json:"has_postgraduate"`
	PostgraduateType         string `gorm:"size:100" json:"postgraduate_type"`
	PostgraduateOrganization string `gorm:"size:250" json:"postgraduate_organization"`
	HasDegree                string `gorm:"size:10" json:"has_degree"`
	DegreeType               string `gorm:"size:100" json:"degree_type"`
	HasTitle                 string `gorm:"size:10" json:"has_title"`
	TitleType                string `gorm:"size:100" json:"title_type"`
}

func (Education) TableName() string { return "educations" }

// WorkExperience is one employment record. StartDate keeps the
// questionnaire's "MM.YYYY" notation.
type WorkExperience struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID       int64  `gorm:"column:form_id;not null;index" json:"-"`
	Organization string `gorm:"size:250;not null" json:"organization"`
	Position     string `gorm:"size:250;not null" json:"position"`
	StartDate    string `gorm:"size:7" json:"start_date"`
}

func (WorkExperience) TableName() string { return "work_experiences" }

// ForeignLanguage is a spoken foreign language with proficiency level.
type ForeignLanguage struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID int64  `gorm:"column:form_id;not null;index" json:"-"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Level  string `gorm:"size:50" json:"level"`
}

func (ForeignLanguage) TableName() string { return "foreign_languages" }

// NativeLanguage is a language of the peoples of the Russian Federation.
type NativeLanguage struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID int64  `gorm:"column:form_id;not null;index" json:"-"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Level  string `gorm:"size:50" json:"level"`
}

func (NativeLanguage) TableName() string { return "native_languages" }

// SocialOrganization is a public organization membership. Years keeps
// the questionnaire's "YYYY-YYYY" notation.
type SocialOrganization struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FormID   int64  `gorm:"column:form_id;not null;index" json:"-"`
	Name     string `gorm:"size:250;not null" json:"name"`
	Position string `gorm:"size:250" json:"position"`
	Years    string `gorm:"size:20" json:"years"`
}

func (SocialOrganization) TableName() string { return "social_organizations" }

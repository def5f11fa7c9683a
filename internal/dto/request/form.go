package request

// SubmitForm is the questionnaire payload accepted from the public form
// and from the staff edit screen. No binding tags: the rule engine in
// internal/validation owns all checks so every violation is collected
// and reported at once.
//
// Child collections are pointers so an update can tell an omitted field
// (keep the stored rows) from an empty list (delete them).
type SubmitForm struct {
	UserID int64 `json:"userId"`

	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birthDate"`
	Region     string `json:"region"`
	Occupation string `json:"occupation"`

	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	VKPage          string `json:"vkPage"`
	VKGroup         string `json:"vkGroup"`
	TelegramChannel string `json:"telegramChannel"`
	PersonalSite    string `json:"personalSite"`
	OtherLinks      *[]OtherLinkPayload `json:"otherLinks"`

	MaritalStatus         string `json:"maritalStatus"`
	ChildrenCount         *int   `json:"childrenCount"`
	ChildrenMaleCount     *int   `json:"childrenMaleCount"`
	ChildrenFemaleCount   *int   `json:"childrenFemaleCount"`
	UnderageChildrenCount       *int `json:"underageChildrenCount"`
	UnderageChildrenMaleCount   *int `json:"underageChildrenMaleCount"`
	UnderageChildrenFemaleCount *int `json:"underageChildrenFemaleCount"`

	PartyExperience *int   `json:"partyExperience"`
	PartyPosition   string `json:"partyPosition"`
	PartyRole       string `json:"partyRole"`

	RepresentativeBodyName     string `json:"representativeBodyName"`
	RepresentativeBodyLevel    string `json:"representativeBodyLevel"`
	RepresentativeBodyPosition string `json:"representativeBodyPosition"`
	CommitteeName              string `json:"committeeName"`
	CommitteeStatus            string `json:"committeeStatus"`

	ProfessionalSphere []string `json:"professionalSphere"`
	Sports             []string `json:"sports"`
	Recreation         []string `json:"recreation"`
	Hobbies            []string `json:"hobbies"`
	PartyResources     []string `json:"partyResources"`
	KnowledgeGaps      []string `json:"knowledgeGaps"`

	Awards                 string `json:"awards"`
	CentralOfficeAssistant string `json:"centralOfficeAssistant"`
	AdditionalInfo         string `json:"additionalInfo"`
	Suggestions            string `json:"suggestions"`
	Talents                string `json:"talents"`
	KnowledgeToShare       string `json:"knowledgeToShare"`
	Superpower             string `json:"superpower"`

	Educations          *[]EducationPayload          `json:"education"`
	WorkExperiences     *[]WorkExperiencePayload     `json:"workExperience"`
	ForeignLanguages    *[]LanguagePayload           `json:"foreignLanguages"`
	NativeLanguages     *[]LanguagePayload           `json:"nativeLanguages"`
	SocialOrganizations *[]SocialOrganizationPayload `json:"socialOrganizations"`
}

// OtherLinkPayload is one extra resource link.
type OtherLinkPayload struct {
	URL string `json:"url"`
}

// EducationPayload is one education entry of the questionnaire.
type EducationPayload struct {
	Level                    string `json:"level"`
	Organization             string `json:"organization"`
	Specialty                string `json:"specialty"`
	HasPostgraduate          string `json:"hasPostgraduate"`
	PostgraduateType         string `json:"postgraduateType"`
	PostgraduateOrganization string `json:"postgraduateOrganization"`
	HasDegree                string `json:"hasDegree"`
	DegreeType               string `json:"degreeType"`
	HasTitle                 string `json:"hasTitle"`
	TitleType                string `json:"titleType"`
}

// WorkExperiencePayload is one employment entry.
type WorkExperiencePayload struct {
	Organization string `json:"organization"`
	Position     string `json:"position"`
	StartDate    string `json:"startDate"`
}

// LanguagePayload is one language entry, foreign or domestic.
type LanguagePayload struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// SocialOrganizationPayload is one public organization membership.
type SocialOrganizationPayload struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Years    string `json:"years"`
}

// ProcessForm is the staff decision on a submitted questionnaire.
type ProcessForm struct {
	UserID   int64  `json:"userId" binding:"required"`
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

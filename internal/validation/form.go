// Package validation implements the questionnaire rule engine. Rules
// run as an explicit ordered list and never fail fast: every violated
// rule lands in the Errors map keyed by the JSON field path, so the
// web form can highlight all problems in one round trip.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/politreg/deputy-portal/internal/constants"
	"github.com/politreg/deputy-portal/internal/dto/request"
)

var phoneRe = regexp.MustCompile(`^\+7\d{10}$`)

// Date layouts accepted for birthDate.
const (
	layoutDotted = "02.01.2006"
	layoutISO    = "2006-01-02"
)

// MinAge is the minimum applicant age in full years.
const MinAge = 18

const (
	msgRequired = "Это поле обязательно для заполнения"
	msgBlank    = "Это поле не может быть пустым"
)

// Errors collects rule violations keyed by JSON field path.
type Errors map[string][]string

// Add appends a violation message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no rule was violated.
func (e Errors) Empty() bool { return len(e) == 0 }

// ParseBirthDate accepts the two date notations the web form and the
// bot link flow produce.
func ParseBirthDate(value string) (time.Time, error) {
	if t, err := time.Parse(layoutDotted, value); err == nil {
		return t, nil
	}
	return time.Parse(layoutISO, value)
}

// Age returns full years between birth and now, decrementing when the
// birthday has not yet occurred this year.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// ValidateForm runs every rule against the payload and returns all
// collected violations. A nil return means the form is acceptable.
func ValidateForm(req *request.SubmitForm, now time.Time) Errors {
	errs := Errors{}

	validateRequiredScalars(req, errs)
	validatePhone(req.PhoneNumber, errs)
	validateEmail(req.Email, errs)
	validateBirthDate(req.BirthDate, now, errs)
	validatePartyExperience(req.PartyExperience, errs)
	validateProfessionalSphere(req.ProfessionalSphere, errs)
	validateMaritalStatus(req.Gender, req.MaritalStatus, errs)
	validateChildren(req, errs)
	validateEducations(req.Educations, errs)
	validateWorkExperiences(req.WorkExperiences, errs)
	validateLanguages(req.ForeignLanguages, req.NativeLanguages, errs)

	if errs.Empty() {
		return nil
	}
	return errs
}

func validateRequiredScalars(req *request.SubmitForm, errs Errors) {
	required := []struct {
		field string
		value string
	}{
		{"lastName", req.LastName},
		{"firstName", req.FirstName},
		{"gender", req.Gender},
		{"region", req.Region},
		{"vkPage", req.VKPage},
		{"additionalInfo", req.AdditionalInfo},
		{"suggestions", req.Suggestions},
		{"talents", req.Talents},
		{"knowledgeToShare", req.KnowledgeToShare},
		{"superpower", req.Superpower},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs.Add(f.field, msgBlank)
		}
	}
}

func validatePhone(phone string, errs Errors) {
	if phone == "" {
		errs.Add("phoneNumber", msgRequired)
		return
	}
	if !phoneRe.MatchString(phone) {
		errs.Add("phoneNumber", "Неверный формат телефона. Ожидается +7XXXXXXXXXX.")
	}
}

func validateEmail(email string, errs Errors) {
	if email == "" {
		errs.Add("email", msgRequired)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Введите корректный адрес электронной почты")
	}
}

func validateBirthDate(value string, now time.Time, errs Errors) {
	if value == "" {
		errs.Add("birthDate", "Дата рождения обязательна.")
		return
	}
	birth, err := ParseBirthDate(value)
	if err != nil {
		errs.Add("birthDate", "Неверный формат даты рождения.")
		return
	}
	if Age(birth, now) < MinAge {
		errs.Add("birthDate", "Возраст должен быть не менее 18 лет.")
	}
}

func validatePartyExperience(years *int, errs Errors) {
	if years == nil {
		errs.Add("partyExperience", "Стаж в партии обязателен.")
		return
	}
	if *years < 0 {
		errs.Add("partyExperience", "Стаж не может быть отрицательным.")
	}
}

func validateProfessionalSphere(sphere []string, errs Errors) {
	if sphere == nil {
		errs.Add("professionalSphere", msgRequired)
		return
	}
	if len(sphere) != constants.ProfessionalSphereSize {
		errs.Add("professionalSphere",
			fmt.Sprintf("Выберите ровно 4 варианта. Выбрано: %d", len(sphere)))
	}
	for _, item := range sphere {
		if strings.TrimSpace(item) == "" {
			errs.Add("professionalSphere", "Все элементы списка должны быть строками.")
			break
		}
	}
}

func validateMaritalStatus(gender, status string, errs Errors) {
	switch gender {
	case constants.GenderMale:
		if !constants.Contains(constants.MaritalStatusMale, status) {
			errs.Add("maritalStatus", "Неверное семейное положение для мужчины.")
		}
	case constants.GenderFemale:
		if !constants.Contains(constants.MaritalStatusFemale, status) {
			errs.Add("maritalStatus", "Неверное семейное положение для женщины.")
		}
	}
}

func validateChildren(req *request.SubmitForm, errs Errors) {
	total := req.ChildrenCount
	male := req.ChildrenMaleCount
	female := req.ChildrenFemaleCount

	if total != nil && *total > 0 {
		if male == nil {
			errs.Add("childrenMaleCount", "Это поле обязательно для заполнения, если есть дети.")
		}
		if female == nil {
			errs.Add("childrenFemaleCount", "Это поле обязательно для заполнения, если есть дети.")
		}
		if male != nil && female != nil && *male+*female != *total {
			msg := "Сумма мальчиков и девочек не соответствует общему количеству детей."
			errs.Add("childrenMaleCount", msg)
			errs.Add("childrenFemaleCount", msg)
		}
	} else if total != nil && *total == 0 {
		if male != nil && *male > 0 {
			errs.Add("childrenMaleCount", "Не может быть мальчиков, если нет детей.")
		}
		if female != nil && *female > 0 {
			errs.Add("childrenFemaleCount", "Не может быть девочек, если нет детей.")
		}
	}

	uTotal := req.UnderageChildrenCount
	uMale := req.UnderageChildrenMaleCount
	uFemale := req.UnderageChildrenFemaleCount

	if uTotal != nil && *uTotal > 0 {
		if uMale == nil {
			errs.Add("underageChildrenMaleCount", "Это поле обязательно для заполнения, если есть несовершеннолетние дети.")
		}
		if uFemale == nil {
			errs.Add("underageChildrenFemaleCount", "Это поле обязательно для заполнения, если есть несовершеннолетние дети.")
		}
		if uMale != nil && uFemale != nil && *uMale+*uFemale != *uTotal {
			msg := "Сумма несовершеннолетних мальчиков и девочек не соответствует общему количеству несовершеннолетних детей."
			errs.Add("underageChildrenMaleCount", msg)
			errs.Add("underageChildrenFemaleCount", msg)
		}
	} else if uTotal != nil && *uTotal == 0 {
		if uMale != nil && *uMale > 0 {
			errs.Add("underageChildrenMaleCount", "Не может быть несовершеннолетних мальчиков, если нет несовершеннолетних детей.")
		}
		if uFemale != nil && *uFemale > 0 {
			errs.Add("underageChildrenFemaleCount", "Не может быть несовершеннолетних девочек, если нет несовершеннолетних детей.")
		}
	}

	if total != nil && uTotal != nil && *uTotal > *total {
		errs.Add("underageChildrenCount", "Количество несовершеннолетних детей не может превышать общее количество детей.")
	}
}

func validateEducations(educations *[]request.EducationPayload, errs Errors) {
	if educations == nil || len(*educations) == 0 {
		errs.Add("education", "Пожалуйста, добавьте информацию о вашем образовании.")
		return
	}
	for i, edu := range *educations {
		prefix := fmt.Sprintf("education[%d].", i)
		if strings.TrimSpace(edu.Level) == "" {
			errs.Add(prefix+"level", msgRequired)
		}
		if strings.TrimSpace(edu.Organization) == "" {
			errs.Add(prefix+"organization", msgRequired)
		}
		if edu.HasPostgraduate == constants.AnswerYes {
			if edu.PostgraduateType == "" {
				errs.Add(prefix+"postgraduateType", "Выберите вид образования.")
			}
			if edu.PostgraduateOrganization == "" {
				errs.Add(prefix+"postgraduateOrganization", "Это поле обязательно для заполнения.")
			}
		}
		if edu.HasDegree == constants.AnswerYes && edu.DegreeType == "" {
			errs.Add(prefix+"degreeType", "Выберите ученую степень.")
		}
		if edu.HasTitle == constants.AnswerYes && edu.TitleType == "" {
			errs.Add(prefix+"titleType", "Выберите ученое звание.")
		}
	}
}

func validateWorkExperiences(experiences *[]request.WorkExperiencePayload, errs Errors) {
	if experiences == nil || len(*experiences) == 0 {
		errs.Add("workExperience", "Пожалуйста, добавьте хотя бы одно место работы.")
		return
	}
	for i, work := range *experiences {
		prefix := fmt.Sprintf("workExperience[%d].", i)
		if strings.TrimSpace(work.Organization) == "" {
			errs.Add(prefix+"organization", msgRequired)
		}
		if strings.TrimSpace(work.Position) == "" {
			errs.Add(prefix+"position", msgRequired)
		}
		if strings.TrimSpace(work.StartDate) == "" {
			errs.Add(prefix+"startDate", msgRequired)
		}
	}
}

func validateLanguages(foreign, native *[]request.LanguagePayload, errs Errors) {
	foreignEmpty := foreign == nil || len(*foreign) == 0
	nativeEmpty := native == nil || len(*native) == 0
	if foreignEmpty && nativeEmpty {
		errs.Add("languages", "Пожалуйста, добавьте хотя бы один язык, которым вы владеете.")
	}
}

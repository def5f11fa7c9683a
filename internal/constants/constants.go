// Package constants holds the questionnaire enumerations shared by the
// validation rules, the report fan-out and the admin screens.
package constants

// Answer values for the yes/no questionnaire fields.
const (
	AnswerYes = "Да"
	AnswerNo  = "Нет"
)

// Gender values.
const (
	GenderMale   = "Мужчина"
	GenderFemale = "Женщина"
)

// MaritalStatusMale are the statuses valid for male applicants.
var MaritalStatusMale = []string{
	"Женат",
	"Холост",
	"Разведён",
	"Вдовец",
}

// MaritalStatusFemale are the statuses valid for female applicants.
var MaritalStatusFemale = []string{
	"Замужем",
	"Не замужем",
	"Разведена",
	"Вдова",
}

// Representative body levels that take part in the reporting campaign.
var ReportableBodyLevels = []string{"ЗС", "АЦС", "МСУ"}

// ProfessionalSphereSize is the exact number of professional sphere
// entries a form must carry.
const ProfessionalSphereSize = 4

// Regions is the fixed list of federal subjects the party operates in.
// The report fan-out creates one region roster per entry.
var Regions = []string{
	"Республика Адыгея",
	"Республика Алтай",
	"Республика Башкортостан",
	"Республика Бурятия",
	"Республика Дагестан",
	"Республика Ингушетия",
	"Кабардино-Балкарская Республика",
	"Республика Калмыкия",
	"Карачаево-Черкесская Республика",
	"Республика Карелия",
	"Республика Коми",
	"Республика Крым",
	"Республика Марий Эл",
	"Республика Мордовия",
	"Республика Саха (Якутия)",
	"Республика Северная Осетия",
	"Республика Татарстан",
	"Республика Тыва",
	"Удмуртская Республика",
	"Республика Хакасия",
	"Чеченская Республика",
	"Чувашская Республика",
	"Алтайский край",
	"Забайкальский край",
	"Камчатский край",
	"Краснодарский край",
	"Красноярский край",
	"Пермский край",
	"Приморский край",
	"Ставропольский край",
	"Хабаровский край",
	"Амурская область",
	"Архангельская область",
	"Астраханская область",
	"Белгородская область",
	"Брянская область",
	"Владимирская область",
	"Волгоградская область",
	"Вологодская область",
	"Воронежская область",
	"Ивановская область",
	"Иркутская область",
	"Калининградская область",
	"Калужская область",
	"Кемеровская область",
	"Кировская область",
	"Костромская область",
	"Курганская область",
	"Курская область",
	"Ленинградская область",
	"Липецкая область",
	"Магаданская область",
	"Московская область",
	"Мурманская область",
	"Нижегородская область",
	"Новгородская область",
	"Новосибирская область",
	"Омская область",
	"Оренбургская область",
	"Орловская область",
	"Пензенская область",
	"Псковская область",
	"Ростовская область",
	"Рязанская область",
	"Самарская область",
	"Саратовская область",
	"Сахалинская область",
	"Свердловская область",
	"Смоленская область",
	"Тамбовская область",
	"Тверская область",
	"Томская область",
	"Тульская область",
	"Тюменская область",
	"Ульяновская область",
	"Челябинская область",
	"Ярославская область",
	"Москва",
	"Санкт-Петербург",
	"Севастополь",
	"Еврейская автономная область",
	"Ненецкий автономный округ",
	"Ханты-Мансийский автономный округ",
	"Чукотский автономный округ",
	"Ямало-Ненецкий автономный округ",
}

// Contains reports whether value is present in list.
func Contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

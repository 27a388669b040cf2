package domain

// EmploymentTypes is the catalog of employment codes shown in the filter.
type EmploymentTypes interface {
	Codes() []string
	Name(code, locale string) string
}

// schema.org JobPosting employmentType values, in display order.
var defaultEmploymentCodes = []string{
	"FULL_TIME",
	"PART_TIME",
	"CONTRACTOR",
	"TEMPORARY",
	"INTERN",
	"VOLUNTEER",
	"PER_DIEM",
	"OTHER",
}

var defaultEmploymentNames = map[string]map[string]string{
	"en": {
		"FULL_TIME":  "Full time",
		"PART_TIME":  "Part time",
		"CONTRACTOR": "Contractor",
		"TEMPORARY":  "Temporary",
		"INTERN":     "Internship",
		"VOLUNTEER":  "Volunteer",
		"PER_DIEM":   "Per diem",
		"OTHER":      "Other",
	},
	"de": {
		"FULL_TIME":  "Vollzeit",
		"PART_TIME":  "Teilzeit",
		"CONTRACTOR": "Auftragnehmer",
		"TEMPORARY":  "Befristet",
		"INTERN":     "Praktikum",
		"VOLUNTEER":  "Ehrenamt",
		"PER_DIEM":   "Tageweise",
		"OTHER":      "Sonstiges",
	},
}

// Catalog is a static EmploymentTypes with per-locale names.
// Unknown locales fall back to "en", unknown codes to the code itself.
type Catalog struct {
	codes []string
	names map[string]map[string]string
}

func NewCatalog(codes []string, names map[string]map[string]string) Catalog {
	return Catalog{codes: codes, names: names}
}

func DefaultCatalog() Catalog {
	return NewCatalog(defaultEmploymentCodes, defaultEmploymentNames)
}

func (c Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

func (c Catalog) Name(code, locale string) string {
	if n, ok := c.names[locale][code]; ok {
		return n
	}
	if n, ok := c.names["en"][code]; ok {
		return n
	}
	return code
}

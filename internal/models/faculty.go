package models

import (
	"fmt"
	"strings"
)

// EmploymentType drives the weekly load bound of a faculty member.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
)

// ParseEmploymentType accepts "Full-time", "full_time", "PT" and similar spellings.
func ParseEmploymentType(raw string) (EmploymentType, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case "FULLTIME", "FT":
		return EmploymentFullTime, nil
	case "PARTTIME", "PT":
		return EmploymentPartTime, nil
	default:
		return "", fmt.Errorf("unknown employment type %q", raw)
	}
}

// UnmarshalText accepts the lenient spellings. Unknown values are kept upper-cased
// so validation rejects the single record instead of the whole payload.
func (e *EmploymentType) UnmarshalText(data []byte) error {
	parsed, err := ParseEmploymentType(string(data))
	if err != nil {
		*e = EmploymentType(strings.ToUpper(strings.TrimSpace(string(data))))
		return nil
	}
	*e = parsed
	return nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (e *EmploymentType) UnmarshalCSV(raw string) error {
	return e.UnmarshalText([]byte(raw))
}

// StringList is a delimiter separated list cell.
type StringList []string

// MarshalCSV implements gocsv.TypeMarshaller.
func (l StringList) MarshalCSV() (string, error) { return strings.Join(l, ";"), nil }

// UnmarshalCSV splits on ';' or ',' and trims each entry.
func (l *StringList) UnmarshalCSV(raw string) error {
	items := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
	result := make(StringList, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	*l = result
	return nil
}

// Faculty is a teaching staff member.
type Faculty struct {
	ID             string         `csv:"faculty_id" json:"id" validate:"required"`
	Name           string         `csv:"faculty_name" json:"name,omitempty"`
	EmploymentType EmploymentType `csv:"employment_type" json:"employment_type" validate:"oneof=FULL_TIME PART_TIME"`
	Qualifications StringList     `csv:"qualifications" json:"qualifications,omitempty"`
}

// QualifiedFor reports whether the member may teach the course. An empty list qualifies for everything.
func (f Faculty) QualifiedFor(courseCode string) bool {
	if len(f.Qualifications) == 0 {
		return true
	}
	for _, code := range f.Qualifications {
		if strings.EqualFold(code, courseCode) {
			return true
		}
	}
	return false
}

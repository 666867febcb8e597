package scheduler

import (
	"fmt"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// GenerateSections splits a cohort headcount into evenly sized sections within bounds.
func GenerateSections(enrollment models.Enrollment, bounds SectionBounds) ([]models.Section, error) {
	key := enrollment.CohortKey().String()
	if bounds.Min <= 0 || bounds.Max < bounds.Min {
		return nil, ConfigurationError{Entity: "enrollment", Key: key, Field: "bounds",
			Message: fmt.Sprintf("invalid section bounds [%d,%d]", bounds.Min, bounds.Max)}
	}
	count := enrollment.Count
	if count < bounds.Min {
		return nil, ConfigurationError{Entity: "enrollment", Key: key, Field: "count",
			Message: fmt.Sprintf("%d students is below the minimum section size %d", count, bounds.Min)}
	}

	k := (count + bounds.Max - 1) / bounds.Max
	for k > 1 && count/k < bounds.Min {
		k--
	}
	base, extra := count/k, count%k

	sections := make([]models.Section, 0, k)
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		if size < bounds.Min || size > bounds.Max {
			return nil, ConfigurationError{Entity: "enrollment", Key: key, Field: "count",
				Message: fmt.Sprintf("%d students cannot be split into sections of %d-%d", count, bounds.Min, bounds.Max)}
		}
		letter := SectionLetters(i)
		sections = append(sections, models.Section{
			ID:      fmt.Sprintf("%s%d%s", enrollment.Program, enrollment.Year, letter),
			Program: enrollment.Program,
			Year:    enrollment.Year,
			Term:    enrollment.Term,
			Letter:  letter,
			Size:    size,
		})
	}
	return sections, nil
}

// SectionLetters returns the spreadsheet-style label for a zero-based index: A..Z, AA, AB, ...
func SectionLetters(index int) string {
	var out []byte
	for index >= 0 {
		out = append([]byte{byte('A' + index%26)}, out...)
		index = index/26 - 1
	}
	return string(out)
}

package entries

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/project"
)

// storedLayouts are the layouts stored temporal answers may arrive in.
// Clients submit full ISO timestamps; the configured datetime_format decides
// which components take part in the comparison.
var storedLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// temporalLayouts maps a declared datetime_format to the Go layout the
// parsed value is rendered with before comparison. hh and HH variants both
// render through the 24-hour clock so the comparison is on the parsed
// temporal value, not on the display format.
var temporalLayouts = map[string]string{
	"dd/MM/YYYY": "02/01/2006",
	"MM/dd/YYYY": "01/02/2006",
	"YYYY/MM/dd": "2006/01/02",
	"MM/YYYY":    "01/2006",
	"dd/MM":      "02/01",
	"HH:mm:ss":   "15:04:05",
	"hh:mm:ss":   "15:04:05",
	"HH:mm":      "15:04",
	"hh:mm":      "15:04",
	"mm:ss":      "04:05",
}

// normalizeTemporal parses a stored temporal value and renders only the
// components the configured format names. Unparseable values fall back to
// raw string comparison.
func normalizeTemporal(format, value string) string {
	var (
		parsed time.Time
		ok     bool
	)

	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			parsed = t
			ok = true

			break
		}
	}

	if !ok {
		return value
	}

	layout, known := temporalLayouts[format]
	if !known {
		return parsed.Format("2006-01-02T15:04:05")
	}

	return parsed.Format(layout)
}

// answerString coerces a submitted answer value to its comparable string
// form. Structured values (arrays, objects) are not comparable.
func answerString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// AnswersEqual reports whether two submitted values are duplicates under the
// comparison semantics of the input's declared type: numeric equality for
// integer and decimal inputs ("5" equals "5.0"), normalized temporal
// equality for date and time inputs, exact string equality otherwise.
func AnswersEqual(in *project.Input, a, b any) bool {
	as, aok := answerString(a)
	bs, bok := answerString(b)

	if !aok || !bok {
		return false
	}

	switch in.Type {
	case project.TypeInteger, project.TypeDecimal:
		af, errA := strconv.ParseFloat(as, 64)
		bf, errB := strconv.ParseFloat(bs, 64)

		if errA != nil || errB != nil {
			return as == bs
		}

		return af == bf
	case project.TypeDate, project.TypeTime:
		return normalizeTemporal(in.DatetimeFormat, as) == normalizeTemporal(in.DatetimeFormat, bs)
	default:
		return as == bs
	}
}

// CheckUnique reports whether the candidate answer is unique among the
// stored answers for the same input. Inputs whose type is inherently
// non-comparable are exempt regardless of their declared rule; empty and
// jumped candidates never collide.
func CheckUnique(in *project.Input, candidate models.Answer, stored []models.Answer) bool {
	if in.Uniqueness == project.UniquenessNone || in.Uniqueness == "" {
		return true
	}

	if !in.Comparable() || candidate.WasJumped {
		return true
	}

	cs, ok := answerString(candidate.Answer)
	if !ok || cs == "" {
		return true
	}

	for _, other := range stored {
		if AnswersEqual(in, candidate.Answer, other.Answer) {
			return false
		}
	}

	return true
}

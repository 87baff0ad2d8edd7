package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/project"
)

func TestAnswersEqual(t *testing.T) {
	testCases := []struct {
		name     string
		input    project.Input
		a, b     any
		expected bool
	}{
		{
			name:     "text exact match",
			input:    project.Input{Type: project.TypeText},
			a:        "Alpha",
			b:        "Alpha",
			expected: true,
		},
		{
			name:     "text is case sensitive",
			input:    project.Input{Type: project.TypeText},
			a:        "Alpha",
			b:        "alpha",
			expected: false,
		},
		{
			name:     "textarea exact match",
			input:    project.Input{Type: project.TypeTextarea},
			a:        "line one",
			b:        "line one",
			expected: true,
		},
		{
			name:     "phone compared verbatim",
			input:    project.Input{Type: project.TypePhone},
			a:        "+44 20 7946 0000",
			b:        "+442079460000",
			expected: false,
		},
		{
			name:     "barcode exact match",
			input:    project.Input{Type: project.TypeBarcode},
			a:        "5012345678900",
			b:        "5012345678900",
			expected: true,
		},
		{
			name:     "integer string equals number",
			input:    project.Input{Type: project.TypeInteger},
			a:        "5",
			b:        float64(5),
			expected: true,
		},
		{
			name:     "integer leading zero equals plain",
			input:    project.Input{Type: project.TypeInteger},
			a:        "007",
			b:        "7",
			expected: true,
		},
		{
			name:     "decimal trailing zero equals plain",
			input:    project.Input{Type: project.TypeDecimal},
			a:        "1.50",
			b:        "1.5",
			expected: true,
		},
		{
			name:     "decimal different values",
			input:    project.Input{Type: project.TypeDecimal},
			a:        "1.50",
			b:        "1.55",
			expected: false,
		},
		{
			name:     "non numeric integer falls back to string compare",
			input:    project.Input{Type: project.TypeInteger},
			a:        "abc",
			b:        "abc",
			expected: true,
		},
		{
			name:     "date same day different time under day format",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "dd/MM/YYYY"},
			a:        "2026-03-01T00:00:00.000",
			b:        "2026-03-01T10:30:00.000",
			expected: true,
		},
		{
			name:     "date different day under day format",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "dd/MM/YYYY"},
			a:        "2026-03-01T00:00:00.000",
			b:        "2026-03-02T00:00:00.000",
			expected: false,
		},
		{
			name:     "date US order format compares the same day",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "MM/dd/YYYY"},
			a:        "2026-03-01T08:00:00.000",
			b:        "2026-03-01T20:00:00.000",
			expected: true,
		},
		{
			name:     "date ISO order format compares the same day",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "YYYY/MM/dd"},
			a:        "2026-03-01T08:00:00.000",
			b:        "2026-03-02T08:00:00.000",
			expected: false,
		},
		{
			name:     "date month year format ignores the day",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "MM/YYYY"},
			a:        "2026-03-01T00:00:00.000",
			b:        "2026-03-28T00:00:00.000",
			expected: true,
		},
		{
			name:     "date day month format ignores the year",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "dd/MM"},
			a:        "2025-03-01T00:00:00.000",
			b:        "2026-03-01T00:00:00.000",
			expected: true,
		},
		{
			name:     "time minute format ignores seconds",
			input:    project.Input{Type: project.TypeTime, DatetimeFormat: "HH:mm"},
			a:        "2026-03-01T10:30:15.000",
			b:        "2026-03-01T10:30:45.000",
			expected: true,
		},
		{
			name:     "time full format keeps seconds",
			input:    project.Input{Type: project.TypeTime, DatetimeFormat: "HH:mm:ss"},
			a:        "2026-03-01T10:30:15.000",
			b:        "2026-03-01T10:30:45.000",
			expected: false,
		},
		{
			name:     "time 12h full format keeps seconds",
			input:    project.Input{Type: project.TypeTime, DatetimeFormat: "hh:mm:ss"},
			a:        "2026-03-01T22:15:30.000",
			b:        "2026-03-01T22:15:30.000",
			expected: true,
		},
		{
			name:     "time 12h and 24h declared formats compare the same clock",
			input:    project.Input{Type: project.TypeTime, DatetimeFormat: "hh:mm"},
			a:        "2026-03-01T14:30:00.000",
			b:        "2026-03-01T14:30:59.000",
			expected: true,
		},
		{
			name:     "time minute second format ignores the hour",
			input:    project.Input{Type: project.TypeTime, DatetimeFormat: "mm:ss"},
			a:        "2026-03-01T09:30:15.000",
			b:        "2026-03-01T14:30:15.000",
			expected: true,
		},
		{
			name:     "unparseable temporal falls back to raw compare",
			input:    project.Input{Type: project.TypeDate, DatetimeFormat: "dd/MM/YYYY"},
			a:        "not-a-date",
			b:        "not-a-date",
			expected: true,
		},
		{
			name:     "structured values never equal",
			input:    project.Input{Type: project.TypeText},
			a:        []any{"a"},
			b:        []any{"a"},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AnswersEqual(&tc.input, tc.a, tc.b))
		})
	}
}

func TestCheckUnique(t *testing.T) {
	stored := []models.Answer{{Answer: "Alpha"}, {Answer: "Beta"}}

	testCases := []struct {
		name      string
		input     project.Input
		candidate models.Answer
		stored    []models.Answer
		expected  bool
	}{
		{
			name:      "duplicate under form scope",
			input:     project.Input{Type: project.TypeText, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: "Alpha"},
			stored:    stored,
			expected:  false,
		},
		{
			name:      "fresh value passes",
			input:     project.Input{Type: project.TypeText, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: "Gamma"},
			stored:    stored,
			expected:  true,
		},
		{
			name:      "no scope never collides",
			input:     project.Input{Type: project.TypeText, Uniqueness: project.UniquenessNone},
			candidate: models.Answer{Answer: "Alpha"},
			stored:    stored,
			expected:  true,
		},
		{
			name:      "undeclared scope never collides",
			input:     project.Input{Type: project.TypeText},
			candidate: models.Answer{Answer: "Alpha"},
			stored:    stored,
			expected:  true,
		},
		{
			name:      "jumped candidate exempt",
			input:     project.Input{Type: project.TypeText, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: "Alpha", WasJumped: true},
			stored:    stored,
			expected:  true,
		},
		{
			name:      "empty candidate exempt",
			input:     project.Input{Type: project.TypeText, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: ""},
			stored:    []models.Answer{{Answer: ""}},
			expected:  true,
		},
		{
			name:      "location type exempt despite declared rule",
			input:     project.Input{Type: project.TypeLocation, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: "51.5,-0.1"},
			stored:    []models.Answer{{Answer: "51.5,-0.1"}},
			expected:  true,
		},
		{
			name:      "photo type exempt despite declared rule",
			input:     project.Input{Type: project.TypePhoto, Uniqueness: project.UniquenessForm},
			candidate: models.Answer{Answer: "img.jpg"},
			stored:    []models.Answer{{Answer: "img.jpg"}},
			expected:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CheckUnique(&tc.input, tc.candidate, tc.stored))
		})
	}
}

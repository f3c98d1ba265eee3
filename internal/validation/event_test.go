package validation_test

import (
	"errors"
	"regexp"
	"testing"

	"go-gin-event-lookup/internal/model"
	"go-gin-event-lookup/internal/validation"
	apperrors "go-gin-event-lookup/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *model.Event {
	return &model.Event{
		Title:       "  Go Meetup: Concurrency Patterns!  ",
		Description: " A night of goroutines ",
		Overview:    "Talks and demos",
		Image:       "/images/go-meetup.png",
		Venue:       "Main Hall",
		Location:    "Taipei",
		Date:        "2025-11-07T18:30:00Z",
		Time:        "18:30",
		Mode:        model.EventModeHybrid,
		Audience:    "Developers",
		Agenda:      []string{" Opening ", "Talks"},
		Organizer:   "Go Taipei",
		Tags:        []string{"go", "meetup"},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation stripped", "Go Meetup: Concurrency Patterns!", "go-meetup-concurrency-patterns"},
		{"whitespace runs", "  many    spaces\there  ", "many-spaces-here"},
		{"duplicate hyphens", "a -- b --- c", "a-b-c"},
		{"leading and trailing hyphens", "--edge-case--", "edge-case"},
		{"underscores become hyphens", "hello_world", "hello-world"},
		{"digits kept", "Conf 2025 Day 1", "conf-2025-day-1"},
		{"non ascii stripped", "Café Night", "caf-night"},
		{"no-break space", "Go\u00a0Meetup", "go-meetup"},
		{"em space", "Go\u2003Meetup", "go-meetup"},
		{"mixed unicode separators", "Go \u3000\u2028 Meetup\ufeff", "go-meetup"},
		{"only punctuation", "!!! ???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.Slugify(tt.title))
		})
	}
}

func TestSlugify_Properties(t *testing.T) {
	slugChars := regexp.MustCompile(`^[a-z0-9-]*$`)
	titles := []string{
		"Hello World", "  -- Weird __ Title --  ", "React & Next.js Summit 2025",
		"C++ / Rust / Go", "A-B-C", "tab\tand\nnewline", "UPPER lower MiXeD", "x",
	}

	for _, title := range titles {
		slug := validation.Slugify(title)
		assert.Equal(t, slug, validation.Slugify(title), "deterministic for %q", title)
		assert.Regexp(t, slugChars, slug, "charset for %q", title)
		assert.NotContains(t, slug, "--", "doubled hyphen for %q", title)
		if slug != "" {
			assert.NotEqual(t, '-', rune(slug[0]), "leading hyphen for %q", title)
			assert.NotEqual(t, '-', rune(slug[len(slug)-1]), "trailing hyphen for %q", title)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		tests := map[string]string{
			"2025-03-01":                "2025-03-01",
			"2025-03-01T23:45:00Z":      "2025-03-01",
			"2025-03-01T23:45:00-05:00": "2025-03-01",
			"2025-03-01 08:00":          "2025-03-01",
			"2025/03/01":                "2025-03-01",
			"03/01/2025":                "2025-03-01",
			"March 1, 2025":             "2025-03-01",
			"Mar 1, 2025":               "2025-03-01",
			"1 March 2025":              "2025-03-01",
			"  2024-02-29  ":            "2024-02-29",
		}
		for input, want := range tests {
			got, err := validation.NormalizeDate(input)
			require.NoError(t, err, input)
			assert.Equal(t, want, got, input)
		}
	})

	t.Run("Failed - unparsable", func(t *testing.T) {
		for _, input := range []string{"", "tomorrow", "2025-02-30", "2023-02-29", "13/45/2025", "2025-13-01"} {
			_, err := validation.NormalizeDate(input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat, input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, input)
		}
	})
}

func TestValidateTime(t *testing.T) {
	for _, valid := range []string{"00:00", "9:30", "09:30", "19:59", "23:59"} {
		assert.NoError(t, validation.ValidateTime(valid), valid)
	}
	for _, invalid := range []string{"", "24:00", "7:5", "12:60", "12:30:00", "noon", " 12:30", "1230"} {
		assert.ErrorIs(t, validation.ValidateTime(invalid), apperrors.ErrInvalidTimeFormat, invalid)
	}
}

func TestCanonicalSlug(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		slug, err := validation.CanonicalSlug("  My-Event-2025 ")
		require.NoError(t, err)
		assert.Equal(t, "my-event-2025", slug)
	})

	t.Run("Failed - missing or blank", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t"} {
			_, err := validation.CanonicalSlug(raw)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSlugParam)
		}
	})

	t.Run("Failed - invalid characters", func(t *testing.T) {
		for _, raw := range []string{"Hello_World!", "a b", "event.2025", "ümlaut"} {
			_, err := validation.CanonicalSlug(raw)
			assert.ErrorIs(t, err, apperrors.ErrSlugInvalidCharacters, raw)
		}
	})
}

func TestNormalizeEvent(t *testing.T) {
	t.Run("Success - new event normalizes every field", func(t *testing.T) {
		event := validEvent()

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.AllEventFields...))

		require.NoError(t, err)
		assert.Equal(t, "Go Meetup: Concurrency Patterns!", event.Title)
		assert.Equal(t, "go-meetup-concurrency-patterns", event.Slug)
		assert.Equal(t, "A night of goroutines", event.Description)
		assert.Equal(t, "2025-11-07", event.Date)
		assert.Equal(t, "18:30", event.Time)
		assert.Equal(t, []string{"Opening", "Talks"}, event.Agenda)
	})

	t.Run("Success - unchanged fields are left alone", func(t *testing.T) {
		event := validEvent()
		event.Title = "Renamed Event"
		event.Slug = "original-slug"
		event.Date = "2025-11-07T18:30:00Z"

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.FieldTime))

		require.NoError(t, err)
		assert.Equal(t, "original-slug", event.Slug)
		assert.Equal(t, "2025-11-07T18:30:00Z", event.Date)
		assert.Equal(t, " A night of goroutines ", event.Description)
	})

	t.Run("Success - title change regenerates slug", func(t *testing.T) {
		event := validEvent()
		event.Slug = "old-slug"
		event.Title = "Brand New Title"

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.FieldTitle))

		require.NoError(t, err)
		assert.Equal(t, "brand-new-title", event.Slug)
	})

	t.Run("Failed - invalid date", func(t *testing.T) {
		event := validEvent()
		event.Slug = "go-meetup"
		event.Date = "someday"

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.FieldDate))

		assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)
		assert.Equal(t, "someday", event.Date)
	})

	t.Run("Failed - invalid time", func(t *testing.T) {
		event := validEvent()
		event.Slug = "go-meetup"
		event.Time = "6pm"

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.FieldTime))

		assert.ErrorIs(t, err, apperrors.ErrInvalidTimeFormat)
	})

	t.Run("Failed - title reduces to empty slug", func(t *testing.T) {
		event := validEvent()
		event.Title = "!!!"

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.FieldTitle))

		assert.ErrorIs(t, err, apperrors.ErrEmptySlug)
	})

	t.Run("Failed - structural rules", func(t *testing.T) {
		event := validEvent()
		event.Mode = "in-person"
		event.Agenda = []string{}
		event.Tags = []string{"go", "   "}
		event.Organizer = "   "

		err := validation.NormalizeEvent(event, model.NewFieldSet(model.AllEventFields...))

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidEvent)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		var validationErr *validation.ValidationError
		require.True(t, errors.As(err, &validationErr))
		fields := map[string]string{}
		for _, f := range validationErr.Fields {
			fields[f.Field] = f.Error
		}
		assert.Equal(t, "must be one of: online offline hybrid", fields["mode"])
		assert.Equal(t, "must contain at least 1 item(s)", fields["agenda"])
		assert.Equal(t, "is required", fields["tags[1]"])
		assert.Equal(t, "is required", fields["organizer"])
	})
}

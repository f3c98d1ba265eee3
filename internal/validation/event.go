// Package validation normalizes event documents before they are written and
// validates slugs received on the read path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go-gin-event-lookup/internal/model"
	apperrors "go-gin-event-lookup/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\s\p{Z}\x{FEFF}_-]`)
	separatorRuns  = regexp.MustCompile(`[\s\p{Z}\x{FEFF}_]+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
	slugParamChars = regexp.MustCompile(`^[a-z0-9-]+$`)
	timePattern    = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// dateLayouts 依序嘗試，第一個成功的為準
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
	"Mon, 02 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.ANSIC,
	time.UnixDate,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Slugify lowercases the title, strips everything except letters, digits,
// whitespace (including Unicode spaces), underscores and hyphens, turns
// separator runs into single hyphens and trims hyphens from both ends.
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses raw as a calendar date and returns it as YYYY-MM-DD.
// Time of day and zone are dropped; the date is taken as written.
func NormalizeDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", apperrors.ErrInvalidDateFormat
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(time.DateOnly), nil
		}
	}
	return "", apperrors.ErrInvalidDateFormat
}

// ValidateTime accepts 24-hour HH:MM; the hour may be a single digit.
func ValidateTime(raw string) error {
	if !timePattern.MatchString(raw) {
		return apperrors.ErrInvalidTimeFormat
	}
	return nil
}

// CanonicalSlug validates a slug taken from a request path and returns its
// trimmed, lowercased form.
func CanonicalSlug(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.ErrInvalidSlugParam
	}
	slug := strings.ToLower(strings.TrimSpace(raw))
	if !slugParamChars.MatchString(slug) {
		return "", apperrors.ErrSlugInvalidCharacters
	}
	return slug, nil
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError 文件結構不符規則時回傳，Unwrap 為 apperrors.ErrInvalidEvent
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Error)
	}
	return fmt.Sprintf("invalid event: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidEvent
}

// NormalizeEvent runs before an event is persisted. Only the fields in
// changed are trimmed and normalized: the slug is regenerated when the title
// changed, the date is rewritten to YYYY-MM-DD and the time is checked against
// HH:MM. The complete document is then checked against the structural rules.
func NormalizeEvent(event *model.Event, changed model.FieldSet) error {
	trimChanged(event, changed)

	if changed.Has(model.FieldTitle) {
		slug := Slugify(event.Title)
		if slug == "" && event.Title != "" {
			return apperrors.ErrEmptySlug
		}
		event.Slug = slug
	}

	if changed.Has(model.FieldDate) {
		date, err := NormalizeDate(event.Date)
		if err != nil {
			return err
		}
		event.Date = date
	}

	if changed.Has(model.FieldTime) {
		if err := ValidateTime(event.Time); err != nil {
			return err
		}
	}

	return checkStructure(event)
}

func trimChanged(event *model.Event, changed model.FieldSet) {
	fields := map[model.EventField]*string{
		model.FieldTitle:       &event.Title,
		model.FieldDescription: &event.Description,
		model.FieldOverview:    &event.Overview,
		model.FieldImage:       &event.Image,
		model.FieldVenue:       &event.Venue,
		model.FieldLocation:    &event.Location,
		model.FieldDate:        &event.Date,
		model.FieldTime:        &event.Time,
		model.FieldAudience:    &event.Audience,
		model.FieldOrganizer:   &event.Organizer,
	}
	for field, value := range fields {
		if changed.Has(field) {
			*value = strings.TrimSpace(*value)
		}
	}
	if changed.Has(model.FieldMode) {
		event.Mode = model.EventMode(strings.TrimSpace(string(event.Mode)))
	}
	if changed.Has(model.FieldAgenda) {
		event.Agenda = trimAll(event.Agenda)
	}
	if changed.Has(model.FieldTags) {
		event.Tags = trimAll(event.Tags)
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func checkStructure(event *model.Event) error {
	err := validate.Struct(event)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field: fieldName(fe),
			Error: describe(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldName 把 agenda[0] 之類的名稱保留下來，其餘只取 json 名稱
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}

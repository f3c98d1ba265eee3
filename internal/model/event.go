package model

import (
	"time"
)

type EventMode string

const (
	EventModeOnline  EventMode = "online"
	EventModeOffline EventMode = "offline"
	EventModeHybrid  EventMode = "hybrid"
)

// Event 活動文件，slug 為對外唯一識別，內部 ID 不輸出
type Event struct {
	ID          int       `json:"-" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required"`
	Slug        string    `json:"slug" db:"slug" validate:"required"`
	Description string    `json:"description" db:"description" validate:"required"`
	Overview    string    `json:"overview" db:"overview" validate:"required"`
	Image       string    `json:"image" db:"image" validate:"required"`
	Venue       string    `json:"venue" db:"venue" validate:"required"`
	Location    string    `json:"location" db:"location" validate:"required"`
	Date        string    `json:"date" db:"date" validate:"required"`
	Time        string    `json:"time" db:"time" validate:"required"`
	Mode        EventMode `json:"mode" db:"mode" validate:"required,oneof=online offline hybrid"`
	Audience    string    `json:"audience" db:"audience" validate:"required"`
	Agenda      []string  `json:"agenda" db:"agenda" validate:"required,min=1,dive,required"`
	Organizer   string    `json:"organizer" db:"organizer" validate:"required"`
	Tags        []string  `json:"tags" db:"tags" validate:"required,min=1,dive,required"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateEventParams 部分更新，nil 欄位代表未變更
type UpdateEventParams struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *EventMode
	Audience    *string
	Agenda      []string
	Organizer   *string
	Tags        []string
}

// IsEmpty 沒有任何欄位需要更新
func (p UpdateEventParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Overview == nil && p.Image == nil &&
		p.Venue == nil && p.Location == nil && p.Date == nil && p.Time == nil && p.Mode == nil &&
		p.Audience == nil && p.Agenda == nil && p.Organizer == nil && p.Tags == nil
}

// EventResponse 統一的成功回應格式
type EventResponse struct {
	Success bool   `json:"success"`
	Data    *Event `json:"data"`
}

type EventListResponse struct {
	Success bool     `json:"success"`
	Data    []*Event `json:"data"`
}

type EventField string

const (
	FieldTitle       EventField = "title"
	FieldDescription EventField = "description"
	FieldOverview    EventField = "overview"
	FieldImage       EventField = "image"
	FieldVenue       EventField = "venue"
	FieldLocation    EventField = "location"
	FieldDate        EventField = "date"
	FieldTime        EventField = "time"
	FieldMode        EventField = "mode"
	FieldAudience    EventField = "audience"
	FieldAgenda      EventField = "agenda"
	FieldOrganizer   EventField = "organizer"
	FieldTags        EventField = "tags"
)

// AllEventFields 建立新活動時視為全部欄位皆已變更
var AllEventFields = []EventField{
	FieldTitle, FieldDescription, FieldOverview, FieldImage, FieldVenue, FieldLocation,
	FieldDate, FieldTime, FieldMode, FieldAudience, FieldAgenda, FieldOrganizer, FieldTags,
}

// FieldSet 本次寫入有變更的欄位
type FieldSet map[EventField]struct{}

func NewFieldSet(fields ...EventField) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func (s FieldSet) Has(field EventField) bool {
	_, ok := s[field]
	return ok
}

// ApplyTo 將非 nil 欄位寫入 event，並回傳變更的欄位集合
func (p UpdateEventParams) ApplyTo(event *Event) FieldSet {
	changed := NewFieldSet()
	setString := func(field EventField, src *string, dst *string) {
		if src != nil {
			*dst = *src
			changed[field] = struct{}{}
		}
	}

	setString(FieldTitle, p.Title, &event.Title)
	setString(FieldDescription, p.Description, &event.Description)
	setString(FieldOverview, p.Overview, &event.Overview)
	setString(FieldImage, p.Image, &event.Image)
	setString(FieldVenue, p.Venue, &event.Venue)
	setString(FieldLocation, p.Location, &event.Location)
	setString(FieldDate, p.Date, &event.Date)
	setString(FieldTime, p.Time, &event.Time)
	setString(FieldAudience, p.Audience, &event.Audience)
	setString(FieldOrganizer, p.Organizer, &event.Organizer)

	if p.Mode != nil {
		event.Mode = *p.Mode
		changed[FieldMode] = struct{}{}
	}
	if p.Agenda != nil {
		event.Agenda = p.Agenda
		changed[FieldAgenda] = struct{}{}
	}
	if p.Tags != nil {
		event.Tags = p.Tags
		changed[FieldTags] = struct{}{}
	}

	return changed
}

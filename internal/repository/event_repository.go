package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-lookup/internal/model"
	apperrors "go-gin-event-lookup/pkg/app_errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolProvider 延遲取得連線池，由 database.Connector 實作
type PoolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	Update(ctx context.Context, id int, event *model.Event, changed model.FieldSet) (*model.Event, error)
}

type EventRepositoryImpl struct {
	db PoolProvider
}

func NewEventRepository(db PoolProvider) EventRepository {
	return &EventRepositoryImpl{
		db: db,
	}
}

const eventColumns = `id, title, slug, description, overview, image, venue, location,
	date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Overview,
		&event.Image,
		&event.Venue,
		&event.Location,
		&event.Date,
		&event.Time,
		&event.Mode,
		&event.Audience,
		&event.Agenda,
		&event.Organizer,
		&event.Tags,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location,
			date, time, mode, audience, agenda, organizer, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + eventColumns

	created, err := scanEvent(pool.QueryRow(ctx, query,
		event.Title, event.Slug, event.Description, event.Overview, event.Image,
		event.Venue, event.Location, event.Date, event.Time, string(event.Mode),
		event.Audience, event.Agenda, event.Organizer, event.Tags,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC, time::time ASC, id ASC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, translateError(err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`

	event, err := scanEvent(pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, translateError(err)
	}
	return event, nil
}

// Update 只寫入 changed 內的欄位，標題變更時一併寫入 slug
func (r *EventRepositoryImpl) Update(ctx context.Context, id int, event *model.Event, changed model.FieldSet) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if changed.Has(model.FieldTitle) {
		add("title", event.Title)
		add("slug", event.Slug)
	}
	if changed.Has(model.FieldDescription) {
		add("description", event.Description)
	}
	if changed.Has(model.FieldOverview) {
		add("overview", event.Overview)
	}
	if changed.Has(model.FieldImage) {
		add("image", event.Image)
	}
	if changed.Has(model.FieldVenue) {
		add("venue", event.Venue)
	}
	if changed.Has(model.FieldLocation) {
		add("location", event.Location)
	}
	if changed.Has(model.FieldDate) {
		add("date", event.Date)
	}
	if changed.Has(model.FieldTime) {
		add("time", event.Time)
	}
	if changed.Has(model.FieldMode) {
		add("mode", string(event.Mode))
	}
	if changed.Has(model.FieldAudience) {
		add("audience", event.Audience)
	}
	if changed.Has(model.FieldAgenda) {
		add("agenda", event.Agenda)
	}
	if changed.Has(model.FieldOrganizer) {
		add("organizer", event.Organizer)
	}
	if changed.Has(model.FieldTags) {
		add("tags", event.Tags)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	add("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := scanEvent(pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return updated, nil
}

// translateError 將 pgx 錯誤轉為 apperrors，其餘原樣回傳
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrEventNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", apperrors.ErrSlugConflict, pgErr.ConstraintName)
		case pgErr.Code == pgerrcode.CheckViolation, pgerrcode.IsDataException(pgErr.Code):
			return fmt.Errorf("%w: sqlstate %s", apperrors.ErrStorageValidation, pgErr.Code)
		}
	}
	return err
}

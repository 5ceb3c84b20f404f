package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventura/internal/domain"

	"github.com/lib/pq"
)

// Tables holding rows that reference an event, deleted before the event itself.
var eventDependentTables = []string{
	"comments",
	"event_likes",
	"event_interests",
	"reports",
	"event_images",
}

const eventSelect = `
	SELECT e.id, e.title, e.description, e.date, e.location, e.price, e.status,
	       e.category_id, e.organizer_id, e.created_at, e.updated_at,
	       c.name, u.name
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.organizer_id
`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{Category: &domain.Category{}, Organizer: &domain.UserSummary{}}
	var status string
	err := s.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.Price, &status,
		&e.CategoryID, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		&e.Category.Name, &e.Organizer.Name,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	e.Category.ID = e.CategoryID
	e.Organizer.ID = e.OrganizerID
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachImages(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, eventSelect+` WHERE e.id = ANY($1) ORDER BY e.date, e.id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, page domain.PaginationParams) ([]*domain.Event, int, error) {
	where, args := buildEventFilter(filter)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events e`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := eventSelect + where + ` ORDER BY e.date, e.id`
	if limit := page.Limit(); limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, page.Offset())
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachImages(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// buildEventFilter returns a WHERE clause (with leading space) and its positional args.
func buildEventFilter(f domain.EventFilter) (string, []any) {
	status := f.Status
	if status == "" {
		status = domain.EventStatusActive
	}
	clauses := []string{"e.status = $1"}
	args := []any{string(status)}
	add := func(format string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}
	if f.CategoryID > 0 {
		add("e.category_id = $%d", f.CategoryID)
	}
	if f.FreeOnly {
		clauses = append(clauses, "e.price = 0")
	}
	if f.MinPrice != nil {
		add("e.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("e.price <= $%d", *f.MaxPrice)
	}
	if f.From != nil {
		add("e.date >= $%d", *f.From)
	}
	if f.To != nil {
		add("e.date <= $%d", *f.To)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(e.title ILIKE $%d OR e.location ILIKE $%d)", n, n))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) attachImages(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Event, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		e.Images = []*domain.EventImage{}
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, url, position FROM event_images
		 WHERE event_id = ANY($1)
		 ORDER BY event_id, position, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		img := &domain.EventImage{}
		if err := rows.Scan(&img.ID, &img.EventID, &img.URL, &img.Position); err != nil {
			return err
		}
		if e, ok := byID[img.EventID]; ok {
			e.Images = append(e.Images, img)
		}
	}
	return rows.Err()
}

func (r *eventRepository) ListUpcomingActive(ctx context.Context, after time.Time) ([]*domain.UpcomingEvent, error) {
	query := `
		SELECT e.id, e.title, e.date, e.location, e.status, u.id, u.email, u.name
		FROM events e
		LEFT JOIN event_interests i ON i.event_id = e.id AND i.notifications_enabled
		LEFT JOIN users u ON u.id = i.user_id
		WHERE e.date > $1 AND e.status = $2
		ORDER BY e.date, e.id, i.id
	`
	rows, err := r.DB.QueryContext(ctx, query, after, string(domain.EventStatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	upcoming := make([]*domain.UpcomingEvent, 0)
	var current *domain.UpcomingEvent
	for rows.Next() {
		e := &domain.Event{}
		var status string
		var userID sql.NullInt64
		var email, name sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &status, &userID, &email, &name); err != nil {
			return nil, err
		}
		if current == nil || current.Event.ID != e.ID {
			e.Status = domain.EventStatus(status)
			current = &domain.UpcomingEvent{Event: e, Interested: []*domain.InterestedUser{}}
			upcoming = append(upcoming, current)
		}
		if userID.Valid {
			current.Interested = append(current.Interested, &domain.InterestedUser{
				UserID: userID.Int64,
				Email:  email.String,
				Name:   name.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return upcoming, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
		}
		return err
	}
	for _, table := range eventDependentTables {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1`, table), id); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return tx.Commit()
}

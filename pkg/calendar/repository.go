package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	// GetEvents returns events whose span touches [from, to], ordered by start time.
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&RepositoryImpl{db: r.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const eventColumns = `id, name, start_time, end_time, is_multi_day, type, created_at, updated_at`

func (r *RepositoryImpl) StoreEvent(ctx context.Context, event Event) (Event, error) {
	query := `INSERT INTO calendar_event (` + eventColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.getQueryer().Exec(ctx, query,
		event.ID,
		event.Name,
		event.StartTime,
		event.EndTime,
		event.IsMultiDay,
		string(event.Type),
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("failed to insert event: %w", err)
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, id string) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_event WHERE id = $1`
	event, err := scanEvent(r.getQueryer().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, err
	}
	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM calendar_event
			  WHERE start_time <= $2 AND end_time >= $1
			  ORDER BY start_time, id`
	rows, err := r.getQueryer().Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, event Event) (Event, error) {
	query := `UPDATE calendar_event
			  SET name = $2, start_time = $3, end_time = $4, is_multi_day = $5, type = $6, updated_at = $7
			  WHERE id = $1`
	result, err := r.getQueryer().Exec(ctx, query,
		event.ID,
		event.Name,
		event.StartTime,
		event.EndTime,
		event.IsMultiDay,
		string(event.Type),
		event.UpdatedAt,
	)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.getQueryer().Exec(ctx, `DELETE FROM calendar_event WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (Event, error) {
	var event Event
	var eventType string
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.StartTime,
		&event.EndTime,
		&event.IsMultiDay,
		&eventType,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	event.Type = EventType(eventType)
	return event, nil
}

package class

import (
	"context"
	"database/sql"
	"errors"

	"gymlite/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTypeNotFound      = errors.New("class type not found")
	ErrDuplicateTypeName = errors.New("a class type with this name already exists")
	ErrTypeInUse         = errors.New("class type still has scheduled sessions")
	ErrSessionNotFound   = errors.New("class session not found")
	ErrBadReference      = errors.New("trainer or class type does not exist")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateType(ctx context.Context, name string, description *string) (*ClassType, error) {
	query := `
		INSERT INTO class_types (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description
	`

	var ct ClassType
	err := r.db.GetContext(ctx, &ct, query, name, description)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateTypeName
		}
		return nil, err
	}

	return &ct, nil
}

func (r *repository) ListTypes(ctx context.Context) ([]ClassType, error) {
	query := `
		SELECT id, name, description
		FROM class_types
		ORDER BY LOWER(name)
	`

	var types []ClassType
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) DeleteType(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM class_types WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrTypeInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTypeNotFound
	}

	return nil
}

func (r *repository) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	query := `
		INSERT INTO class_sessions (trainer_id, class_type_id, name, description, starts_at, duration_minutes, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, trainer_id, class_type_id, name, description, starts_at, duration_minutes, capacity
	`

	var created Session
	err := r.db.GetContext(ctx, &created, query,
		s.TrainerID, s.ClassTypeID, s.Name, s.Description, s.StartsAt, s.DurationMinutes, s.Capacity)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			if db.ConstraintName(err) == "class_sessions_class_type_id_fkey" {
				return nil, ErrTypeNotFound
			}
			return nil, ErrBadReference
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindSessionByID(ctx context.Context, id int) (*Session, error) {
	query := `
		SELECT id, trainer_id, class_type_id, name, description, starts_at, duration_minutes, capacity
		FROM class_sessions
		WHERE id = $1
	`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListSessions(ctx context.Context, filter SessionFilter) ([]SessionDetail, error) {
	query := `
		SELECT s.id, s.trainer_id, s.class_type_id, s.name, s.description,
		       s.starts_at, s.duration_minutes, s.capacity,
		       t.first_name || ' ' || t.last_name AS trainer_name,
		       ct.name AS type_name,
		       COUNT(r.id) FILTER (WHERE r.status = 'confirmed') AS reserved_count
		FROM class_sessions s
		JOIN trainers t ON t.id = s.trainer_id
		JOIN class_types ct ON ct.id = s.class_type_id
		LEFT JOIN reservations r ON r.class_session_id = s.id
	`

	switch filter {
	case FilterUpcoming, FilterAvailable:
		query += " WHERE s.starts_at > NOW()"
	case FilterPast:
		query += " WHERE s.starts_at <= NOW()"
	}

	query += `
		GROUP BY s.id, t.first_name, t.last_name, ct.name`

	if filter == FilterAvailable {
		query += `
		HAVING COUNT(r.id) FILTER (WHERE r.status = 'confirmed') < s.capacity`
	}

	query += `
		ORDER BY s.starts_at ASC`

	var sessions []SessionDetail
	err := r.db.SelectContext(ctx, &sessions, query)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].Available = sessions[i].Capacity - sessions[i].ReservedCount
		sessions[i].IsFull = sessions[i].Available <= 0
	}

	return sessions, nil
}

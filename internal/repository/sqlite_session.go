package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

const sessionColumns = `id, folder, classification, project_id, project_name,
	started_at, last_activity, description, current_activity, activity_log, activity_minutes`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Folder,
		string(s.Classification),
		nullableIntToValue(s.ProjectID),
		s.ProjectName,
		formatTime(s.Begin),
		formatTime(s.LastActivity),
		s.Description,
		s.CurrentActivity,
		marshalJSON(s.ActivityLog, "[]"),
		marshalJSON(s.ActivityMinutes, "{}"),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByFolder(ctx context.Context, folder string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE folder = ? ORDER BY started_at`
	rows, err := r.db.QueryContext(ctx, query, folder)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by folder: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	query := `UPDATE sessions SET
		folder = ?, classification = ?, project_id = ?, project_name = ?,
		started_at = ?, last_activity = ?, description = ?, current_activity = ?,
		activity_log = ?, activity_minutes = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Folder,
		string(s.Classification),
		nullableIntToValue(s.ProjectID),
		s.ProjectName,
		formatTime(s.Begin),
		formatTime(s.LastActivity),
		s.Description,
		s.CurrentActivity,
		marshalJSON(s.ActivityLog, "[]"),
		marshalJSON(s.ActivityMinutes, "{}"),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	s, raw, err := scanSessionFields(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return populateSession(s, raw)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s, raw, err := scanSessionFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		session, err := populateSession(s, raw)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// rawSessionFields holds column values that need parsing after the scan.
type rawSessionFields struct {
	classification  string
	projectID       sql.NullInt64
	begin           string
	lastActivity    string
	activityLog     string
	activityMinutes string
}

func scanSessionFields(scan func(dest ...any) error) (*domain.Session, rawSessionFields, error) {
	var s domain.Session
	var raw rawSessionFields
	err := scan(
		&s.ID, &s.Folder, &raw.classification, &raw.projectID, &s.ProjectName,
		&raw.begin, &raw.lastActivity, &s.Description, &s.CurrentActivity,
		&raw.activityLog, &raw.activityMinutes,
	)
	return &s, raw, err
}

// populateSession fills in parsed fields on a Session after scanning raw strings.
func populateSession(s *domain.Session, raw rawSessionFields) (*domain.Session, error) {
	var err error
	s.Classification = domain.Classification(raw.classification)
	s.ProjectID = intFromNullable(raw.projectID)
	if s.Begin, err = parseTime(raw.begin); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if s.LastActivity, err = parseTime(raw.lastActivity); err != nil {
		return nil, fmt.Errorf("parsing last_activity: %w", err)
	}
	if err = json.Unmarshal([]byte(raw.activityLog), &s.ActivityLog); err != nil {
		return nil, fmt.Errorf("parsing activity_log: %w", err)
	}
	if err = json.Unmarshal([]byte(raw.activityMinutes), &s.ActivityMinutes); err != nil {
		return nil, fmt.Errorf("parsing activity_minutes: %w", err)
	}
	return s, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
)

// SQLiteLogRepo implements LogRepo using a SQLite database. For the
// append-plus-total and per-group marking guarantees, construct it on a
// transaction DBTX from the unit of work.
type SQLiteLogRepo struct {
	db db.DBTX
}

// NewSQLiteLogRepo creates a new SQLiteLogRepo.
func NewSQLiteLogRepo(db db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: db}
}

const logColumns = `id, date, folder, classification, project_id, project_name,
	activity, started_at, ended_at, billed_minutes, real_minutes, pushed, description,
	commits, filled_from, created_at`

func (r *SQLiteLogRepo) Append(ctx context.Context, e *domain.LogEntry) error {
	query := `INSERT INTO log_entries (` + logColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Date,
		e.Folder,
		string(e.Classification),
		nullableIntToValue(e.ProjectID),
		e.ProjectName,
		e.Activity,
		formatTime(e.Begin),
		formatTime(e.End),
		e.BilledMinutes,
		e.RealMinutes,
		boolToInt(e.Pushed),
		e.Description,
		marshalJSON(e.Commits, "[]"),
		e.FilledFrom,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting log entry: %w", err)
	}

	// The daily total is maintained here, at append time, and nowhere else.
	total := `INSERT INTO daily_totals (date, billed, real) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			billed = billed + excluded.billed,
			real = real + excluded.real`
	if _, err := r.db.ExecContext(ctx, total, e.Date, e.BilledMinutes, e.RealMinutes); err != nil {
		return fmt.Errorf("updating daily total: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) GetByID(ctx context.Context, id string) (*domain.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	e, raw, err := scanEntryFields(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning log entry: %w", err)
	}
	return populateEntry(e, raw)
}

func (r *SQLiteLogRepo) List(ctx context.Context) ([]*domain.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries ORDER BY started_at`
	return r.queryEntries(ctx, query)
}

func (r *SQLiteLogRepo) ListByDate(ctx context.Context, date string) ([]*domain.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries WHERE date = ? ORDER BY started_at`
	return r.queryEntries(ctx, query, date)
}

func (r *SQLiteLogRepo) ListUnpushed(ctx context.Context) ([]*domain.LogEntry, error) {
	query := `SELECT ` + logColumns + ` FROM log_entries WHERE pushed = 0 ORDER BY started_at`
	return r.queryEntries(ctx, query)
}

func (r *SQLiteLogRepo) PushedMinutes(ctx context.Context, date string) (int, error) {
	query := `SELECT COALESCE(SUM(billed_minutes), 0) FROM log_entries
		WHERE date = ? AND pushed = 1`
	var minutes int
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("summing pushed minutes: %w", err)
	}
	return minutes, nil
}

func (r *SQLiteLogRepo) DailyTotal(ctx context.Context, date string) (*domain.DailyTotal, error) {
	query := `SELECT billed, real FROM daily_totals WHERE date = ?`
	t := domain.DailyTotal{Date: date}
	err := r.db.QueryRowContext(ctx, query, date).Scan(&t.Billed, &t.Real)
	if err == sql.ErrNoRows {
		// A day without entries reads as zero, not as missing.
		return &t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading daily total: %w", err)
	}
	return &t, nil
}

func (r *SQLiteLogRepo) SetDescription(ctx context.Context, id, description string) error {
	return r.updateUnpushed(ctx, id, "description", description)
}

func (r *SQLiteLogRepo) SetActivity(ctx context.Context, id, activity string) error {
	return r.updateUnpushed(ctx, id, "activity", activity)
}

// updateUnpushed mutates a column on an entry only while it is unpushed;
// pushed entries are immutable.
func (r *SQLiteLogRepo) updateUnpushed(ctx context.Context, id, column, value string) error {
	query := fmt.Sprintf(`UPDATE log_entries SET %s = ? WHERE id = ? AND pushed = 0`, column)
	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating log entry %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating log entry %s: %w", column, err)
	}
	if n == 0 {
		return fmt.Errorf("unpushed log entry: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteLogRepo) MarkPushed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := `UPDATE log_entries SET pushed = 1 WHERE id IN (` + placeholders + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("marking entries pushed: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepo) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LogEntry
	for rows.Next() {
		e, raw, err := scanEntryFields(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning log entry row: %w", err)
		}
		entry, err := populateEntry(e, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}
	return entries, nil
}

// rawEntryFields holds column values that need parsing after the scan.
type rawEntryFields struct {
	classification string
	projectID      sql.NullInt64
	begin          string
	end            string
	pushed         int
	commits        string
	createdAt      string
}

func scanEntryFields(scan func(dest ...any) error) (*domain.LogEntry, rawEntryFields, error) {
	var e domain.LogEntry
	var raw rawEntryFields
	err := scan(
		&e.ID, &e.Date, &e.Folder, &raw.classification, &raw.projectID,
		&e.ProjectName, &e.Activity, &raw.begin, &raw.end,
		&e.BilledMinutes, &e.RealMinutes, &raw.pushed, &e.Description,
		&raw.commits, &e.FilledFrom, &raw.createdAt,
	)
	return &e, raw, err
}

// populateEntry fills in parsed fields on a LogEntry after scanning raw strings.
func populateEntry(e *domain.LogEntry, raw rawEntryFields) (*domain.LogEntry, error) {
	var err error
	e.Classification = domain.Classification(raw.classification)
	e.ProjectID = intFromNullable(raw.projectID)
	e.Pushed = intToBool(raw.pushed)
	if e.Begin, err = parseTime(raw.begin); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if e.End, err = parseTime(raw.end); err != nil {
		return nil, fmt.Errorf("parsing ended_at: %w", err)
	}
	if e.CreatedAt, err = parseTime(raw.createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err = json.Unmarshal([]byte(raw.commits), &e.Commits); err != nil {
		return nil, fmt.Errorf("parsing commits: %w", err)
	}
	return e, nil
}

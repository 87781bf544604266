package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/nectime/internal/db"
	"github.com/alexanderramin/nectime/internal/domain"
)

// SQLiteMappingRepo implements MappingRepo using a SQLite database.
type SQLiteMappingRepo struct {
	db db.DBTX
}

// NewSQLiteMappingRepo creates a new SQLiteMappingRepo.
func NewSQLiteMappingRepo(db db.DBTX) *SQLiteMappingRepo {
	return &SQLiteMappingRepo{db: db}
}

const mappingColumns = `folder, classification, project_id, project_name, activity`

func (r *SQLiteMappingRepo) Get(ctx context.Context, folder string) (*domain.FolderMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM folder_mappings WHERE folder = ?`
	row := r.db.QueryRowContext(ctx, query, filepath.Clean(folder))
	return scanMapping(row)
}

// Resolve walks from folder up through its parents and returns the first
// mapping found, so a mapping on a workspace root covers its subfolders.
func (r *SQLiteMappingRepo) Resolve(ctx context.Context, folder string) (*domain.FolderMapping, error) {
	current := filepath.Clean(folder)
	for {
		m, err := r.Get(ctx, current)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, fmt.Errorf("folder mapping for %s: %w", folder, ErrNotFound)
		}
		current = parent
	}
}

func (r *SQLiteMappingRepo) Put(ctx context.Context, m *domain.FolderMapping) error {
	query := `INSERT INTO folder_mappings (` + mappingColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(folder) DO UPDATE SET
			classification = excluded.classification,
			project_id = excluded.project_id,
			project_name = excluded.project_name,
			activity = excluded.activity`
	_, err := r.db.ExecContext(ctx, query,
		filepath.Clean(m.Folder),
		string(m.Classification),
		nullableIntToValue(m.ProjectID),
		m.ProjectName,
		m.Activity,
	)
	if err != nil {
		return fmt.Errorf("upserting folder mapping: %w", err)
	}
	return nil
}

func (r *SQLiteMappingRepo) List(ctx context.Context) ([]*domain.FolderMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM folder_mappings ORDER BY folder`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing folder mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*domain.FolderMapping
	for rows.Next() {
		var m domain.FolderMapping
		var class string
		var projectID sql.NullInt64
		if err := rows.Scan(&m.Folder, &class, &projectID, &m.ProjectName, &m.Activity); err != nil {
			return nil, fmt.Errorf("scanning folder mapping row: %w", err)
		}
		m.Classification = domain.Classification(class)
		m.ProjectID = intFromNullable(projectID)
		mappings = append(mappings, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folder mappings: %w", err)
	}
	return mappings, nil
}

func (r *SQLiteMappingRepo) Delete(ctx context.Context, folder string) error {
	query := `DELETE FROM folder_mappings WHERE folder = ?`
	if _, err := r.db.ExecContext(ctx, query, filepath.Clean(folder)); err != nil {
		return fmt.Errorf("deleting folder mapping: %w", err)
	}
	return nil
}

func scanMapping(row *sql.Row) (*domain.FolderMapping, error) {
	var m domain.FolderMapping
	var class string
	var projectID sql.NullInt64
	err := row.Scan(&m.Folder, &class, &projectID, &m.ProjectName, &m.Activity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("folder mapping: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning folder mapping: %w", err)
	}
	m.Classification = domain.Classification(class)
	m.ProjectID = intFromNullable(projectID)
	return &m, nil
}

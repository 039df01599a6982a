package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const resourceColumns = `id, title, description, tags, uploader_ip, file_key, file_name,
       file_size, status, downloads, created_at, updated_at`

type sqlResourceRepository struct {
	db SQLQuerier
}

// NewSQLResourceRepository creates sqlResourceRepository that implements port.ResourceRepository
func NewSQLResourceRepository(db SQLQuerier) port.ResourceRepository {
	return &sqlResourceRepository{
		db: db,
	}
}

// Create inserts a resource. A zero CreatedAt defaults to now().
func (s *sqlResourceRepository) Create(ctx context.Context, resource domain.Resource) error {
	query := `INSERT INTO resources (id, title, description, tags, uploader_ip, file_key, file_name, file_size, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()), COALESCE($10, now()))`

	createdAt := sql.NullTime{Time: resource.CreatedAt, Valid: !resource.CreatedAt.IsZero()}

	_, err := s.db.ExecContext(ctx, query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.Tags,
		resource.UploaderAddress,
		resource.FileKey,
		resource.FileName,
		resource.FileSize,
		resource.Status,
		createdAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("resource %s: %w", resource.ID, domain.ErrConflict)
		}
		return fmt.Errorf("error inserting resource: %w", err)
	}
	return nil
}

// FindByID finds a resource whatever its status
func (s *sqlResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	res, err := scanResource(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

// UpdateStatus sets the status and bumps updated_at
func (s *sqlResourceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ResourceStatus) error {
	query := `UPDATE resources
              SET status = $1, updated_at = now()
              WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating resource status: %w", err)
	}
	return expectOneRow(result)
}

// AdvanceStatus moves the resource to `to` only while it is still in `from`
func (s *sqlResourceRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to domain.ResourceStatus) (bool, error) {
	query := `UPDATE resources
              SET status = $1, updated_at = now()
              WHERE id = $2 AND status = $3`

	result, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("error advancing resource status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}
	return affected == 1, nil
}

// IncrementDownloads adds one to the counter in a single statement
func (s *sqlResourceRepository) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE resources SET downloads = downloads + 1 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error incrementing downloads: %w", err)
	}
	return expectOneRow(result)
}

// Search returns approved resources, newest first
func (s *sqlResourceRepository) Search(ctx context.Context, q domain.SearchQuery, limit int) ([]domain.Resource, error) {
	var (
		conditions = []string{"status = 'approved'"}
		args       []any
	)

	if q.Query != "" {
		args = append(args, "%"+escapeLike(q.Query)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, n, n))
	}
	if q.Tag != "" {
		args = append(args, "%"+escapeLike(q.Tag)+"%")
		conditions = append(conditions, fmt.Sprintf(`tags ILIKE $%d ESCAPE '\'`, len(args)))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM resources WHERE %s ORDER BY created_at DESC LIMIT $%d`,
		resourceColumns, strings.Join(conditions, " AND "), len(args))

	return s.queryResources(ctx, query, args...)
}

// ListByStatus returns resources in status, oldest first
func (s *sqlResourceRepository) ListByStatus(ctx context.Context, status domain.ResourceStatus) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE status = $1 ORDER BY created_at ASC`
	return s.queryResources(ctx, query, status)
}

// ListTags counts approved resources per normalized tag
func (s *sqlResourceRepository) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	query := `
		SELECT tag, COUNT(DISTINCT id)
		FROM (
			SELECT id, lower(trim(t)) AS tag
			FROM resources, unnest(string_to_array(tags, ',')) AS t
			WHERE status = 'approved'
		) expanded
		WHERE tag <> ''
		GROUP BY tag
		ORDER BY COUNT(DISTINCT id) DESC, tag ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.TagCount, 0)
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

// Stats sums downloads over every resource and counts approved ones
func (s *sqlResourceRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	query := `SELECT COALESCE(SUM(downloads), 0), COUNT(*) FILTER (WHERE status = 'approved') FROM resources`

	var stats domain.Stats
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.Downloads, &stats.Resources); err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}
	return &stats, nil
}

const noDownloadEvents = `NOT EXISTS (SELECT 1 FROM download_events d WHERE d.resource_id = resources.id)`

// FindAbandoned finds uploads never finalized before createdBefore.
// Rows with download events are kept so the event log stays intact.
func (s *sqlResourceRepository) FindAbandoned(ctx context.Context, createdBefore time.Time) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + `
              FROM resources
              WHERE status = 'pending_upload' AND created_at < $1 AND ` + noDownloadEvents + `
              ORDER BY created_at ASC`
	return s.queryResources(ctx, query, createdBefore)
}

// Delete removes a resource that is still awaiting its upload
func (s *sqlResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resources WHERE id = $1 AND status = 'pending_upload' AND ` + noDownloadEvents

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}
	return expectOneRow(result)
}

func (s *sqlResourceRepository) queryResources(ctx context.Context, query string, args ...any) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying resources: %w", err)
	}
	defer rows.Close()

	resources := make([]domain.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource: %w", err)
		}
		resources = append(resources, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}
	return resources, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type dbResource struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Tags        string    `db:"tags"`
	UploaderIP  string    `db:"uploader_ip"`
	FileKey     string    `db:"file_key"`
	FileName    string    `db:"file_name"`
	FileSize    int64     `db:"file_size"`
	Status      string    `db:"status"`
	Downloads   int64     `db:"downloads"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var r dbResource
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Tags,
		&r.UploaderIP,
		&r.FileKey,
		&r.FileName,
		&r.FileSize,
		&r.Status,
		&r.Downloads,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.ToDomain(), nil
}

// ToDomain converts to domain.Resource
func (r *dbResource) ToDomain() *domain.Resource {
	return &domain.Resource{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Tags:            r.Tags,
		UploaderAddress: r.UploaderIP,
		FileKey:         r.FileKey,
		FileName:        r.FileName,
		FileSize:        r.FileSize,
		Status:          domain.ResourceStatus(r.Status),
		Downloads:       r.Downloads,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

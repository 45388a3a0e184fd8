package repositories

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/aaronbarnaby/create-release-action/internal/models"
)

// ReleaseRepository handles database operations for generated releases
type ReleaseRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewReleaseRepository creates a new ReleaseRepository
func NewReleaseRepository(db *sql.DB) *ReleaseRepository {
	return &ReleaseRepository{db: db}
}

// Create stores a generated release
func (r *ReleaseRepository) Create(release *models.Release) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := json.Marshal(release.Records)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO releases (id, repository, tag_name, previous_tag, body, commit_count, contributor_count, records, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		release.ID,
		release.Repository,
		release.TagName,
		release.PreviousTag,
		release.Body,
		release.CommitCount,
		release.ContributorCount,
		string(records),
		release.CreatedAt,
	)
	return err
}

// GetByID retrieves a release by ID, or nil when it does not exist
func (r *ReleaseRepository) GetByID(id string) (*models.Release, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, repository, tag_name, previous_tag, body, commit_count, contributor_count, records, created_at
		FROM releases WHERE id = ?
	`

	release := &models.Release{}
	var records string
	err := r.db.QueryRow(query, id).Scan(
		&release.ID,
		&release.Repository,
		&release.TagName,
		&release.PreviousTag,
		&release.Body,
		&release.CommitCount,
		&release.ContributorCount,
		&records,
		&release.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(records), &release.Records); err != nil {
		return nil, err
	}
	return release, nil
}

// ListByRepository retrieves all releases for a repository, newest first
func (r *ReleaseRepository) ListByRepository(repository string) ([]*models.Release, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Records are omitted from listings; GetByID loads them when needed
	query := `
		SELECT id, repository, tag_name, previous_tag, body, commit_count, contributor_count, created_at
		FROM releases WHERE repository = ? ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, repository)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []*models.Release
	for rows.Next() {
		release := &models.Release{}
		err := rows.Scan(
			&release.ID,
			&release.Repository,
			&release.TagName,
			&release.PreviousTag,
			&release.Body,
			&release.CommitCount,
			&release.ContributorCount,
			&release.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}
	return releases, rows.Err()
}

// Delete removes a release from the history
func (r *ReleaseRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec("DELETE FROM releases WHERE id = ?", id)
	return err
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

type DBInterface interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type PostgresStore struct {
	db DBInterface
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	if db, ok := s.db.(*sqlx.DB); ok {
		return db.Close()
	}
	return nil
}

// SaveArtifact inserts a new artifact record
func (s *PostgresStore) SaveArtifact(ctx context.Context, a models.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (artifact_id, artifact_type, organization_id, step_id, task_id, workflow_run_id, workflow_run_block_id, data, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ArtifactID, a.ArtifactType, a.OrganizationID, a.StepID, a.TaskID, a.WorkflowRunID, a.WorkflowRunBlockID, a.Data, a.CreatedAt, a.ModifiedAt)
	if err != nil {
		return fmt.Errorf("save artifact %s: %w", a.ArtifactID, err)
	}
	return nil
}

// GetArtifact retrieves an artifact by ID within an organization
func (s *PostgresStore) GetArtifact(ctx context.Context, artifactID, organizationID string) (models.Artifact, error) {
	var a models.Artifact
	err := s.db.GetContext(ctx, &a, "SELECT * FROM artifacts WHERE artifact_id = $1 AND organization_id = $2", artifactID, organizationID)
	if err == sql.ErrNoRows {
		return models.Artifact{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Artifact{}, err
	}
	return a, nil
}

// GetArtifactByEntity retrieves the artifact scoped to the given entity id
// fields, matching null columns as null. Returns (nil, nil) when absent.
func (s *PostgresStore) GetArtifactByEntity(ctx context.Context, artifactType models.ArtifactType, ids models.EntityIDs, organizationID string) (*models.Artifact, error) {
	var a models.Artifact
	err := s.db.GetContext(ctx, &a, `
		SELECT * FROM artifacts
		WHERE artifact_type = $1
		AND organization_id = $2
		AND step_id IS NOT DISTINCT FROM $3
		AND task_id IS NOT DISTINCT FROM $4
		AND workflow_run_id IS NOT DISTINCT FROM $5
		AND workflow_run_block_id IS NOT DISTINCT FROM $6
		ORDER BY created_at DESC
		LIMIT 1`,
		artifactType, organizationID, ids.StepID, ids.TaskID, ids.WorkflowRunID, ids.WorkflowRunBlockID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact by entity: %w", err)
	}
	return &a, nil
}

// UpdateArtifactData overwrites an artifact's stored bytes. The primary key
// column is validated against a fixed set before being interpolated.
func (s *PostgresStore) UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error {
	if !storage.PrimaryKeyColumns[primaryKey] {
		return fmt.Errorf("invalid primary key column: %s", primaryKey)
	}
	query := fmt.Sprintf(`
		UPDATE artifacts
		SET data = $1, modified_at = CURRENT_TIMESTAMP
		WHERE artifact_id = $2 AND organization_id = $3 AND %s IS NOT NULL`, primaryKey)
	res, err := s.db.ExecContext(ctx, query, data, artifactID, organizationID)
	if err != nil {
		return fmt.Errorf("update artifact %s: %w", artifactID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListArtifacts(ctx context.Context, organizationID string) ([]models.Artifact, error) {
	artifacts := []models.Artifact{}
	err := s.db.SelectContext(ctx, &artifacts, "SELECT * FROM artifacts WHERE organization_id = $1 ORDER BY created_at DESC", organizationID)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// SaveObserverCruise inserts a new observer cruise record
func (s *PostgresStore) SaveObserverCruise(ctx context.Context, c models.ObserverCruise) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observer_cruises (observer_cruise_id, status, organization_id, workflow_run_id, workflow_id, workflow_permanent_id, prompt, url, summary, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ObserverCruiseID, c.Status, c.OrganizationID, c.WorkflowRunID, c.WorkflowID, c.WorkflowPermanentID, c.Prompt, c.URL, c.Summary, c.CreatedAt, c.ModifiedAt)
	if err != nil {
		return fmt.Errorf("save observer cruise %s: %w", c.ObserverCruiseID, err)
	}
	return nil
}

// GetObserverCruise retrieves a cruise by ID within an organization
func (s *PostgresStore) GetObserverCruise(ctx context.Context, cruiseID, organizationID string) (models.ObserverCruise, error) {
	var c models.ObserverCruise
	err := s.db.GetContext(ctx, &c, "SELECT * FROM observer_cruises WHERE observer_cruise_id = $1 AND organization_id = $2", cruiseID, organizationID)
	if err == sql.ErrNoRows {
		return models.ObserverCruise{}, storage.ErrNotFound
	}
	if err != nil {
		return models.ObserverCruise{}, err
	}
	return c, nil
}

// UpdateObserverCruiseStatus updates the status of a cruise
func (s *PostgresStore) UpdateObserverCruiseStatus(ctx context.Context, cruiseID, organizationID string, status models.ObserverCruiseStatus) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE observer_cruises SET status = $1, modified_at = CURRENT_TIMESTAMP WHERE observer_cruise_id = $2 AND organization_id = $3",
		status, cruiseID, organizationID)
	return err
}

// SaveObserverThought inserts a new observer thought record
func (s *PostgresStore) SaveObserverThought(ctx context.Context, th models.ObserverThought) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observer_thoughts (observer_thought_id, observer_cruise_id, organization_id, workflow_run_id, workflow_run_block_id, workflow_id, workflow_permanent_id, user_input, observation, thought, answer, observer_thought_type, observer_thought_scenario, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		th.ObserverThoughtID, th.ObserverCruiseID, th.OrganizationID, th.WorkflowRunID, th.WorkflowRunBlockID, th.WorkflowID, th.WorkflowPermanentID,
		th.UserInput, th.Observation, th.Thought, th.Answer, th.ThoughtType, th.ThoughtScenario, th.CreatedAt, th.ModifiedAt)
	if err != nil {
		return fmt.Errorf("save observer thought %s: %w", th.ObserverThoughtID, err)
	}
	return nil
}

// ListObserverThoughts retrieves all thoughts for a cruise in creation order
func (s *PostgresStore) ListObserverThoughts(ctx context.Context, cruiseID, organizationID string) ([]models.ObserverThought, error) {
	thoughts := []models.ObserverThought{}
	err := s.db.SelectContext(ctx, &thoughts,
		"SELECT * FROM observer_thoughts WHERE observer_cruise_id = $1 AND organization_id = $2 ORDER BY created_at",
		cruiseID, organizationID)
	if err != nil {
		return nil, err
	}
	return thoughts, nil
}

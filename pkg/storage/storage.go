package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/RudreshNarwal/skyvern/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for artifacts and observer runs.
type Store interface {
	// Artifact operations
	SaveArtifact(ctx context.Context, a models.Artifact) error
	GetArtifact(ctx context.Context, artifactID, organizationID string) (models.Artifact, error)
	// GetArtifactByEntity returns (nil, nil) when no artifact matches the
	// (type, entity ids, organization) triple.
	GetArtifactByEntity(ctx context.Context, artifactType models.ArtifactType, ids models.EntityIDs, organizationID string) (*models.Artifact, error)
	UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error
	ListArtifacts(ctx context.Context, organizationID string) ([]models.Artifact, error)

	// Observer operations
	SaveObserverCruise(ctx context.Context, c models.ObserverCruise) error
	GetObserverCruise(ctx context.Context, cruiseID, organizationID string) (models.ObserverCruise, error)
	UpdateObserverCruiseStatus(ctx context.Context, cruiseID, organizationID string, status models.ObserverCruiseStatus) error
	SaveObserverThought(ctx context.Context, th models.ObserverThought) error
	ListObserverThoughts(ctx context.Context, cruiseID, organizationID string) ([]models.ObserverThought, error)

	Close() error
}

// PrimaryKeyColumns are the entity id columns an artifact update may be
// keyed on.
var PrimaryKeyColumns = map[string]bool{
	"step_id":               true,
	"task_id":               true,
	"workflow_run_id":       true,
	"workflow_run_block_id": true,
}

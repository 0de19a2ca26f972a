// Package artifact owns artifact record lifecycle: id generation,
// timestamps, and delegation to the configured store.
package artifact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

type Manager struct {
	store storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// UpdateArtifactData overwrites a stored artifact's bytes. primaryKey names
// the entity id column the update is keyed on.
func (m *Manager) UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error {
	if err := m.store.UpdateArtifactData(ctx, artifactID, organizationID, data, primaryKey); err != nil {
		return errors.Wrapf(err, "update artifact %s", artifactID)
	}
	return nil
}

// CreateLogArtifact stores a new log artifact scoped to the given entity
// id fields and organization.
func (m *Manager) CreateLogArtifact(ctx context.Context, organizationID string, ids models.EntityIDs, entityType models.LogEntityType, entityID string, artifactType models.ArtifactType, data []byte) error {
	now := time.Now().UTC()
	a := models.Artifact{
		ArtifactID:         uuid.NewString(),
		ArtifactType:       artifactType,
		OrganizationID:     organizationID,
		StepID:             ids.StepID,
		TaskID:             ids.TaskID,
		WorkflowRunID:      ids.WorkflowRunID,
		WorkflowRunBlockID: ids.WorkflowRunBlockID,
		Data:               data,
		CreatedAt:          now,
		ModifiedAt:         now,
	}
	if err := m.store.SaveArtifact(ctx, a); err != nil {
		return errors.Wrapf(err, "create %s artifact for %s %s", artifactType, entityType, entityID)
	}
	return nil
}

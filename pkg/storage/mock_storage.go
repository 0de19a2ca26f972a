package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/RudreshNarwal/skyvern/pkg/models"
)

// mockStore implements Store with in-memory storage
type mockStore struct {
	artifacts []models.Artifact
	cruises   []models.ObserverCruise
	thoughts  []models.ObserverThought
}

func NewMockStore() Store {
	return &mockStore{}
}

func (m *mockStore) Close() error {
	return nil
}

func (m *mockStore) SaveArtifact(ctx context.Context, a models.Artifact) error {
	for _, existing := range m.artifacts {
		if existing.ArtifactID == a.ArtifactID {
			return errors.New("artifact already exists")
		}
	}
	m.artifacts = append(m.artifacts, a)
	return nil
}

func (m *mockStore) GetArtifact(ctx context.Context, artifactID, organizationID string) (models.Artifact, error) {
	for _, a := range m.artifacts {
		if a.ArtifactID == artifactID && a.OrganizationID == organizationID {
			return a, nil
		}
	}
	return models.Artifact{}, ErrNotFound
}

func (m *mockStore) GetArtifactByEntity(ctx context.Context, artifactType models.ArtifactType, ids models.EntityIDs, organizationID string) (*models.Artifact, error) {
	for i, a := range m.artifacts {
		if a.ArtifactType != artifactType || a.OrganizationID != organizationID {
			continue
		}
		if ptrEq(a.StepID, ids.StepID) && ptrEq(a.TaskID, ids.TaskID) &&
			ptrEq(a.WorkflowRunID, ids.WorkflowRunID) && ptrEq(a.WorkflowRunBlockID, ids.WorkflowRunBlockID) {
			return &m.artifacts[i], nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error {
	if !PrimaryKeyColumns[primaryKey] {
		return errors.Errorf("invalid primary key column: %s", primaryKey)
	}
	for i, a := range m.artifacts {
		if a.ArtifactID == artifactID && a.OrganizationID == organizationID {
			m.artifacts[i].Data = data
			m.artifacts[i].ModifiedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockStore) ListArtifacts(ctx context.Context, organizationID string) ([]models.Artifact, error) {
	var out []models.Artifact
	for _, a := range m.artifacts {
		if a.OrganizationID == organizationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockStore) SaveObserverCruise(ctx context.Context, c models.ObserverCruise) error {
	for _, existing := range m.cruises {
		if existing.ObserverCruiseID == c.ObserverCruiseID {
			return errors.New("observer cruise already exists")
		}
	}
	m.cruises = append(m.cruises, c)
	return nil
}

func (m *mockStore) GetObserverCruise(ctx context.Context, cruiseID, organizationID string) (models.ObserverCruise, error) {
	for _, c := range m.cruises {
		if c.ObserverCruiseID == cruiseID && ptrEq(c.OrganizationID, &organizationID) {
			return c, nil
		}
	}
	return models.ObserverCruise{}, ErrNotFound
}

func (m *mockStore) UpdateObserverCruiseStatus(ctx context.Context, cruiseID, organizationID string, status models.ObserverCruiseStatus) error {
	for i, c := range m.cruises {
		if c.ObserverCruiseID == cruiseID && ptrEq(c.OrganizationID, &organizationID) {
			m.cruises[i].Status = status
			m.cruises[i].ModifiedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockStore) SaveObserverThought(ctx context.Context, th models.ObserverThought) error {
	m.thoughts = append(m.thoughts, th)
	return nil
}

func (m *mockStore) ListObserverThoughts(ctx context.Context, cruiseID, organizationID string) ([]models.ObserverThought, error) {
	var out []models.ObserverThought
	for _, th := range m.thoughts {
		if th.ObserverCruiseID == cruiseID && ptrEq(th.OrganizationID, &organizationID) {
			out = append(out, th)
		}
	}
	return out, nil
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

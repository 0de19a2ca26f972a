package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/RudreshNarwal/skyvern/internal/log"
	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

// ObserverService manages observer cruises: automated browsing runs and
// the reasoning steps recorded while they execute.
type ObserverService struct {
	store storage.Store
}

func NewObserverService(store storage.Store) *ObserverService {
	return &ObserverService{store: store}
}

// CreateCruise validates an inbound request and persists a new cruise in
// the created state.
func (s *ObserverService) CreateCruise(ctx context.Context, organizationID string, req models.CruiseRequest) (models.ObserverCruise, error) {
	if req.UserPrompt == "" {
		return models.ObserverCruise{}, errors.New("user prompt cannot be empty")
	}
	if err := req.Validate(); err != nil {
		return models.ObserverCruise{}, err
	}

	now := time.Now().UTC()
	cruise := models.ObserverCruise{
		ObserverCruiseID: "oc_" + uuid.NewString(),
		Status:           models.CreatedCruiseStatus,
		OrganizationID:   &organizationID,
		Prompt:           &req.UserPrompt,
		URL:              req.URL,
		CreatedAt:        now,
		ModifiedAt:       now,
	}
	if err := s.store.SaveObserverCruise(ctx, cruise); err != nil {
		return models.ObserverCruise{}, err
	}
	log.GetLogger().Infof("Created observer cruise '%s'", cruise.ObserverCruiseID)
	return cruise, nil
}

func (s *ObserverService) GetCruise(ctx context.Context, cruiseID, organizationID string) (models.ObserverCruise, error) {
	return s.store.GetObserverCruise(ctx, cruiseID, organizationID)
}

// UpdateCruiseStatus moves an existing cruise into a new lifecycle state.
func (s *ObserverService) UpdateCruiseStatus(ctx context.Context, cruiseID, organizationID string, status models.ObserverCruiseStatus) error {
	switch status {
	case models.CreatedCruiseStatus, models.QueuedCruiseStatus, models.RunningCruiseStatus,
		models.FailedCruiseStatus, models.TerminatedCruiseStatus, models.CanceledCruiseStatus,
		models.TimedOutCruiseStatus, models.CompletedCruiseStatus:
	default:
		return errors.Errorf("invalid cruise status: %s", status)
	}

	if _, err := s.store.GetObserverCruise(ctx, cruiseID, organizationID); err != nil {
		return err
	}
	if err := s.store.UpdateObserverCruiseStatus(ctx, cruiseID, organizationID, status); err != nil {
		return err
	}
	log.GetLogger().Infof("Updated observer cruise '%s' to status '%s'", cruiseID, status)
	return nil
}

// RecordThought persists one reasoning step for a cruise.
func (s *ObserverService) RecordThought(ctx context.Context, th models.ObserverThought) (models.ObserverThought, error) {
	if th.ObserverCruiseID == "" {
		return models.ObserverThought{}, errors.New("observer cruise ID cannot be empty")
	}
	if th.ObserverThoughtID == "" {
		th.ObserverThoughtID = "ot_" + uuid.NewString()
	}
	if th.ThoughtType == "" {
		th.ThoughtType = models.PlanThought
	}
	now := time.Now().UTC()
	th.CreatedAt = now
	th.ModifiedAt = now

	if err := s.store.SaveObserverThought(ctx, th); err != nil {
		return models.ObserverThought{}, err
	}
	return th, nil
}

func (s *ObserverService) ListThoughts(ctx context.Context, cruiseID, organizationID string) ([]models.ObserverThought, error) {
	return s.store.ListObserverThoughts(ctx, cruiseID, organizationID)
}

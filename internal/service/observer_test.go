package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RudreshNarwal/skyvern/internal/service"
	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

func TestObserverService(t *testing.T) {
	ctx := context.Background()

	newService := func() *service.ObserverService {
		return service.NewObserverService(storage.NewMockStore())
	}

	t.Run("CreateCruise", func(t *testing.T) {
		svc := newService()
		url := "https://example.com"
		cruise, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{
			UserPrompt: "compare prices",
			URL:        &url,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, cruise.ObserverCruiseID)
		assert.Equal(t, models.CreatedCruiseStatus, cruise.Status)

		saved, err := svc.GetCruise(ctx, cruise.ObserverCruiseID, "org_1")
		assert.NoError(t, err)
		assert.Equal(t, cruise.ObserverCruiseID, saved.ObserverCruiseID)
	})

	t.Run("CreateCruiseEmptyPrompt", func(t *testing.T) {
		svc := newService()
		_, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{})
		assert.Error(t, err)
	})

	t.Run("CreateCruiseBadURL", func(t *testing.T) {
		svc := newService()
		url := "ftp://example.com"
		_, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{UserPrompt: "p", URL: &url})
		assert.Error(t, err)
	})

	t.Run("UpdateCruiseStatus", func(t *testing.T) {
		svc := newService()
		cruise, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{UserPrompt: "p"})
		assert.NoError(t, err)

		assert.NoError(t, svc.UpdateCruiseStatus(ctx, cruise.ObserverCruiseID, "org_1", models.QueuedCruiseStatus))

		saved, err := svc.GetCruise(ctx, cruise.ObserverCruiseID, "org_1")
		assert.NoError(t, err)
		assert.Equal(t, models.QueuedCruiseStatus, saved.Status)
	})

	t.Run("UpdateCruiseStatusInvalid", func(t *testing.T) {
		svc := newService()
		cruise, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{UserPrompt: "p"})
		assert.NoError(t, err)

		err = svc.UpdateCruiseStatus(ctx, cruise.ObserverCruiseID, "org_1", "paused")
		assert.Error(t, err)
	})

	t.Run("UpdateUnknownCruise", func(t *testing.T) {
		svc := newService()
		err := svc.UpdateCruiseStatus(ctx, "oc_missing", "org_1", models.RunningCruiseStatus)
		assert.Equal(t, storage.ErrNotFound, err)
	})

	t.Run("RecordAndListThoughts", func(t *testing.T) {
		svc := newService()
		cruise, err := svc.CreateCruise(ctx, "org_1", models.CruiseRequest{UserPrompt: "p"})
		assert.NoError(t, err)

		obs := "three results on the page"
		org := "org_1"
		th, err := svc.RecordThought(ctx, models.ObserverThought{
			ObserverCruiseID: cruise.ObserverCruiseID,
			OrganizationID:   &org,
			Observation:      &obs,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, th.ObserverThoughtID)
		assert.Equal(t, models.PlanThought, th.ThoughtType)

		thoughts, err := svc.ListThoughts(ctx, cruise.ObserverCruiseID, "org_1")
		assert.NoError(t, err)
		assert.Len(t, thoughts, 1)
	})

	t.Run("RecordThoughtWithoutCruiseID", func(t *testing.T) {
		svc := newService()
		_, err := svc.RecordThought(ctx, models.ObserverThought{})
		assert.Error(t, err)
	})
}

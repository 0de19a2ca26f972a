// Package logartifact persists the per-run log buffer as durable artifacts.
// Each save targets one entity (step, task, workflow run, or workflow run
// block) and writes two representations: a raw JSON form and a formatted
// readable form. Saving is best-effort telemetry; failures are logged and
// never surface to the run being observed.
package logartifact

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/RudreshNarwal/skyvern/pkg/execctx"
	"github.com/RudreshNarwal/skyvern/pkg/models"
)

// ArtifactStore looks up existing artifacts by their producing entity.
type ArtifactStore interface {
	// GetArtifactByEntity returns nil when no artifact matches.
	GetArtifactByEntity(ctx context.Context, artifactType models.ArtifactType, ids models.EntityIDs, organizationID string) (*models.Artifact, error)
}

// ArtifactManager creates and overwrites artifact content.
type ArtifactManager interface {
	UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error
	CreateLogArtifact(ctx context.Context, organizationID string, ids models.EntityIDs, entityType models.LogEntityType, entityID string, artifactType models.ArtifactType, data []byte) error
}

// Encoder renders a log buffer to artifact text.
type Encoder interface {
	Encode(log []execctx.LogEntry) (string, error)
}

// PrimaryKeyField maps an entity type to the id column an artifact update
// is keyed on. Passing an unknown type is a programming error and panics.
func PrimaryKeyField(entityType models.LogEntityType) string {
	switch entityType {
	case models.StepLogEntity:
		return "step_id"
	case models.TaskLogEntity:
		return "task_id"
	case models.WorkflowRunLogEntity:
		return "workflow_run_id"
	case models.WorkflowRunBlockLogEntity:
		return "workflow_run_block_id"
	}
	panic(fmt.Sprintf("invalid log entity type: %s", entityType))
}

// Saver reconciles a run's accumulated log with its stored artifacts.
type Saver struct {
	store     ArtifactStore
	manager   ArtifactManager
	raw       Encoder
	formatted Encoder
	logger    *logrus.Logger
}

func NewSaver(store ArtifactStore, manager ArtifactManager, raw, formatted Encoder, logger *logrus.Logger) *Saver {
	return &Saver{
		store:     store,
		manager:   manager,
		raw:       raw,
		formatted: formatted,
		logger:    logger,
	}
}

// SaveStepLog persists the log entries belonging to one step.
func (s *Saver) SaveStepLog(ctx context.Context, stepID string) {
	s.saveEntityLog(ctx, models.StepLogEntity, stepID)
}

// SaveTaskLog persists the log entries belonging to one task.
func (s *Saver) SaveTaskLog(ctx context.Context, taskID string) {
	s.saveEntityLog(ctx, models.TaskLogEntity, taskID)
}

// SaveWorkflowRunLog persists the log entries belonging to one workflow run.
func (s *Saver) SaveWorkflowRunLog(ctx context.Context, workflowRunID string) {
	s.saveEntityLog(ctx, models.WorkflowRunLogEntity, workflowRunID)
}

// SaveWorkflowRunBlockLog persists the log entries belonging to one
// workflow run block.
func (s *Saver) SaveWorkflowRunBlockLog(ctx context.Context, workflowRunBlockID string) {
	s.saveEntityLog(ctx, models.WorkflowRunBlockLogEntity, workflowRunBlockID)
}

func (s *Saver) saveEntityLog(ctx context.Context, entityType models.LogEntityType, entityID string) {
	ec, ok := execctx.Current(ctx)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
		}).Warn("No execution context found, skipping log save")
		return
	}

	entityLog := Filter(ec.Log(), PrimaryKeyField(entityType), entityID)
	s.saveLogArtifacts(ctx, entityLog, entityType, entityID, ec.OrganizationID)
}

// saveLogArtifacts runs the two reconciliation passes. Each pass is
// independent: a failure is logged with full context and swallowed so the
// observed run is never disturbed.
func (s *Saver) saveLogArtifacts(ctx context.Context, log []execctx.LogEntry, entityType models.LogEntityType, entityID, organizationID string) {
	ids := models.EntityIDsFor(entityType, entityID)

	if err := s.reconcile(ctx, log, models.LogRawArtifactType, s.raw, entityType, entityID, organizationID, ids); err != nil {
		s.logSaveFailure(err, models.LogRawArtifactType, entityType, entityID, organizationID, ids)
	}
	if err := s.reconcile(ctx, log, models.LogFormattedArtifactType, s.formatted, entityType, entityID, organizationID, ids); err != nil {
		s.logSaveFailure(err, models.LogFormattedArtifactType, entityType, entityID, organizationID, ids)
	}
}

// reconcile encodes one representation and writes it: overwrite the
// existing artifact when one is stored for the entity, create otherwise.
func (s *Saver) reconcile(ctx context.Context, log []execctx.LogEntry, artifactType models.ArtifactType, enc Encoder, entityType models.LogEntityType, entityID, organizationID string, ids models.EntityIDs) error {
	encoded, err := enc.Encode(log)
	if err != nil {
		return err
	}

	artifact, err := s.store.GetArtifactByEntity(ctx, artifactType, ids, organizationID)
	if err != nil {
		return err
	}

	if artifact != nil {
		return s.manager.UpdateArtifactData(ctx, artifact.ArtifactID, organizationID, []byte(encoded), PrimaryKeyField(entityType))
	}
	return s.manager.CreateLogArtifact(ctx, organizationID, ids, entityType, entityID, artifactType, []byte(encoded))
}

func (s *Saver) logSaveFailure(err error, artifactType models.ArtifactType, entityType models.LogEntityType, entityID, organizationID string, ids models.EntityIDs) {
	s.logger.WithFields(logrus.Fields{
		"artifact_type":         artifactType,
		"entity_type":           entityType,
		"entity_id":             entityID,
		"organization_id":       organizationID,
		"step_id":               strOrEmpty(ids.StepID),
		"task_id":               strOrEmpty(ids.TaskID),
		"workflow_run_id":       strOrEmpty(ids.WorkflowRunID),
		"workflow_run_block_id": strOrEmpty(ids.WorkflowRunBlockID),
		"error":                 err,
	}).Error("Failed to save log artifact")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

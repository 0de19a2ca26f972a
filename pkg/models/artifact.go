package models

import "time"

type ArtifactType string

const (
	LogRawArtifactType       ArtifactType = "log_raw"
	LogFormattedArtifactType ArtifactType = "log"
)

type LogEntityType string

const (
	StepLogEntity             LogEntityType = "step"
	TaskLogEntity             LogEntityType = "task"
	WorkflowRunLogEntity      LogEntityType = "workflow_run"
	WorkflowRunBlockLogEntity LogEntityType = "workflow_run_block"
)

// Artifact is a persisted blob of run output, scoped to at most one
// producing entity and an organization.
type Artifact struct {
	ArtifactID         string       `json:"artifact_id" db:"artifact_id"`                               // Unique identifier (UUID)
	ArtifactType       ArtifactType `json:"artifact_type" db:"artifact_type"`                           // Kind of content stored
	OrganizationID     string       `json:"organization_id" db:"organization_id"`                       // Owning organization
	StepID             *string      `json:"step_id,omitempty" db:"step_id"`                             // Set when produced by a step
	TaskID             *string      `json:"task_id,omitempty" db:"task_id"`                             // Set when produced by a task
	WorkflowRunID      *string      `json:"workflow_run_id,omitempty" db:"workflow_run_id"`             // Set when produced by a workflow run
	WorkflowRunBlockID *string      `json:"workflow_run_block_id,omitempty" db:"workflow_run_block_id"` // Set when produced by a workflow run block
	Data               []byte       `json:"-" db:"data"`                                                // Stored bytes (UTF-8 text for logs)
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`                                 // Creation timestamp
	ModifiedAt         time.Time    `json:"modified_at" db:"modified_at"`                               // Last update timestamp
}

// EntityIDs carries the four possible entity id columns through artifact
// lookup and creation. At most one field is non-nil per save.
type EntityIDs struct {
	StepID             *string `db:"step_id"`
	TaskID             *string `db:"task_id"`
	WorkflowRunID      *string `db:"workflow_run_id"`
	WorkflowRunBlockID *string `db:"workflow_run_block_id"`
}

// EntityIDsFor builds the id set for a single entity reference: the field
// matching the entity type is set, the rest stay nil.
func EntityIDsFor(entityType LogEntityType, entityID string) EntityIDs {
	ids := EntityIDs{}
	switch entityType {
	case StepLogEntity:
		ids.StepID = &entityID
	case TaskLogEntity:
		ids.TaskID = &entityID
	case WorkflowRunLogEntity:
		ids.WorkflowRunID = &entityID
	case WorkflowRunBlockLogEntity:
		ids.WorkflowRunBlockID = &entityID
	}
	return ids
}

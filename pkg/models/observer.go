package models

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultWorkflowTitle is used when metadata generation yields no title.
const DefaultWorkflowTitle = "New Workflow"

type ObserverCruiseStatus string

const (
	CreatedCruiseStatus    ObserverCruiseStatus = "created"
	QueuedCruiseStatus     ObserverCruiseStatus = "queued"
	RunningCruiseStatus    ObserverCruiseStatus = "running"
	FailedCruiseStatus     ObserverCruiseStatus = "failed"
	TerminatedCruiseStatus ObserverCruiseStatus = "terminated"
	CanceledCruiseStatus   ObserverCruiseStatus = "canceled"
	TimedOutCruiseStatus   ObserverCruiseStatus = "timed_out"
	CompletedCruiseStatus  ObserverCruiseStatus = "completed"
)

// ObserverCruise is one automated browsing run driven by the observer.
type ObserverCruise struct {
	ObserverCruiseID    string               `json:"observer_cruise_id" db:"observer_cruise_id"`                 // Unique identifier
	Status              ObserverCruiseStatus `json:"status" db:"status"`                                         // Current lifecycle status
	OrganizationID      *string              `json:"organization_id,omitempty" db:"organization_id"`             // Owning organization
	WorkflowRunID       *string              `json:"workflow_run_id,omitempty" db:"workflow_run_id"`             // Backing workflow run, once started
	WorkflowID          *string              `json:"workflow_id,omitempty" db:"workflow_id"`                     // Generated workflow
	WorkflowPermanentID *string              `json:"workflow_permanent_id,omitempty" db:"workflow_permanent_id"` // Stable workflow identity across versions
	Prompt              *string              `json:"prompt,omitempty" db:"prompt"`                               // User goal driving the cruise
	URL                 *string              `json:"url,omitempty" db:"url"`                                     // Starting page
	Summary             *string              `json:"summary,omitempty" db:"summary"`                             // Final summary, once completed
	Output              any                  `json:"output,omitempty" db:"-"`                                    // Structured result payload
	CreatedAt           time.Time            `json:"created_at" db:"created_at"`
	ModifiedAt          time.Time            `json:"modified_at" db:"modified_at"`
}

type ObserverThoughtType string

const (
	PlanThought          ObserverThoughtType = "plan"
	MetadataThought      ObserverThoughtType = "metadata"
	UserGoalCheckThought ObserverThoughtType = "user_goal_check"
	InternalPlanThought  ObserverThoughtType = "internal_plan"
)

type ObserverThoughtScenario string

const (
	GeneratePlanScenario       ObserverThoughtScenario = "generate_plan"
	UserGoalCheckScenario      ObserverThoughtScenario = "user_goal_check"
	SummarizationScenario      ObserverThoughtScenario = "summarization"
	GenerateMetadataScenario   ObserverThoughtScenario = "generate_metadata"
	ExtractLoopValuesScenario  ObserverThoughtScenario = "extract_loop_values"
	GenerateTaskInLoopScenario ObserverThoughtScenario = "generate_task_in_loop"
	GenerateTaskScenario       ObserverThoughtScenario = "generate_general_task"
)

// ObserverThought is a single reasoning step recorded during a cruise.
type ObserverThought struct {
	ObserverThoughtID   string                   `json:"observer_thought_id" db:"observer_thought_id"`
	ObserverCruiseID    string                   `json:"observer_cruise_id" db:"observer_cruise_id"`
	OrganizationID      *string                  `json:"organization_id,omitempty" db:"organization_id"`
	WorkflowRunID       *string                  `json:"workflow_run_id,omitempty" db:"workflow_run_id"`
	WorkflowRunBlockID  *string                  `json:"workflow_run_block_id,omitempty" db:"workflow_run_block_id"`
	WorkflowID          *string                  `json:"workflow_id,omitempty" db:"workflow_id"`
	WorkflowPermanentID *string                  `json:"workflow_permanent_id,omitempty" db:"workflow_permanent_id"`
	UserInput           *string                  `json:"user_input,omitempty" db:"user_input"`
	Observation         *string                  `json:"observation,omitempty" db:"observation"`
	Thought             *string                  `json:"thought,omitempty" db:"thought"`
	Answer              *string                  `json:"answer,omitempty" db:"answer"`
	ThoughtType         ObserverThoughtType      `json:"observer_thought_type,omitempty" db:"observer_thought_type"`
	ThoughtScenario     *ObserverThoughtScenario `json:"observer_thought_scenario,omitempty" db:"observer_thought_scenario"`
	Output              map[string]any           `json:"output,omitempty" db:"-"`
	CreatedAt           time.Time                `json:"created_at" db:"created_at"`
	ModifiedAt          time.Time                `json:"modified_at" db:"modified_at"`
}

// ObserverMetadata describes the target page of a cruise.
type ObserverMetadata struct {
	URL           string `json:"url"`
	WorkflowTitle string `json:"workflow_title"`
}

func (m *ObserverMetadata) Validate() error {
	if m.WorkflowTitle == "" {
		m.WorkflowTitle = DefaultWorkflowTitle
	}
	return validateURL(m.URL)
}

// CruiseRequest is an inbound request to start a cruise.
type CruiseRequest struct {
	UserPrompt       string  `json:"user_prompt" binding:"required"`
	URL              *string `json:"url,omitempty"`
	BrowserSessionID *string `json:"browser_session_id,omitempty"`
}

func (r *CruiseRequest) Validate() error {
	if r.URL == nil {
		return nil
	}
	return validateURL(*r.URL)
}

// validateURL accepts absolute http(s) URLs with a host.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", raw)
	}
	return nil
}

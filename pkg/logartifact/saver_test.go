package logartifact_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/RudreshNarwal/skyvern/pkg/encode"
	"github.com/RudreshNarwal/skyvern/pkg/execctx"
	"github.com/RudreshNarwal/skyvern/pkg/logartifact"
	"github.com/RudreshNarwal/skyvern/pkg/models"
)

// fakeStore records lookups and serves canned artifacts keyed by type.
type fakeStore struct {
	existing map[models.ArtifactType]*models.Artifact
	err      error
	lookups  int
}

func (f *fakeStore) GetArtifactByEntity(ctx context.Context, artifactType models.ArtifactType, ids models.EntityIDs, organizationID string) (*models.Artifact, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.existing[artifactType], nil
}

type createCall struct {
	artifactType models.ArtifactType
	entityType   models.LogEntityType
	entityID     string
	ids          models.EntityIDs
	data         string
}

type updateCall struct {
	artifactID string
	primaryKey string
	data       string
}

// fakeManager records create/update calls.
type fakeManager struct {
	creates []createCall
	updates []updateCall
	err     error
}

func (f *fakeManager) UpdateArtifactData(ctx context.Context, artifactID, organizationID string, data []byte, primaryKey string) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, updateCall{artifactID: artifactID, primaryKey: primaryKey, data: string(data)})
	return nil
}

func (f *fakeManager) CreateLogArtifact(ctx context.Context, organizationID string, ids models.EntityIDs, entityType models.LogEntityType, entityID string, artifactType models.ArtifactType, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.creates = append(f.creates, createCall{artifactType: artifactType, entityType: entityType, entityID: entityID, ids: ids, data: string(data)})
	return nil
}

// failingEncoder fails a fixed number of times, then recovers.
type failingEncoder struct {
	failures int
}

func (f *failingEncoder) Encode(log []execctx.LogEntry) (string, error) {
	if f.failures > 0 {
		f.failures--
		return "", errors.New("encode blew up")
	}
	return "recovered", nil
}

func newTestSaver(store *fakeStore, manager *fakeManager) (*logartifact.Saver, *logrustest.Hook) {
	logger, hook := logrustest.NewNullLogger()
	saver := logartifact.NewSaver(store, manager, encode.NewJSONEncoder(), encode.NewTextEncoder(), logger)
	return saver, hook
}

func runContext(org string, entries ...execctx.LogEntry) context.Context {
	ec := &execctx.ExecutionContext{OrganizationID: org}
	for _, e := range entries {
		ec.Append(e)
	}
	return execctx.With(context.Background(), ec)
}

func TestSaverNoExecutionContext(t *testing.T) {
	store := &fakeStore{}
	manager := &fakeManager{}
	saver, hook := newTestSaver(store, manager)

	ctx := context.Background()
	saver.SaveStepLog(ctx, "stp_1")
	saver.SaveTaskLog(ctx, "tsk_1")
	saver.SaveWorkflowRunLog(ctx, "wr_1")
	saver.SaveWorkflowRunBlockLog(ctx, "wrb_1")

	assert.Zero(t, store.lookups)
	assert.Empty(t, manager.creates)
	assert.Empty(t, manager.updates)

	// one warning per skipped save, nothing else
	assert.Len(t, hook.Entries, 4)
	for _, entry := range hook.Entries {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
	}
}

func TestSaverFiltersByEntityID(t *testing.T) {
	store := &fakeStore{}
	manager := &fakeManager{}
	saver, _ := newTestSaver(store, manager)

	ctx := runContext("org_1",
		execctx.LogEntry{"step_id": "s1", "msg": "scrolling"},
		execctx.LogEntry{"step_id": "s2", "msg": "clicking"},
	)
	saver.SaveStepLog(ctx, "s1")

	assert.Len(t, manager.creates, 2)
	for _, call := range manager.creates {
		assert.Contains(t, call.data, "scrolling")
		assert.NotContains(t, call.data, "clicking")
	}
}

func TestSaverCreatesBothRepresentations(t *testing.T) {
	store := &fakeStore{}
	manager := &fakeManager{}
	saver, _ := newTestSaver(store, manager)

	ctx := runContext("org_1", execctx.LogEntry{"workflow_run_id": "wr_1", "msg": "navigating"})
	saver.SaveWorkflowRunLog(ctx, "wr_1")

	assert.Equal(t, 2, store.lookups)
	assert.Empty(t, manager.updates)
	assert.Len(t, manager.creates, 2)

	assert.Equal(t, models.LogRawArtifactType, manager.creates[0].artifactType)
	assert.Equal(t, models.LogFormattedArtifactType, manager.creates[1].artifactType)
	for _, call := range manager.creates {
		assert.Equal(t, models.WorkflowRunLogEntity, call.entityType)
		assert.Equal(t, "wr_1", call.entityID)
		assert.NotNil(t, call.ids.WorkflowRunID)
		assert.Nil(t, call.ids.StepID)
		assert.Nil(t, call.ids.TaskID)
		assert.Nil(t, call.ids.WorkflowRunBlockID)
	}
}

func TestSaverUpdatesExistingArtifact(t *testing.T) {
	store := &fakeStore{
		existing: map[models.ArtifactType]*models.Artifact{
			models.LogRawArtifactType: {ArtifactID: "art_raw"},
		},
	}
	manager := &fakeManager{}
	saver, _ := newTestSaver(store, manager)

	ctx := runContext("org_1", execctx.LogEntry{"task_id": "tsk_1", "msg": "extracting"})
	saver.SaveTaskLog(ctx, "tsk_1")

	// raw pass updates, formatted pass creates
	assert.Len(t, manager.updates, 1)
	assert.Equal(t, "art_raw", manager.updates[0].artifactID)
	assert.Equal(t, "task_id", manager.updates[0].primaryKey)

	assert.Len(t, manager.creates, 1)
	assert.Equal(t, models.LogFormattedArtifactType, manager.creates[0].artifactType)
}

func TestSaverSwallowsEncoderFailure(t *testing.T) {
	store := &fakeStore{}
	manager := &fakeManager{}
	logger, hook := logrustest.NewNullLogger()
	raw := &failingEncoder{failures: 1}
	saver := logartifact.NewSaver(store, manager, raw, encode.NewTextEncoder(), logger)

	ctx := runContext("org_1", execctx.LogEntry{"step_id": "s1", "msg": "typing"})

	assert.NotPanics(t, func() {
		saver.SaveStepLog(ctx, "s1")
	})

	// raw pass failed and was logged; formatted pass still ran
	failures := 0
	for _, entry := range hook.Entries {
		if entry.Level == logrus.ErrorLevel {
			failures++
			assert.Equal(t, "org_1", entry.Data["organization_id"])
			assert.Equal(t, "s1", entry.Data["step_id"])
		}
	}
	assert.Equal(t, 1, failures)
	assert.Len(t, manager.creates, 1)
	assert.Equal(t, models.LogFormattedArtifactType, manager.creates[0].artifactType)

	// a later save with the recovered encoder behaves normally
	hook.Reset()
	saver.SaveStepLog(ctx, "s1")
	assert.Len(t, manager.creates, 3)
	for _, entry := range hook.Entries {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level)
	}
}

func TestSaverSwallowsStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	manager := &fakeManager{}
	saver, hook := newTestSaver(store, manager)

	ctx := runContext("org_1", execctx.LogEntry{"workflow_run_block_id": "wrb_1"})

	assert.NotPanics(t, func() {
		saver.SaveWorkflowRunBlockLog(ctx, "wrb_1")
	})
	assert.Empty(t, manager.creates)
	assert.Empty(t, manager.updates)

	failures := 0
	for _, entry := range hook.Entries {
		if entry.Level == logrus.ErrorLevel {
			failures++
			assert.Equal(t, "wrb_1", entry.Data["entity_id"])
		}
	}
	assert.Equal(t, 2, failures)
}

package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/storage"
)

// fakeEncoder stands in for ffmpeg: it records every request and writes a
// placeholder file wherever a real encode would have written a video.
type fakeEncoder struct {
	encodes       []models.EncodeRequest
	composites    []models.CompositeRequest
	failOnOutput  string
	failComposite bool
}

func (f *fakeEncoder) EncodeSequence(req models.EncodeRequest) error {
	f.encodes = append(f.encodes, req)
	if f.failOnOutput != "" && req.OutputPath == f.failOnOutput {
		return errors.New("exit status 1")
	}
	return os.WriteFile(req.OutputPath, []byte("video"), 0644)
}

func (f *fakeEncoder) CompositeSideBySide(req models.CompositeRequest) error {
	f.composites = append(f.composites, req)
	if f.failComposite {
		return errors.New("exit status 1")
	}
	return os.WriteFile(req.OutputPath, []byte("video"), 0644)
}

type recordingPublisher struct {
	events []models.UpdatePipelineStage
}

func (r *recordingPublisher) PublishPipelineStatus(req *models.UpdatePipelineStage) error {
	r.events = append(r.events, *req)
	return nil
}

func writeFrames(t *testing.T, dir string, from, to int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for i := from; i <= to; i++ {
		name := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		require.NoError(t, os.WriteFile(name, []byte("png"), 0644))
	}
}

func newTestHandler(t *testing.T, enc *fakeEncoder, pub StatusPublisher) (MainI, config.Config) {
	t.Helper()
	cfg := config.Load()
	log := logger.New("error", "handler_test")

	h := NewHandler(Options{
		Config:          &cfg,
		Log:             log,
		LocalStorage:    storage.NewFileStorage(&cfg, log),
		Encoder:         enc,
		StatusPublisher: pub,
	})
	return h, cfg
}

func newJob(baseDir string) *models.ComposeJob {
	return &models.ComposeJob{
		Id:         "test-job",
		BaseDir:    baseDir,
		FrameRate:  1,
		OutputName: "combined_video.mp4",
	}
}

func TestComposeSuccess(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 9)
	writeFrames(t, filepath.Join(baseDir, "output"), 0, 9)

	enc := &fakeEncoder{}
	pub := &recordingPublisher{}
	h, cfg := newTestHandler(t, enc, pub)

	res := h.Compose(newJob(baseDir))

	require.Equal(t, cfg.Status.Success, res.Status, res.FailDescription)
	assert.Equal(t, filepath.Join(baseDir, "combined_video.mp4"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)

	// intermediates are gone after a successful run
	assert.NoFileExists(t, filepath.Join(baseDir, cfg.TempMainName))
	assert.NoFileExists(t, filepath.Join(baseDir, cfg.TempSecondaryName))

	require.Len(t, enc.encodes, 2)
	assert.Equal(t, filepath.Join(baseDir, "frame_%04d.png"), enc.encodes[0].InputPattern)
	assert.Equal(t, 0, enc.encodes[0].StartIndex)
	assert.Equal(t, 1, enc.encodes[0].FrameRate)
	assert.Equal(t, filepath.Join(baseDir, cfg.TempMainName), enc.encodes[0].OutputPath)
	assert.Equal(t, filepath.Join(baseDir, "output", "frame_%04d.png"), enc.encodes[1].InputPattern)
	assert.Equal(t, filepath.Join(baseDir, cfg.TempSecondaryName), enc.encodes[1].OutputPath)

	require.Len(t, enc.composites, 1)
	assert.Equal(t, filepath.Join(baseDir, cfg.TempMainName), enc.composites[0].LeftInput)
	assert.Equal(t, filepath.Join(baseDir, cfg.TempSecondaryName), enc.composites[0].RightInput)
	assert.Equal(t, cfg.TargetHeight, enc.composites[0].TargetHeight)

	// every stage reported a terminal success event
	byStage := map[string]string{}
	for _, e := range pub.events {
		if e.Status != cfg.Status.Pending {
			byStage[e.Stage] = e.Status
		}
	}
	for _, stage := range []string{
		cfg.Stages.EncodePrimary,
		cfg.Stages.EncodeSecondary,
		cfg.Stages.Composite,
	} {
		assert.Equal(t, cfg.Status.Success, byStage[stage], stage)
	}
}

func TestComposeNonZeroStartIndex(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 5, 20)
	writeFrames(t, filepath.Join(baseDir, "output"), 5, 20)

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)

	res := h.Compose(newJob(baseDir))

	require.Equal(t, cfg.Status.Success, res.Status)
	require.Len(t, enc.encodes, 2)
	assert.Equal(t, 5, enc.encodes[0].StartIndex)
	assert.Equal(t, 5, enc.encodes[1].StartIndex)
}

func TestComposeEmptyPrimaryDir(t *testing.T) {
	baseDir := t.TempDir()

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)

	res := h.Compose(newJob(baseDir))

	assert.Equal(t, cfg.Status.Fail, res.Status)
	assert.Equal(t, cfg.Stages.ResolvePrimary, res.Stage)
	assert.Equal(t, InvalidRequest, res.ErrorCode)
	// no encode is attempted when resolution fails
	assert.Empty(t, enc.encodes)
	assert.Empty(t, enc.composites)
}

func TestComposeMissingSecondaryDir(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 9)

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)

	res := h.Compose(newJob(baseDir))

	assert.Equal(t, cfg.Status.Fail, res.Status)
	assert.Equal(t, cfg.Stages.ResolveSecondary, res.Stage)
	assert.Contains(t, res.FailDescription, filepath.Join(baseDir, "output"))

	// the already encoded primary intermediate stays on disk
	assert.FileExists(t, filepath.Join(baseDir, cfg.TempMainName))
	assert.Empty(t, enc.composites)
}

func TestComposeEncodeSecondaryFailure(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 4)
	writeFrames(t, filepath.Join(baseDir, "output"), 0, 4)

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)
	enc.failOnOutput = filepath.Join(baseDir, cfg.TempSecondaryName)

	res := h.Compose(newJob(baseDir))

	assert.Equal(t, cfg.Status.Fail, res.Status)
	assert.Equal(t, cfg.Stages.EncodeSecondary, res.Stage)
	assert.Equal(t, InternalServerError, res.ErrorCode)
	assert.FileExists(t, filepath.Join(baseDir, cfg.TempMainName))
	assert.Empty(t, enc.composites)
}

func TestComposeCompositeFailureKeepsIntermediates(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 9)
	writeFrames(t, filepath.Join(baseDir, "output"), 0, 9)

	enc := &fakeEncoder{failComposite: true}
	h, cfg := newTestHandler(t, enc, nil)

	res := h.Compose(newJob(baseDir))

	assert.Equal(t, cfg.Status.Fail, res.Status)
	assert.Equal(t, cfg.Stages.Composite, res.Stage)

	// both clips are kept so each side can be inspected separately
	assert.FileExists(t, filepath.Join(baseDir, cfg.TempMainName))
	assert.FileExists(t, filepath.Join(baseDir, cfg.TempSecondaryName))
	assert.NoFileExists(t, filepath.Join(baseDir, "combined_video.mp4"))
}

func TestComposeRerunLeavesNoIntermediates(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 9)
	writeFrames(t, filepath.Join(baseDir, "output"), 0, 9)

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)

	first := h.Compose(newJob(baseDir))
	second := h.Compose(newJob(baseDir))

	assert.Equal(t, cfg.Status.Success, first.Status)
	assert.Equal(t, cfg.Status.Success, second.Status)
	assert.FileExists(t, filepath.Join(baseDir, "combined_video.mp4"))

	entries, err := os.ReadDir(baseDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "temp_")
	}
}

func TestComposeDifferentFrameCountsStillSucceeds(t *testing.T) {
	baseDir := t.TempDir()
	writeFrames(t, baseDir, 0, 9)
	writeFrames(t, filepath.Join(baseDir, "output"), 0, 4)

	enc := &fakeEncoder{}
	h, cfg := newTestHandler(t, enc, nil)

	res := h.Compose(newJob(baseDir))

	// mismatch is the encoder's problem (truncate to shortest), not ours
	assert.Equal(t, cfg.Status.Success, res.Status)
	require.Len(t, enc.composites, 1)
}

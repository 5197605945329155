package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/encoder"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/frames"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/storage"
)

// StatusPublisher - pushes one status event per pipeline stage. Optional:
// a nil publisher disables status reporting entirely.
type StatusPublisher interface {
	PublishPipelineStatus(req *models.UpdatePipelineStage) error
}

// Options ...
type Options struct {
	Config          *config.Config
	Log             logger.Logger
	LocalStorage    storage.FileOperationsI
	Encoder         encoder.Encoder
	StatusPublisher StatusPublisher
}

// MainI - interface containing main functions for handler
type MainI interface {
	Compose(job *models.ComposeJob) models.PipelineResult
}

type handlerObj struct {
	cfg             *config.Config
	log             logger.Logger
	encoder         encoder.Encoder
	localStorage    storage.FileOperationsI
	statusPublisher StatusPublisher
}

// NewHandler - returns the handler object
func NewHandler(args Options) MainI {
	return &handlerObj{
		cfg:             args.Config,
		log:             args.Log,
		encoder:         args.Encoder,
		localStorage:    args.LocalStorage,
		statusPublisher: args.StatusPublisher,
	}
}

// Compose runs one composition request through the stages
// resolve_primary -> encode_primary -> resolve_secondary -> encode_secondary
// -> composite -> upload, strictly in order. The first failing stage
// produces the terminal result; nothing after it runs. The two intermediate
// clips are removed only after a successful composite - when compositing
// fails they are kept on disk so each side can be inspected separately.
func (h *handlerObj) Compose(job *models.ComposeJob) models.PipelineResult {
	var (
		primaryDir    = job.BaseDir
		secondaryDir  = filepath.Join(job.BaseDir, h.cfg.SecondaryDir)
		tempMain      = filepath.Join(job.BaseDir, h.cfg.TempMainName)
		tempSecondary = filepath.Join(job.BaseDir, h.cfg.TempSecondaryName)
		outputPath    = filepath.Join(job.BaseDir, job.OutputName)
	)

	h.log.Info("==================== Compose job is received ====================================")
	h.log.Info("Compose", logger.String("id", job.Id), logger.String("base_dir", job.BaseDir))

	// resolve primary
	h.publishStatus(job, h.cfg.Stages.ResolvePrimary, h.cfg.Status.Pending, Success, "", 0)
	primarySeq, err := frames.Resolve(primaryDir, h.cfg.FramePrefix, h.cfg.FrameExt)
	if err != nil {
		h.log.Error("[-] RESOLVE PRIMARY", logger.Error(err), logger.String("dir", primaryDir))
		return h.fail(job, h.cfg.Stages.ResolvePrimary, err)
	}
	h.log.Info("[+] RESOLVE PRIMARY",
		logger.Int("start_index", primarySeq.StartIndex),
		logger.Int("frames", primarySeq.Count),
	)

	// encode primary
	if err := h.encodeStage(job, h.cfg.Stages.EncodePrimary, primarySeq, tempMain); err != nil {
		return h.fail(job, h.cfg.Stages.EncodePrimary, err)
	}

	// resolve secondary
	h.publishStatus(job, h.cfg.Stages.ResolveSecondary, h.cfg.Status.Pending, Success, "", 0)
	secondarySeq, err := frames.Resolve(secondaryDir, h.cfg.FramePrefix, h.cfg.FrameExt)
	if err != nil {
		h.log.Error("[-] RESOLVE SECONDARY", logger.Error(err), logger.String("dir", secondaryDir))
		return h.fail(job, h.cfg.Stages.ResolveSecondary, err)
	}
	h.log.Info("[+] RESOLVE SECONDARY",
		logger.Int("start_index", secondarySeq.StartIndex),
		logger.Int("frames", secondarySeq.Count),
	)

	if primarySeq.Count != secondarySeq.Count {
		// the encoder truncates to the shorter stream; warn but keep going
		h.log.Warn("Frame counts differ between the two sequences",
			logger.Int("primary", primarySeq.Count),
			logger.Int("secondary", secondarySeq.Count),
		)
	}

	// encode secondary
	if err := h.encodeStage(job, h.cfg.Stages.EncodeSecondary, secondarySeq, tempSecondary); err != nil {
		return h.fail(job, h.cfg.Stages.EncodeSecondary, err)
	}

	// composite
	h.publishStatus(job, h.cfg.Stages.Composite, h.cfg.Status.Pending, Success, "", 0)
	start := time.Now()
	err = h.encoder.CompositeSideBySide(models.CompositeRequest{
		LeftInput:    tempMain,
		RightInput:   tempSecondary,
		TargetHeight: h.cfg.TargetHeight,
		OutputPath:   outputPath,
	})
	if err != nil {
		h.log.Error("[-] COMPOSITE", logger.Error(err))
		h.log.Info("Keeping intermediate clips for diagnosis",
			logger.String("left", tempMain),
			logger.String("right", tempSecondary),
		)
		return h.fail(job, h.cfg.Stages.Composite, err)
	}
	h.publishStatus(job, h.cfg.Stages.Composite, h.cfg.Status.Success, Success, "", int(time.Since(start).Milliseconds()))
	h.log.Info("[+] COMPOSITE", logger.String("output", outputPath))

	if err := h.localStorage.RemoveIntermediates(tempMain, tempSecondary); err != nil {
		return h.fail(job, h.cfg.Stages.Composite, fmt.Errorf("error while removing intermediates: %w", err))
	}

	// upload (only when the job carries a CDN target)
	if job.CdnType != "" {
		if err := h.upload(job, outputPath); err != nil {
			return h.fail(job, h.cfg.Stages.Upload, err)
		}
	}

	h.log.Info("[+] COMPOSE DONE", logger.String("id", job.Id), logger.String("output", outputPath))
	return models.PipelineResult{
		Id:         job.Id,
		Status:     h.cfg.Status.Success,
		OutputPath: outputPath,
		ErrorCode:  Success,
	}
}

func (h *handlerObj) encodeStage(job *models.ComposeJob, stage string, seq frames.Sequence, output string) error {
	h.publishStatus(job, stage, h.cfg.Status.Pending, Success, "", 0)

	start := time.Now()
	err := h.encoder.EncodeSequence(models.EncodeRequest{
		InputPattern: seq.InputPattern(),
		StartIndex:   seq.StartIndex,
		FrameRate:    job.FrameRate,
		OutputPath:   output,
	})
	if err != nil {
		h.log.Error("[-] ENCODE", logger.String("stage", stage), logger.Error(err))
		return err
	}

	h.publishStatus(job, stage, h.cfg.Status.Success, Success, "", int(time.Since(start).Milliseconds()))
	h.log.Info("[+] ENCODE", logger.String("stage", stage), logger.String("output", output))
	return nil
}

func (h *handlerObj) upload(job *models.ComposeJob, outputPath string) error {
	h.publishStatus(job, h.cfg.Stages.Upload, h.cfg.Status.Pending, Success, "", 0)

	start := time.Now()
	cloud, err := storage.NewCloudStorage(h.cfg, &models.CloudStorageConfig{
		Type:      job.CdnType,
		Endpoint:  job.CdnUrl,
		AccessKey: job.CdnAccessKey,
		SecretKey: job.CdnSecretKey,
		Region:    job.CdnRegion,
	}, h.log)
	if err != nil {
		h.log.Error("[-] STORAGE Couldn't connect to cloud", logger.Error(err))
		return err
	}

	switch job.CdnType {
	case "minio":
		err = cloud.Minio().UploadToCloud(outputPath, job)
	case "s3":
		err = cloud.S3().UploadToCloud(outputPath, job)
	default:
		err = fmt.Errorf("invalid cdn storage type: %s", job.CdnType)
	}

	if err != nil {
		h.log.Error("[-] STORAGE Couldn't upload to CDN", logger.Error(err))
		return err
	}

	h.publishStatus(job, h.cfg.Stages.Upload, h.cfg.Status.Success, Success, "", int(time.Since(start).Milliseconds()))
	h.log.Info("[UPLOADED] SUCCESS", logger.String("path", outputPath))
	return nil
}

func (h *handlerObj) fail(job *models.ComposeJob, stage string, err error) models.PipelineResult {
	code := InternalServerError
	if errors.Is(err, frames.ErrDirectoryNotFound) || errors.Is(err, frames.ErrNoFramesFound) {
		code = InvalidRequest
	}

	h.publishStatus(job, stage, h.cfg.Status.Fail, code, err.Error(), 0)

	return models.PipelineResult{
		Id:              job.Id,
		Status:          h.cfg.Status.Fail,
		Stage:           stage,
		ErrorCode:       code,
		FailDescription: err.Error(),
	}
}

func (h *handlerObj) publishStatus(job *models.ComposeJob, stage, status, code, description string, durationMs int) {
	if h.statusPublisher == nil {
		return
	}

	err := h.statusPublisher.PublishPipelineStatus(&models.UpdatePipelineStage{
		Id:              job.Id,
		Stage:           stage,
		Status:          status,
		StageDuration:   durationMs,
		FailDescription: description,
		ErrorCode:       code,
	})
	if err != nil {
		h.log.Error("Error while publishing to rabbit mq.", logger.Error(err))
	}
}

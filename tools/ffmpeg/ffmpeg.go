package ffmpeg

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/encoder"
)

// FFmpeg is structure for a tool to encode and compose video
type FFmpeg struct {
	cfg *config.Config
	log logger.Logger
}

// NewFFmpeg returns the pointer for ffmpeg structure
func NewFFmpeg(cfg *config.Config, log logger.Logger) encoder.Encoder {
	return &FFmpeg{
		cfg: cfg,
		log: log,
	}
}

// EncodeSequence - builds one video file from a numbered image sequence
func (f *FFmpeg) EncodeSequence(req models.EncodeRequest) error {
	if req.StartIndex < 0 {
		return fmt.Errorf("start index must be non-negative, got %d", req.StartIndex)
	}
	if req.FrameRate < 0 {
		return fmt.Errorf("frame rate must be non-negative, got %d", req.FrameRate)
	}

	f.log.Info(
		"Started encoding sequence...",
		logger.String("input", req.InputPattern),
		logger.Int("start_number", req.StartIndex),
		logger.Int("framerate", req.FrameRate),
		logger.String("output", req.OutputPath),
	)

	commands := f.makeSequenceCommand(req)
	f.log.Debug("commands in EncodeSequence: ", logger.Any("commands: ", commands))

	res, err := exec.Command(f.cfg.FFmpeg, commands...).CombinedOutput()
	if err != nil {
		f.log.Error("Error while executing the command", logger.Error(err))
		return fmt.Errorf("encode %s: %v: %s", req.OutputPath, err, tail(res))
	}

	f.log.Info("Finished encoding sequence", logger.String("output", req.OutputPath))
	return nil
}

// CompositeSideBySide - scales two clips to a common height and stacks them
// horizontally into the final output
func (f *FFmpeg) CompositeSideBySide(req models.CompositeRequest) error {
	f.log.Info(
		"Started compositing...",
		logger.String("left", req.LeftInput),
		logger.String("right", req.RightInput),
		logger.String("output", req.OutputPath),
	)

	commands := f.makeCompositeCommand(req)
	f.log.Debug("commands in CompositeSideBySide: ", logger.Any("commands: ", commands))

	res, err := exec.Command(f.cfg.FFmpeg, commands...).CombinedOutput()
	if err != nil {
		f.log.Error("Error while executing the command", logger.Error(err))
		return fmt.Errorf("composite %s: %v: %s", req.OutputPath, err, tail(res))
	}

	f.log.Info("Finished compositing", logger.String("output", req.OutputPath))
	return nil
}

func (f *FFmpeg) makeSequenceCommand(req models.EncodeRequest) []string {
	return sequenceToVideo.ReplaceArguments([]Args{
		{Index: 2, Value: strconv.Itoa(req.FrameRate)},
		{Index: 4, Value: strconv.Itoa(req.StartIndex)},
		{Index: 6, Value: req.InputPattern},
		{Index: 8, Value: f.cfg.VideoCodec},
		{Index: 10, Value: f.cfg.PixelFormat},
		{Index: 12, Value: f.cfg.Crf},
		{Index: 13, Value: req.OutputPath},
	})
}

func (f *FFmpeg) makeCompositeCommand(req models.CompositeRequest) []string {
	return compositeSideBySide.ReplaceArguments([]Args{
		{Index: 2, Value: req.LeftInput},
		{Index: 4, Value: req.RightInput},
		{Index: 6, Value: makeStackFilter(req.TargetHeight)},
		{Index: 8, Value: f.cfg.VideoCodec},
		{Index: 10, Value: f.cfg.PixelFormat},
		{Index: 12, Value: f.cfg.Crf},
		{Index: 13, Value: req.OutputPath},
	})
}

func tail(out []byte) string {
	const max = 512
	s := strings.TrimSpace(string(out))
	if len(s) > max {
		s = "..." + s[len(s)-max:]
	}
	return s
}

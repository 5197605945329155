package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
)

func newTestFFmpeg() *FFmpeg {
	cfg := config.Load()
	return &FFmpeg{
		cfg: &cfg,
		log: logger.New("error", "ffmpeg_test"),
	}
}

func TestMakeSequenceCommand(t *testing.T) {
	f := newTestFFmpeg()

	commands := f.makeSequenceCommand(models.EncodeRequest{
		InputPattern: "/renders/frame_%04d.png",
		StartIndex:   5,
		FrameRate:    1,
		OutputPath:   "/renders/temp_main_video.mp4",
	})

	assert.Equal(t, []string{
		"-y",
		"-framerate", "1",
		"-start_number", "5",
		"-i", "/renders/frame_%04d.png",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-crf", "23",
		"/renders/temp_main_video.mp4",
	}, commands)
}

func TestMakeCompositeCommand(t *testing.T) {
	f := newTestFFmpeg()

	commands := f.makeCompositeCommand(models.CompositeRequest{
		LeftInput:    "/renders/temp_main_video.mp4",
		RightInput:   "/renders/temp_output_video.mp4",
		TargetHeight: 480,
		OutputPath:   "/renders/combined_video.mp4",
	})

	assert.Equal(t, []string{
		"-y",
		"-i", "/renders/temp_main_video.mp4",
		"-i", "/renders/temp_output_video.mp4",
		"-filter_complex",
		"[0:v]scale=-1:480[left];[1:v]scale=-1:480[right];[left][right]hstack=inputs=2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-crf", "23",
		"/renders/combined_video.mp4",
	}, commands)
}

func TestMakeStackFilterDerivesWidth(t *testing.T) {
	// width stays -1 so each side keeps its own aspect ratio
	assert.Equal(t,
		"[0:v]scale=-1:720[left];[1:v]scale=-1:720[right];[left][right]hstack=inputs=2",
		makeStackFilter(720),
	)
}

func TestEncodeSequenceRejectsNegativeStartIndex(t *testing.T) {
	f := newTestFFmpeg()

	err := f.EncodeSequence(models.EncodeRequest{
		InputPattern: "frame_%04d.png",
		StartIndex:   -1,
		FrameRate:    30,
		OutputPath:   "out.mp4",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start index")
}

func TestEncodeSequenceRejectsNegativeFrameRate(t *testing.T) {
	f := newTestFFmpeg()

	err := f.EncodeSequence(models.EncodeRequest{
		InputPattern: "frame_%04d.png",
		StartIndex:   0,
		FrameRate:    -1,
		OutputPath:   "out.mp4",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame rate")
}

func TestReplaceArguments(t *testing.T) {
	cmd := Command{command: []string{"-i", "in", "out"}}

	commands := cmd.ReplaceArguments([]Args{
		{Index: 1, Value: "a.mp4"},
		{Index: 2, Value: "b.mp4"},
	})

	assert.Equal(t, []string{"-i", "a.mp4", "b.mp4"}, commands)
}

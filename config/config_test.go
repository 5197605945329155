package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()

	assert.Equal(t, "combined_video.mp4", c.OutputName)
	assert.Equal(t, "output", c.SecondaryDir)
	assert.Equal(t, "frame", c.FramePrefix)
	assert.Equal(t, ".png", c.FrameExt)
	assert.Equal(t, "temp_main_video.mp4", c.TempMainName)
	assert.Equal(t, "temp_output_video.mp4", c.TempSecondaryName)

	assert.Equal(t, "ffmpeg", c.FFmpeg)
	assert.Equal(t, "libx264", c.VideoCodec)
	assert.Equal(t, "yuv420p", c.PixelFormat)
	assert.Equal(t, "23", c.Crf)
	assert.Equal(t, 480, c.TargetHeight)

	assert.False(t, c.RabbitMqEnabled)
	assert.Empty(t, c.CdnType)

	assert.Equal(t, "resolve_primary", c.Stages.ResolvePrimary)
	assert.Equal(t, "composite", c.Stages.Composite)
	assert.Equal(t, "fail", c.Status.Fail)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FRAME_RATE", "12")
	t.Setenv("TARGET_HEIGHT", "720")
	t.Setenv("OUTPUT_NAME", "side_by_side.mp4")
	t.Setenv("RABBITMQ_ENABLED", "true")

	c := Load()

	assert.Equal(t, 12, c.FrameRate)
	assert.Equal(t, 720, c.TargetHeight)
	assert.Equal(t, "side_by_side.mp4", c.OutputName)
	assert.True(t, c.RabbitMqEnabled)
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	LogLevel string

	BaseDir           string
	FrameRate         int
	OutputName        string
	SecondaryDir      string
	FramePrefix       string
	FrameExt          string
	TempMainName      string
	TempSecondaryName string

	FFmpeg       string
	VideoCodec   string
	PixelFormat  string
	Crf          string
	TargetHeight int

	RabbitMqEnabled  bool
	RabbitMqHost     string
	RabbitMqPort     string
	RabbitMqUser     string
	RabbitMqPassword string
	StatusQueue      string

	CdnType      string
	CdnUrl       string
	CdnAccessKey string
	CdnSecretKey string
	CdnRegion    string
	CdnBucket    string

	Stages struct {
		ResolvePrimary   string
		EncodePrimary    string
		ResolveSecondary string
		EncodeSecondary  string
		Composite        string
		Upload           string
	}
	Status struct {
		Pending string
		Success string
		Fail    string
	}
}

func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Could not load the .env file")
	}

	c := Config{}
	c.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "debug"))

	c.BaseDir = cast.ToString(getOrReturnDefault("BASE_DIR", "."))
	c.FrameRate = cast.ToInt(getOrReturnDefault("FRAME_RATE", 30))
	c.OutputName = cast.ToString(getOrReturnDefault("OUTPUT_NAME", "combined_video.mp4"))
	c.SecondaryDir = cast.ToString(getOrReturnDefault("SECONDARY_DIR", "output"))
	c.FramePrefix = cast.ToString(getOrReturnDefault("FRAME_PREFIX", "frame"))
	c.FrameExt = cast.ToString(getOrReturnDefault("FRAME_EXT", ".png"))
	c.TempMainName = cast.ToString(getOrReturnDefault("TEMP_MAIN_NAME", "temp_main_video.mp4"))
	c.TempSecondaryName = cast.ToString(getOrReturnDefault("TEMP_SECONDARY_NAME", "temp_output_video.mp4"))

	c.FFmpeg = cast.ToString(getOrReturnDefault("FFMPEG", "ffmpeg"))
	c.VideoCodec = cast.ToString(getOrReturnDefault("VIDEO_CODEC", "libx264"))
	c.PixelFormat = cast.ToString(getOrReturnDefault("PIXEL_FORMAT", "yuv420p"))
	c.Crf = cast.ToString(getOrReturnDefault("CRF", "23"))
	c.TargetHeight = cast.ToInt(getOrReturnDefault("TARGET_HEIGHT", 480))

	c.RabbitMqEnabled = cast.ToBool(getOrReturnDefault("RABBITMQ_ENABLED", false))
	c.RabbitMqHost = cast.ToString(getOrReturnDefault("RABBITMQ_HOST", "localhost"))
	c.RabbitMqPort = cast.ToString(getOrReturnDefault("RABBITMQ_PORT", "5672"))
	c.RabbitMqUser = cast.ToString(getOrReturnDefault("RABBITMQ_USER", "user"))
	c.RabbitMqPassword = cast.ToString(getOrReturnDefault("RABBITMQ_PASSWORD", "secret"))
	c.StatusQueue = cast.ToString(getOrReturnDefault("STATUS_QUEUE", "compose_status"))

	c.CdnType = cast.ToString(getOrReturnDefault("CDN_TYPE", ""))
	c.CdnUrl = cast.ToString(getOrReturnDefault("CDN_URL", ""))
	c.CdnAccessKey = cast.ToString(getOrReturnDefault("CDN_ACCESS_KEY", ""))
	c.CdnSecretKey = cast.ToString(getOrReturnDefault("CDN_SECRET_KEY", ""))
	c.CdnRegion = cast.ToString(getOrReturnDefault("CDN_REGION", ""))
	c.CdnBucket = cast.ToString(getOrReturnDefault("CDN_BUCKET", ""))

	c.Stages = struct {
		ResolvePrimary   string
		EncodePrimary    string
		ResolveSecondary string
		EncodeSecondary  string
		Composite        string
		Upload           string
	}{
		ResolvePrimary:   "resolve_primary",
		EncodePrimary:    "encode_primary",
		ResolveSecondary: "resolve_secondary",
		EncodeSecondary:  "encode_secondary",
		Composite:        "composite",
		Upload:           "upload",
	}

	c.Status = struct {
		Pending string
		Success string
		Fail    string
	}{
		Pending: "pending",
		Success: "success",
		Fail:    "fail",
	}

	return c
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	_, exists := os.LookupEnv(key)
	if exists {
		return os.Getenv(key)
	}

	return defaultValue
}

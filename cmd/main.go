package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/handler"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/rabbitmq"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/ffmpeg"
	"github.com/wangjm1029/UE-AutoRender-Tools/tools/storage"
)

func main() {
	cfg := config.Load()

	var (
		baseDir   string
		frameRate int
		output    string
	)

	rootCmd := &cobra.Command{
		Use:   "render-compose",
		Short: "Compose a rendered frame sequence and its visualization into one side-by-side video",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&cfg, baseDir, frameRate, output)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&baseDir, "dir", "d", cfg.BaseDir, "base directory holding the primary frames and the visualization subdirectory")
	rootCmd.Flags().IntVarP(&frameRate, "framerate", "r", cfg.FrameRate, "frame rate applied to both intermediate encodes")
	rootCmd.Flags().StringVarP(&output, "output", "o", cfg.OutputName, "name of the final composed video, written inside the base directory")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, baseDir string, frameRate int, output string) error {
	log := logger.New(cfg.LogLevel, "render_compose")
	log.Info("new configuration and logger is setup...")

	var statusPublisher handler.StatusPublisher
	if cfg.RabbitMqEnabled {
		rbMQ, err := rabbitmq.New(cfg, log)
		if err != nil {
			log.Error("Error while creating rabbitMq object...", logger.Error(err))
			return err
		}

		// We need to close the channel if we have opened it
		defer rbMQ.Channel.Close()
		statusPublisher = rbMQ
	}

	fileStorage := storage.NewFileStorage(cfg, log)
	log.Info("storage is created...")

	enc := ffmpeg.NewFFmpeg(cfg, log)
	log.Info("encoder is created...")

	handlerObj := handler.NewHandler(handler.Options{
		Config:          cfg,
		Log:             log,
		LocalStorage:    fileStorage,
		Encoder:         enc,
		StatusPublisher: statusPublisher,
	})

	job := &models.ComposeJob{
		Id:           uuid.NewString(),
		BaseDir:      baseDir,
		FrameRate:    frameRate,
		OutputName:   output,
		CdnType:      cfg.CdnType,
		CdnUrl:       cfg.CdnUrl,
		CdnAccessKey: cfg.CdnAccessKey,
		CdnSecretKey: cfg.CdnSecretKey,
		CdnRegion:    cfg.CdnRegion,
		CdnBucket:    cfg.CdnBucket,
		OutputKey:    output,
	}

	res := handlerObj.Compose(job)
	if res.Status == cfg.Status.Fail {
		return fmt.Errorf("stage %s failed: %s", res.Stage, res.FailDescription)
	}

	log.Info("composed video is ready", logger.String("path", res.OutputPath))
	return nil
}

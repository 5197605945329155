package storage

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
)

type S3Storage struct {
	cfg     *config.Config
	log     logger.Logger
	session *session.Session
}

// NewS3Storage ...
func NewS3Storage(cfg *config.Config, log logger.Logger, session *session.Session) *S3Storage {
	return &S3Storage{
		cfg:     cfg,
		log:     log,
		session: session,
	}
}

func (s *S3Storage) UploadToCloud(path string, job *models.ComposeJob) error {
	s.log.Info("[UPLOADING] to s3", logger.String("filepath", path), logger.String("key", job.OutputKey))

	up, err := os.Open(path)
	if err != nil {
		s.log.Error("Error while opening the path", logger.Error(err))
		return err
	}
	defer up.Close()

	uploader := s3manager.NewUploader(s.session)
	res, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(job.CdnBucket),
		Key:    aws.String(job.OutputKey),
		Body:   up,
	})

	if err != nil {
		s.log.Error("Error while uploading the path to S3 bucket", logger.Error(err))
		return err
	}

	s.log.Info("Object is uploaded", logger.Any("response", res))
	return nil
}

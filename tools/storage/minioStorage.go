package storage

import (
	"context"
	"net/http"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/models"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
)

type MinioStorage struct {
	cfg         *config.Config
	log         logger.Logger
	minioClient *minio.Client
}

// NewMinioStorage ...
func NewMinioStorage(cfg *config.Config, log logger.Logger, minioClient *minio.Client) *MinioStorage {
	return &MinioStorage{
		cfg:         cfg,
		log:         log,
		minioClient: minioClient,
	}
}

func (s *MinioStorage) UploadToCloud(filepath string, job *models.ComposeJob) error {
	s.log.Info("[UPLOADING] to minio", logger.String("filepath", filepath), logger.String("key", job.OutputKey))

	contentType, err := getFileContentType(filepath)
	if err != nil {
		s.log.Error("Error while getting file content type.")
		return err
	}

	res, err := s.minioClient.FPutObject(context.Background(), job.CdnBucket, job.OutputKey, filepath, minio.PutObjectOptions{
		ContentType: contentType,
	})

	if err != nil {
		s.log.Error("Error while uploading to Minio")
		return err
	}

	s.log.Info("Object is uploaded", logger.Any("response", res))
	return nil
}

func getFileContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Only the first 512 bytes are used to sniff the content type.
	buffer := make([]byte, 512)

	_, err = f.Read(buffer)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)

	return contentType, nil
}

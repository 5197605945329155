package storage

import (
	"os"

	"github.com/wangjm1029/UE-AutoRender-Tools/config"
	"github.com/wangjm1029/UE-AutoRender-Tools/pkg/logger"
)

type fileStorage struct {
	log logger.Logger
	cfg *config.Config
}

type FileOperationsI interface {
	RemoveFile(filePath string) error
	RemoveIntermediates(paths ...string) error
	FileSize(filePath string) (int64, error)
}

func NewFileStorage(cfg *config.Config, log logger.Logger) FileOperationsI {
	return &fileStorage{
		cfg: cfg,
		log: log,
	}
}

func (f *fileStorage) RemoveFile(filePath string) error {
	f.log.Info("Removing file", logger.String("path", filePath))
	return os.Remove(filePath)
}

// RemoveIntermediates - removes the temporary clips after a successful run.
// A path that is already gone is not an error.
func (f *fileStorage) RemoveIntermediates(paths ...string) error {
	for _, path := range paths {
		f.log.Info("Removing intermediate", logger.String("path", path))
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			f.log.Error("Error while removing intermediate", logger.Error(err))
			return err
		}
	}
	return nil
}

func (f *fileStorage) FileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

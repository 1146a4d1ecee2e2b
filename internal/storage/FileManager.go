package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"rundash/internal/models"
	"rundash/internal/providers"
	"rundash/internal/storage/interfaces"
	"rundash/internal/structures"
)

// FileManager stores the activity table as CSV, optionally compressed.
type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) Path() string {
	return f.path
}

// Save replaces the table through a temp file and rename, so readers never
// see a partial table.
func (f *FileManager) Save(activities []*models.Activity) error {
	var buf bytes.Buffer
	if err := WriteTable(&buf, activities); err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	data, err := f.compressor.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("compress table: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, f.path); err != nil {
		return err
	}
	f.logger.Infof(providers.TypeApp, "Saved %d activities to %s", len(activities), f.path)
	return nil
}

func (f *FileManager) Load() ([]*models.Activity, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", f.path, err)
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress table %s: %w", f.path, err)
	}

	activities, err := ReadTable(bytes.NewReader(decompressed))
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", f.path, err)
	}
	f.logger.Debugf(providers.TypeApp, "Loaded %d activities from %s", len(activities), f.path)
	return activities, nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

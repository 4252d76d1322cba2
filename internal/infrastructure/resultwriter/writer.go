package resultwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const indent = "    "

type writer struct {
	logger port.Logger
}

// New returns a port.ResultWriter that writes indented JSON arrays.
func New(logger port.Logger) port.ResultWriter {
	return &writer{logger: logger}
}

// WriteResults writes stats to path. The file is replaced atomically so readers never
// observe a partially written array.
func (w *writer) WriteResults(path string, stats []entity.WalletStats) error {
	if stats == nil {
		stats = []entity.WalletStats{}
	}
	data, err := json.MarshalIndent(stats, "", indent)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	data = append(data, '\n')

	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move results into place: %w", err)
	}

	w.logger.Info("Results written", "path", path, "records", len(stats))
	return nil
}

// ReadResults loads a previously written results file.
func ReadResults(path string) ([]entity.WalletStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", path, err)
	}
	var stats []entity.WalletStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode results file %s: %w", path, err)
	}
	return stats, nil
}

package output

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"statutes/internal/bills"
	"statutes/internal/logging"
)

// Store writes bill records and version stubs under the data directory.
// Writes are atomic (temp file + rename) so a failed write never corrupts a
// previously valid record, and repeated runs are idempotent overwrites keyed
// by bill and version ID.
type Store struct {
	dataDir string
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore builds a Store rooted at dataDir.
func NewStore(dataDir string, logger *slog.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  logging.NewComponentLogger(logger, "output"),
		now:     time.Now,
	}
}

// WithClock replaces the timestamp source (for testing).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WriteBill stamps and persists a bill record, returning its path.
// Serialization is deterministic apart from the updated_at timestamp.
func (s *Store) WriteBill(bill bills.Bill) (string, error) {
	bill.UpdatedAt = s.now().UTC().Truncate(time.Second)
	path := s.BillPath(bill.BillType, bill.Number, bill.Congress)
	if err := s.writeJSON(path, bill); err != nil {
		return "", fmt.Errorf("write bill %s: %w", bill.BillID, err)
	}
	s.logger.Debug("wrote bill record",
		logging.String(logging.FieldBillID, bill.BillID),
		logging.String("path", path))
	return path, nil
}

// WriteVersion persists a bill-version stub, returning its path.
func (s *Store) WriteVersion(billType, number, congress string, version bills.Version) (string, error) {
	path := s.VersionPath(billType, number, congress, version.VersionCode)
	if err := s.writeJSON(path, version); err != nil {
		return "", fmt.Errorf("write bill version %s: %w", version.BillVersionID, err)
	}
	s.logger.Debug("wrote bill version stub",
		logging.String("bill_version_id", version.BillVersionID),
		logging.String("path", path))
	return path, nil
}

func (s *Store) writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

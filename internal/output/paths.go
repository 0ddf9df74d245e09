package output

import (
	"fmt"
	"path/filepath"
)

// billDir returns <data>/<congress>/bills/<type>/<type><number>.
func billDir(dataDir, billType, number, congress string) string {
	return filepath.Join(dataDir, congress, "bills", billType, fmt.Sprintf("%s%s", billType, number))
}

// BillPath returns the location of a bill record.
func (s *Store) BillPath(billType, number, congress string) string {
	return filepath.Join(billDir(s.dataDir, billType, number, congress), "data.json")
}

// VersionPath returns the location of a bill-version stub.
func (s *Store) VersionPath(billType, number, congress, versionCode string) string {
	return filepath.Join(billDir(s.dataDir, billType, number, congress), "text-versions", versionCode, "data.json")
}

// PlaintextPath returns the location of the extracted plaintext for a
// bill version.
func (s *Store) PlaintextPath(billType, number, congress, versionCode string) string {
	return filepath.Join(billDir(s.dataDir, billType, number, congress), "text-versions", versionCode, "document.txt")
}

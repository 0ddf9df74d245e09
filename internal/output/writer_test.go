package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"statutes/internal/bills"
	"statutes/internal/logging"
	"statutes/internal/output"
)

func sampleBill() bills.Bill {
	official := "An Act to provide revenue."
	subject := "Revenue"
	return bills.Bill{
		Actions: []bills.Action{{
			ActedAt:    "1951-10-20",
			Congress:   "82",
			Law:        bills.LawTypePublic,
			Number:     "100",
			References: []string{},
			Status:     bills.StatusEnactedSigned,
			Text:       "Became Public Law No: 82-100.",
			Type:       bills.ActionEnacted,
		}},
		Amendments:      []string{},
		BillID:          "hr1-82",
		BillType:        "hr",
		Committees:      []bills.Committee{},
		Congress:        "82",
		Cosponsors:      []string{},
		EnactedAs:       &bills.SlipLaw{Congress: "82", LawType: "public", Number: "100"},
		History:         map[string]any{"enacted": true, "enacted_at": "1951-10-20"},
		Number:          "1",
		OfficialTitle:   &official,
		RelatedBills:    []string{},
		Sources:         []bills.Source{},
		Status:          bills.StatusEnactedSigned,
		StatusAt:        "1951-10-20",
		Subjects:        []string{},
		SubjectsTopTerm: &subject,
		Titles:          []bills.Title{{As: "enacted", Title: official, Type: "official"}},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWriteBillLaysOutDataDirectory(t *testing.T) {
	dataDir := t.TempDir()
	store := output.NewStore(dataDir, logging.NewNop())

	path, err := store.WriteBill(sampleBill())
	if err != nil {
		t.Fatalf("WriteBill failed: %v", err)
	}

	want := filepath.Join(dataDir, "82", "bills", "hr", "hr1", "data.json")
	if path != want {
		t.Fatalf("unexpected bill path: got %q want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected bill file to exist: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file must not survive a successful write")
	}
}

func TestWriteBillIsDeterministicExceptTimestamp(t *testing.T) {
	dataDir := t.TempDir()
	store := output.NewStore(dataDir, logging.NewNop()).
		WithClock(fixedClock(time.Date(2013, 2, 27, 11, 0, 0, 0, time.UTC)))

	path, err := store.WriteBill(sampleBill())
	if err != nil {
		t.Fatalf("first WriteBill failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	if _, err := store.WriteBill(sampleBill()); err != nil {
		t.Fatalf("second WriteBill failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("repeated writes with a fixed clock must be byte-identical")
	}
}

func TestWriteBillSerializesKeySorted(t *testing.T) {
	dataDir := t.TempDir()
	store := output.NewStore(dataDir, logging.NewNop())

	path, err := store.WriteBill(sampleBill())
	if err != nil {
		t.Fatalf("WriteBill failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"actions", "bill_id", "enacted_as", "history", "sponsor", "status", "updated_at"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected key %q in output", key)
		}
	}

	// Top-level keys must appear in sorted order in the raw bytes.
	text := string(data)
	previous := -1
	for _, key := range []string{`"actions"`, `"amendments"`, `"bill_id"`, `"bill_type"`, `"committees"`, `"congress"`, `"short_title"`, `"sponsor"`, `"sources"`, `"updated_at"`} {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("key %s missing from raw output", key)
		}
		if idx < previous {
			t.Fatalf("key %s out of order in raw output", key)
		}
		previous = idx
	}
}

func TestWriteVersionPath(t *testing.T) {
	dataDir := t.TempDir()
	store := output.NewStore(dataDir, logging.NewNop())

	version := bills.Version{
		BillVersionID: "hr1-82-enr",
		IssuedOn:      "1951-10-20",
		URLs:          map[string]string{"pdf": "https://example.com/STATUTE-65-Pg1.pdf"},
		VersionCode:   bills.VersionEnrolled,
	}
	path, err := store.WriteVersion("hr", "1", "82", version)
	if err != nil {
		t.Fatalf("WriteVersion failed: %v", err)
	}

	want := filepath.Join(dataDir, "82", "bills", "hr", "hr1", "text-versions", "enr", "data.json")
	if path != want {
		t.Fatalf("unexpected version path: got %q want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read version stub: %v", err)
	}
	var decoded bills.Version
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("version stub is not valid JSON: %v", err)
	}
	if decoded.BillVersionID != "hr1-82-enr" || decoded.URLs["pdf"] == "" {
		t.Fatalf("unexpected version stub: %+v", decoded)
	}
}

func TestPlaintextPath(t *testing.T) {
	store := output.NewStore("/data", logging.NewNop())
	want := filepath.Join("/data", "82", "bills", "hr", "hr1", "text-versions", "enr", "document.txt")
	if got := store.PlaintextPath("hr", "1", "82", "enr"); got != want {
		t.Fatalf("unexpected plaintext path: got %q want %q", got, want)
	}
}

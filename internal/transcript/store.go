package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the default transcripts directory.
const DefaultDir = "transcripts"

// Store persists one JSON file per call in a flat directory. File names are
// derived from timestamp-based call IDs, so collisions only happen within
// the same wall-clock second.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if absent.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("transcript: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the record as indented JSON to <dir>/<call_id>.json,
// overwriting any prior file for the same call ID.
func (s *Store) Save(rec Record) error {
	if rec.CallID == "" {
		return fmt.Errorf("transcript: save: call ID is required")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("transcript: save %s: %w", rec.CallID, err)
	}
	path := filepath.Join(s.dir, rec.CallID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("transcript: save %s: %w", rec.CallID, err)
	}
	return nil
}

// Load reads one record by call ID.
func (s *Store) Load(callID string) (*Record, error) {
	path := filepath.Join(s.dir, callID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: load %s: %w", callID, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("transcript: load %s: %w", callID, err)
	}
	return &rec, nil
}

// LoadAll reads every transcript in the directory, sorted by scenario ID.
// Non-JSON files are ignored; the first unreadable or unparsable transcript
// aborts the load with an error.
func (s *Store) LoadAll() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("transcript: read dir %s: %w", s.dir, err)
	}

	var records []Record
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, ent.Name()))
		if err != nil {
			return nil, fmt.Errorf("transcript: read %s: %w", ent.Name(), err)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("transcript: parse %s: %w", ent.Name(), err)
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScenarioID < records[j].ScenarioID
	})
	return records, nil
}

// SaveRecording writes raw recording audio beside the transcript as
// <call_id>_recording.mp3 and returns the written path.
func (s *Store) SaveRecording(callID string, data []byte) (string, error) {
	path := filepath.Join(s.dir, callID+"_recording.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("transcript: save recording %s: %w", callID, err)
	}
	return path, nil
}

package prescription

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const numberPrefix = "RX"

// attemptsPerRange bounds random generation before the numeric range is
// widened by one digit. The base range is 1000-9999.
const attemptsPerRange = 32

// Store persists prescription records to a single pretty-printed JSON
// file and is the source of truth across restarts.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the durable file. An absent or malformed file yields an
// empty map, never an error: availability wins over surfacing corrupt
// state to the user.
func (s *Store) Load() map[string]Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("prescription file unreadable, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return map[string]Record{}
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("prescription file malformed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return map[string]Record{}
	}
	return records
}

// Save overwrites the durable file with the whole mapping. The write
// goes through a temp file and rename so no partial state is visible.
func (s *Store) Save(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal prescriptions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prescriptions-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write prescriptions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace prescription file: %w", err)
	}

	s.logger.Debug("prescriptions saved",
		zap.String("path", s.path), zap.Int("count", len(records)))
	return nil
}

// NextNumber produces a prescription number not present in existing.
// Generation retries within the RX1000-RX9999 range a bounded number of
// times, then widens the range by one digit per round so a dense store
// cannot stall the loop.
func (s *Store) NextNumber(existing map[string]Record) string {
	lo, hi := 1000, 9999
	for {
		for attempt := 0; attempt < attemptsPerRange; attempt++ {
			number := fmt.Sprintf("%s%d", numberPrefix, lo+rand.Intn(hi-lo+1))
			if _, taken := existing[number]; !taken {
				return number
			}
		}
		s.logger.Warn("prescription number range crowded, widening",
			zap.Int("low", lo), zap.Int("high", hi))
		lo, hi = lo*10, hi*10+9
	}
}

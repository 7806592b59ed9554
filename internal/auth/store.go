// Package auth implements the flat-file credential store the console
// session authenticates against. The assistant's core only consumes the
// boolean "is this username/password pair valid".
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrUserExists indicates the username is already registered.
var ErrUserExists = errors.New("username already exists")

type user struct {
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Store persists user credentials to a JSON file.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a credential store backed by the file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Register stores a new user. Duplicate usernames are rejected.
func (s *Store) Register(username, password string) error {
	if username == "" {
		return errors.New("username must not be empty")
	}

	users := s.load()
	if _, exists := users[username]; exists {
		return ErrUserExists
	}
	users[username] = user{Password: password, Name: username}

	if err := s.save(users); err != nil {
		return err
	}
	s.logger.Info("user registered", zap.String("username", username))
	return nil
}

// Authenticate reports whether the username/password pair is valid.
func (s *Store) Authenticate(username, password string) bool {
	u, ok := s.load()[username]
	return ok && u.Password == password
}

func (s *Store) load() map[string]user {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]user{}
	}
	users := map[string]user{}
	if err := json.Unmarshal(data, &users); err != nil {
		s.logger.Warn("user file malformed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return map[string]user{}
	}
	return users
}

func (s *Store) save(users map[string]user) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace user file: %w", err)
	}
	return nil
}

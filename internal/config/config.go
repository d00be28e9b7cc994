// Package config resolves runtime settings from flags, environment, a .env
// file and the YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/app"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/model"
)

const (
	EnvDB               = "ROUTINEMATE_DB"
	EnvUser             = "ROUTINEMATE_USER"
	EnvStore            = "ROUTINEMATE_STORE"
	EnvFirestoreProject = "ROUTINEMATE_FIRESTORE_PROJECT"

	DefaultUserID = "guest"
)

type StoreKind string

const (
	StoreSQLite    StoreKind = "sqlite"
	StoreMemory    StoreKind = "memory"
	StoreFirestore StoreKind = "firestore"
)

func ParseStoreKind(raw string) (StoreKind, error) {
	switch k := StoreKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return StoreSQLite, nil
	case StoreSQLite, StoreMemory, StoreFirestore:
		return k, nil
	default:
		return "", fmt.Errorf("invalid store %q (use sqlite, memory or firestore)", raw)
	}
}

// File mirrors config.yaml.
type File struct {
	Store            string               `yaml:"store"`
	FirestoreProject string               `yaml:"firestore_project"`
	DefaultRange     string               `yaml:"default_range"`
	Scoring          *model.ScoringPolicy `yaml:"scoring"`
}

// Flags carries values set on the command line. Empty fields are unset.
type Flags struct {
	DBPath     string
	UserID     string
	ConfigPath string
}

type Settings struct {
	Store            StoreKind
	DBPath           string
	UserID           string
	FirestoreProject string
	DefaultRange     dashboard.Range
	Scoring          model.ScoringPolicy
	// ConfigPath is the YAML file that was read, or empty when none existed.
	ConfigPath string
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a YAML config. Scoring weights missing from the file keep
// their defaults. It returns nil for a missing file unless required is set.
func LoadFile(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	defaults := model.DefaultScoringPolicy()
	f := File{Scoring: &defaults}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Resolve applies flags over environment over the YAML file over defaults.
// Stored app_config values are layered on later by the caller once the
// database is open.
func Resolve(flags Flags, getenv func(string) string) (Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	s := Settings{
		Store:        StoreSQLite,
		UserID:       DefaultUserID,
		DefaultRange: dashboard.Range7d,
		Scoring:      model.DefaultScoringPolicy(),
	}

	configPath := strings.TrimSpace(flags.ConfigPath)
	required := configPath != ""
	if configPath == "" {
		p, err := app.DefaultConfigPath()
		if err != nil {
			return Settings{}, err
		}
		configPath = p
	}
	file, err := LoadFile(configPath, required)
	if err != nil {
		return Settings{}, err
	}
	if file != nil {
		s.ConfigPath = configPath
		if err := s.applyFile(file); err != nil {
			return Settings{}, err
		}
	}

	if v := strings.TrimSpace(getenv(EnvStore)); v != "" {
		kind, err := ParseStoreKind(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvStore, err)
		}
		s.Store = kind
	}
	if v := strings.TrimSpace(getenv(EnvFirestoreProject)); v != "" {
		s.FirestoreProject = v
	}
	s.DBPath = firstNonEmpty(flags.DBPath, getenv(EnvDB))
	if s.DBPath == "" {
		p, err := app.DefaultDBPath()
		if err != nil {
			return Settings{}, err
		}
		s.DBPath = p
	}
	s.UserID = firstNonEmpty(flags.UserID, getenv(EnvUser), DefaultUserID)

	if s.Store == StoreFirestore && s.FirestoreProject == "" {
		return Settings{}, fmt.Errorf("firestore store requires %s or firestore_project in %s", EnvFirestoreProject, configPath)
	}
	return s, nil
}

func (s *Settings) applyFile(f *File) error {
	if strings.TrimSpace(f.Store) != "" {
		kind, err := ParseStoreKind(f.Store)
		if err != nil {
			return fmt.Errorf("config store: %w", err)
		}
		s.Store = kind
	}
	if v := strings.TrimSpace(f.FirestoreProject); v != "" {
		s.FirestoreProject = v
	}
	if strings.TrimSpace(f.DefaultRange) != "" {
		r, err := dashboard.ParseRange(f.DefaultRange)
		if err != nil {
			return fmt.Errorf("config default_range: %w", err)
		}
		s.DefaultRange = r
	}
	if f.Scoring != nil {
		s.Scoring = *f.Scoring
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

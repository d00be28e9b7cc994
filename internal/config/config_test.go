package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/config"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/dashboard"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "")
	s, err := config.Resolve(config.Flags{ConfigPath: path, DBPath: "/tmp/rm.db"}, envMap(nil))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Store != config.StoreSQLite || s.UserID != config.DefaultUserID || s.DefaultRange != dashboard.Range7d {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if s.Scoring.WorkoutWeight != 0.45 {
		t.Fatalf("expected default scoring policy, got %+v", s.Scoring)
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
store: memory
firestore_project: from-file
default_range: 30d
scoring:
  diet_weight: 0.5
`)
	s, err := config.Resolve(config.Flags{ConfigPath: path, UserID: "flag-user"}, envMap(map[string]string{
		config.EnvUser:  "env-user",
		config.EnvDB:    "/env/routinemate.db",
		config.EnvStore: "sqlite",
	}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.UserID != "flag-user" {
		t.Fatalf("expected flag user to win, got %q", s.UserID)
	}
	if s.DBPath != "/env/routinemate.db" {
		t.Fatalf("expected env db path, got %q", s.DBPath)
	}
	if s.Store != config.StoreSQLite {
		t.Fatalf("expected env store to override file, got %q", s.Store)
	}
	if s.FirestoreProject != "from-file" || s.DefaultRange != dashboard.Range30d {
		t.Fatalf("expected file values, got %+v", s)
	}
	if s.Scoring.DietWeight != 0.5 || s.Scoring.WorkoutWeight != 0.45 || s.Scoring.ConsistencyWeight != 0.15 {
		t.Fatalf("expected partial scoring override, got %+v", s.Scoring)
	}
	if s.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, s.ConfigPath)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		body string
		env  map[string]string
	}{
		"bad store in file":         {body: "store: postgres\n"},
		"bad range in file":         {body: "default_range: 14d\n"},
		"bad store in env":          {env: map[string]string{config.EnvStore: "redis"}},
		"firestore without project": {env: map[string]string{config.EnvStore: "firestore"}},
		"malformed yaml":            {body: "store: [\n"},
	}
	for name, tc := range cases {
		path := writeConfig(t, tc.body)
		if _, err := config.Resolve(config.Flags{ConfigPath: path, DBPath: "x.db"}, envMap(tc.env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestResolveRequiresExplicitConfigFile(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := config.Resolve(config.Flags{ConfigPath: missing}, envMap(nil)); err == nil {
		t.Fatalf("expected error for missing --config file")
	}
	f, err := config.LoadFile(missing, false)
	if err != nil || f != nil {
		t.Fatalf("expected optional missing file to be ignored, got %+v (%v)", f, err)
	}
}

func TestLoadDotEnvDoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ROUTINEMATE_TEST_A=from-file\nROUTINEMATE_TEST_B=from-file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("ROUTINEMATE_TEST_A", "from-env")
	t.Setenv("ROUTINEMATE_TEST_B", "")
	os.Unsetenv("ROUTINEMATE_TEST_B")

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("ROUTINEMATE_TEST_A"); got != "from-env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
	if got := os.Getenv("ROUTINEMATE_TEST_B"); got != "from-file" {
		t.Fatalf("expected .env value, got %q", got)
	}
	if err := config.LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestParseStoreKind(t *testing.T) {
	t.Parallel()
	kind, err := config.ParseStoreKind(" Firestore ")
	if err != nil || kind != config.StoreFirestore {
		t.Fatalf("expected firestore, got %q (%v)", kind, err)
	}
	kind, err = config.ParseStoreKind("")
	if err != nil || kind != config.StoreSQLite {
		t.Fatalf("expected empty to default to sqlite, got %q (%v)", kind, err)
	}
}

package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" || info.GoVersion == "" || info.OS == "" || info.Arch == "" {
		t.Errorf("incomplete build info: %+v", info)
	}
	if info.GoVersion != GoVersion {
		t.Errorf("GoVersion = %s, want %s", info.GoVersion, GoVersion)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STARTUP_TEST_SET", "custom")
	t.Setenv("STARTUP_TEST_EMPTY", "")

	if got := getEnv("STARTUP_TEST_SET", "default"); got != "custom" {
		t.Errorf("getEnv(set) = %q", got)
	}
	if got := getEnv("STARTUP_TEST_EMPTY", "default"); got != "default" {
		t.Errorf("getEnv(empty) = %q, want default", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STARTUP_TEST_BOOL", tt.value)
			if got := getEnvBool("STARTUP_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 3},
		{"8", 8},
		{"0", 0},
		{"-2", 3},
		{"many", 3},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STARTUP_TEST_INT", tt.value)
			if got := getEnvInt("STARTUP_TEST_INT", 3); got != tt.want {
				t.Errorf("getEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dbDir := filepath.Join(t.TempDir(), "catalog")
	t.Setenv("DATABASE_DIR", dbDir)
	t.Setenv("PORT", "9999")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_PATH", "")
	t.Setenv("IMPORT_WORKERS", "4")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("PROJECTS_DIR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("engine paths = %q, %q", cfg.FFmpegPath, cfg.FFprobePath)
	}
	if cfg.ImportWorkers != 4 {
		t.Errorf("ImportWorkers = %d", cfg.ImportWorkers)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if !cfg.LogHealthChecks {
		t.Error("LogHealthChecks should default to true")
	}
	if cfg.DatabasePath != filepath.Join(dbDir, DatabaseFile) {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if info, err := os.Stat(dbDir); err != nil || !info.IsDir() {
		t.Errorf("database directory not created: %v", err)
	}
}

func TestLoadConfig_DatabaseDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_DIR", file)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when DATABASE_DIR is a file")
	}
}

func TestLogEngineInit_MissingBinaries(t *testing.T) {
	status := LogEngineInit(&Config{
		FFmpegPath:  "definitely-not-ffmpeg-binary",
		FFprobePath: "definitely-not-ffprobe-binary",
	})
	if status.FFmpeg || status.FFprobe {
		t.Errorf("status = %+v, want both unavailable", status)
	}
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET").Name("health")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/import", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("POST")

	routes, err := GetRoutes(r)
	if err != nil {
		t.Fatal(err)
	}

	found := map[string]string{}
	for _, route := range routes {
		found[route.Path] = route.Method
	}
	if found["/health"] != "GET" {
		t.Errorf("missing GET /health in %+v", routes)
	}
	if found["/api/import"] != "POST" {
		t.Errorf("missing POST /api/import in %+v", routes)
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := map[string]string{
		"/api/import":       "api/import",
		"/api/import/batch": "api/import",
		"/api/assets/file":  "api/assets",
		"/health":           "health",
		"/":                 "root",
	}
	for in, want := range tests {
		if got := getRouteGroup(in); got != want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", in, got, want)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join(dir, "ro") {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, filepath.Join(dir, "ro"))
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
	if filepath.Base(filepath.Dir(configPath)) != "ro" {
		t.Errorf("GetConfigPath() should live in an 'ro' directory, got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("Version = %v, want 1", cfg.Version)
	}
	if cfg.Router.Username != "admin" || cfg.Router.Password != "admin" {
		t.Errorf("Router credentials = %q/%q, want admin/admin", cfg.Router.Username, cfg.Router.Password)
	}
	if cfg.Router.Address != "" {
		t.Errorf("Router.Address = %q, want empty (use default gateway)", cfg.Router.Address)
	}
	if cfg.Display.StatusInterval != time.Second || cfg.Display.ScanInterval != 8*time.Second {
		t.Errorf("Display intervals = %v/%v", cfg.Display.StatusInterval, cfg.Display.ScanInterval)
	}
	if cfg.Association.MaxAttempts != 30 || cfg.Association.SecondaryKeyFallback != "12345678" {
		t.Errorf("Association = %+v", cfg.Association)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Display.ScanInterval != DefaultScanInterval {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
router:
  address: 10.0.0.1:8080
display:
  status_interval: 500ms
association:
  retry_delay: 0s
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Router.Address != "10.0.0.1:8080" {
		t.Errorf("Router.Address = %q", cfg.Router.Address)
	}
	if cfg.Display.StatusInterval != 500*time.Millisecond {
		t.Errorf("StatusInterval = %v, want 500ms", cfg.Display.StatusInterval)
	}
	if cfg.Router.Username != "admin" || cfg.Display.ScanInterval != DefaultScanInterval {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
	if cfg.Association.RetryDelay != 0 {
		t.Errorf("explicit zero retry delay should be kept, got %v", cfg.Association.RetryDelay)
	}
	if cfg.Association.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want default", cfg.Association.MaxAttempts)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing version", "router:\n  username: x\n", "unsupported config version: 0"},
		{"future version", "version: 2\n", "unsupported config version: 2"},
		{"bad yaml", "version: [1\n", "failed to parse"},
		{"bad duration", "version: 1\ndisplay:\n  scan_interval: soon\n", "failed to parse"},
		{"bad fallback", "version: 1\ndisplay:\n  ssid_fallback: maybe\n", "ssid_fallback"},
		{"zero attempts", "version: 1\nassociation:\n  max_attempts: 0\n", "max_attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Router.Address = "192.168.0.1"
	cfg.Display.SSIDFallback = "hard"
	cfg.Association.Timeout = 90 * time.Second

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "scan_interval: 8s") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestInitAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro", "config.yaml")

	if err := InitAt(path, false); err != nil {
		t.Fatalf("InitAt() error = %v", err)
	}
	if err := InitAt(path, false); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("second InitAt() without force should refuse to overwrite, got %v", err)
	}
	if err := InitAt(path, true); err != nil {
		t.Errorf("InitAt(force) error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadFrom() after InitAt = %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRouter:   "10.0.0.1",
		EnvPassword: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.ApplyEnv(lookup)

	if cfg.Router.Address != "10.0.0.1" {
		t.Errorf("Address = %q", cfg.Router.Address)
	}
	if cfg.Router.Username != "admin" {
		t.Errorf("unset RO_USER should keep the username, got %q", cfg.Router.Username)
	}
	if cfg.Router.Password != "" {
		t.Errorf("RO_PASSWORD set to empty should clear the password, got %q", cfg.Router.Password)
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Display.StatusInterval = 0
	cfg.Display.SignalEvery = 0
	cfg.Association.RetryDelay = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, field := range []string{"status_interval", "signal_every", "retry_delay"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q should mention %s", err, field)
		}
	}
}

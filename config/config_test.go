package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type serverConfig struct {
	Addr            string        `yaml:"addr"`
	DispatchTimeout time.Duration `yaml:"dispatchTimeout"`
	Debug           bool          `yaml:"debug"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
}

type nestedConfig struct {
	Server serverConfig `yaml:"server"`
}

func TestLoader_Load(t *testing.T) {
	t.Run("populates set fields only", func(t *testing.T) {
		l := Loader{lookup: envMap(map[string]string{
			"MEDIATOR_SERVER_ADDR":             ":9090",
			"MEDIATOR_SERVER_DISPATCH_TIMEOUT": "5s",
		})}

		cfg := serverConfig{Addr: ":8080", Debug: true}
		if err := l.Load("server", &cfg); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Addr != ":9090" {
			t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
		}
		if cfg.DispatchTimeout != 5*time.Second {
			t.Errorf("DispatchTimeout = %v, want 5s", cfg.DispatchTimeout)
		}
		if !cfg.Debug {
			t.Error("Debug overwritten, want default retained")
		}
	})

	t.Run("nested structs add a segment", func(t *testing.T) {
		l := Loader{lookup: envMap(map[string]string{
			"MEDIATOR_SVC_SERVER_MAX_BODY_BYTES": "1024",
		})}

		var cfg nestedConfig
		if err := l.Load("svc", &cfg); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Server.MaxBodyBytes != 1024 {
			t.Errorf("MaxBodyBytes = %d, want 1024", cfg.Server.MaxBodyBytes)
		}
	})

	t.Run("custom prefix", func(t *testing.T) {
		l := Loader{Prefix: "APP", lookup: envMap(map[string]string{
			"APP_SERVER_ADDR": ":1234",
		})}

		var cfg serverConfig
		if err := l.Load("server", &cfg); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Addr != ":1234" {
			t.Errorf("Addr = %q, want %q", cfg.Addr, ":1234")
		}
	})

	t.Run("invalid duration fails", func(t *testing.T) {
		l := Loader{lookup: envMap(map[string]string{
			"MEDIATOR_SERVER_DISPATCH_TIMEOUT": "soon",
		})}

		var cfg serverConfig
		if err := l.Load("server", &cfg); err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})

	t.Run("rejects non-pointer dst", func(t *testing.T) {
		if err := (Loader{}).Load("server", serverConfig{}); err == nil {
			t.Error("Load() error = nil, want type error")
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("file values with env overrides", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		data := []byte("addr: \":7070\"\ndispatchTimeout: 2s\n")
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatal(err)
		}

		t.Setenv("MEDIATOR_SERVER_ADDR", ":9999")

		cfg := serverConfig{Addr: ":8080"}
		if err := LoadFile(path, "server", &cfg); err != nil {
			t.Fatalf("LoadFile() error: %v", err)
		}
		if cfg.Addr != ":9999" {
			t.Errorf("Addr = %q, want env override %q", cfg.Addr, ":9999")
		}
		if cfg.DispatchTimeout != 2*time.Second {
			t.Errorf("DispatchTimeout = %v, want file value 2s", cfg.DispatchTimeout)
		}
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg := serverConfig{Addr: ":8080"}
		if err := LoadFile("does/not/exist.yaml", "server", &cfg); err != nil {
			t.Fatalf("LoadFile() error: %v", err)
		}
		if cfg.Addr != ":8080" {
			t.Errorf("Addr = %q, want default retained", cfg.Addr)
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}

		var cfg serverConfig
		if err := LoadFile(path, "server", &cfg); err == nil {
			t.Error("LoadFile() error = nil, want parse error")
		}
	})
}

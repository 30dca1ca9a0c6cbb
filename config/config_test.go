package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NaveLIL/erez-chrome/models"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	m := NewManager()
	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := m.Get()

	if cfg.Chrome.CaptionHeight != 32 {
		t.Errorf("Expected caption height 32, got %d", cfg.Chrome.CaptionHeight)
	}
	if cfg.Chrome.Border != models.UniformBorder(6) {
		t.Errorf("Expected uniform border 6, got %+v", cfg.Chrome.Border)
	}
	cr, err := cfg.Chrome.ParsedCornerRadius()
	if err != nil {
		t.Fatalf("Unexpected corner radius error: %v", err)
	}
	if cr != models.UniformCornerRadius(8) {
		t.Errorf("Expected uniform radius 8, got %+v", cr)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Expected defaults to validate, got %v", errs)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	m := NewManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected default config to be written: %v", err)
	}
	if !m.Get().Shadow.Enabled {
		t.Error("Expected shadow to be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`chrome:
  caption_height: 40
  corner_radius: "1,5; 2; 3; 4"
  locale: "de-DE"
  border:
    left: 2
    top: 3
    right: 4
    bottom: 5
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := m.Get()

	if cfg.Chrome.CaptionHeight != 40 {
		t.Errorf("Expected caption height 40, got %d", cfg.Chrome.CaptionHeight)
	}
	want := models.BorderThickness{Left: 2, Top: 3, Right: 4, Bottom: 5}
	if cfg.Chrome.Border != want {
		t.Errorf("Expected border %+v, got %+v", want, cfg.Chrome.Border)
	}
	cr, err := cfg.Chrome.ParsedCornerRadius()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cr != (models.CornerRadius{TopLeft: 1.5, TopRight: 2, BottomLeft: 3, BottomRight: 4}) {
		t.Errorf("Unexpected corner radius %+v", cr)
	}
	// untouched keys keep their defaults
	if cfg.Chrome.ButtonWidth != 46 {
		t.Errorf("Expected default button width 46, got %d", cfg.Chrome.ButtonWidth)
	}
}

func TestValidate(t *testing.T) {
	m := NewManager()
	if err := m.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	c := m.Get()
	c.Chrome.CaptionHeight = -1
	c.Chrome.Border.Left = -2
	c.Chrome.CornerRadius = "1,2"
	c.Chrome.Theme.CaptionColor = "red"
	c.Shadow.Thickness = 0
	c.Logging.Level = "verbose"

	if errs := c.Validate(); len(errs) != 6 {
		t.Errorf("Expected 6 validation errors, got %d: %v", len(errs), errs)
	}
}

type reload struct {
	cfg *Config
	err error
}

func startWatch(t *testing.T) (*Manager, string, <-chan reload) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chrome:\n  caption_height: 32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ch := make(chan reload, 32)
	m.Watch(func(cfg *Config, err error) {
		select {
		case ch <- reload{cfg: cfg, err: err}:
		default:
		}
	})
	return m, path, ch
}

func TestWatchReloadsOnWrite(t *testing.T) {
	m, path, ch := startWatch(t)

	if err := os.WriteFile(path, []byte("chrome:\n  caption_height: 44\n"), 0644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-ch:
			if r.err != nil || r.cfg.Chrome.CaptionHeight != 44 {
				continue
			}
			if r.cfg.Chrome.ButtonWidth != 46 {
				t.Errorf("Expected default button width 46, got %d", r.cfg.Chrome.ButtonWidth)
			}
			if m.Get().Chrome.CaptionHeight != 44 {
				t.Errorf("Expected manager to hold caption height 44, got %d", m.Get().Chrome.CaptionHeight)
			}
			return
		case <-timeout:
			t.Fatal("Expected a reload with caption height 44")
		}
	}
}

func TestWatchReportsUnmarshalError(t *testing.T) {
	m, path, ch := startWatch(t)

	if err := os.WriteFile(path, []byte("chrome:\n  caption_height: \"tall\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-ch:
			if r.err == nil {
				continue
			}
			if r.cfg != nil {
				t.Error("Expected no config with a reload error")
			}
			if m.Get().Chrome.CaptionHeight != 32 {
				t.Errorf("Expected previous caption height 32 to be kept, got %d", m.Get().Chrome.CaptionHeight)
			}
			return
		case <-timeout:
			t.Fatal("Expected a reload error")
		}
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ballpit/sim"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Sim != sim.DefaultConfig() {
		t.Fatalf("sim config = %+v, want defaults", s.Sim)
	}
	if s.Addr != ":8080" || s.BroadcastEvery != 1 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")
	yml := "addr: \":9000\"\nmax_ticks: 600\nsim:\n  bodies: 25\n  gravity: 0.2\n  tick_interval: 10ms\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BALLPIT_GRAVITY", "0.5")
	t.Setenv("BALLPIT_PALETTE", "a.png,b.png")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Addr != ":9000" || s.MaxTicks != 600 {
		t.Fatalf("yaml not applied: %+v", s)
	}
	if s.Sim.Bodies != 25 || s.Sim.TickInterval != 10*time.Millisecond {
		t.Fatalf("yaml sim section not applied: %+v", s.Sim)
	}
	if s.Sim.Gravity != 0.5 {
		t.Fatalf("gravity = %f, want env override 0.5", s.Sim.Gravity)
	}
	if s.Sim.Radius != sim.DefaultRadius {
		t.Fatalf("radius = %f, want default kept", s.Sim.Radius)
	}
	if len(s.Palette) != 2 || s.Palette[1] != "b.png" {
		t.Fatalf("palette = %v", s.Palette)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BALLPIT_STEP_DIVISION", "0")
	if _, err := Load(""); !errors.Is(err, sim.ErrZeroStepDivision) {
		t.Fatalf("err = %v, want ErrZeroStepDivision", err)
	}

	t.Setenv("BALLPIT_STEP_DIVISION", "1")
	t.Setenv("BALLPIT_BODIES", "lots")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected parse error for BALLPIT_BODIES")
	}
}

func TestInitConfigLoadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BALLPIT_TEST_VALUE=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BALLPIT_TEST_VALUE", "")
	os.Unsetenv("BALLPIT_TEST_VALUE")

	if err := InitConfig(filepath.Join(t.TempDir(), "nope.env"), path); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	v, err := GetEnvVariable("BALLPIT_TEST_VALUE")
	if err != nil || v != "from-dotenv" {
		t.Fatalf("GetEnvVariable = %q, %v; want from-dotenv", v, err)
	}
	if _, err := GetEnvVariable(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

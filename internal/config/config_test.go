package config

import (
	"testing"
	"time"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_FLOAT", "0.5")
	t.Setenv("TEST_DATE", "2024-03-01")

	if got := GetEnv("TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q", got)
	}
	if got := GetEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvAsInt = %d", got)
	}
	if got := GetEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt bad value = %d, want default", got)
	}
	if got := GetEnvAsFloat("TEST_FLOAT", 1.0); got != 0.5 {
		t.Errorf("GetEnvAsFloat = %v", got)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := GetEnvAsDate("TEST_DATE", time.Time{}); !got.Equal(want) {
		t.Errorf("GetEnvAsDate = %s", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_ITERS", "CONVERGENCE_THRESHOLD",
		"BLOWOUT_MIN_OTHER_RESULTS", "SEASON_START", "SEASON_END"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("default port = %s", cfg.Port)
	}
	if cfg.MaxIters != 5000 || cfg.ConvergenceThreshold != 0.01 || cfg.BlowoutMinOtherResults != 5 {
		t.Errorf("solver defaults = %+v", cfg)
	}
	if cfg.SeasonEnd.Before(cfg.SeasonStart) {
		t.Errorf("default season window inverted: %s .. %s", cfg.SeasonStart, cfg.SeasonEnd)
	}
}

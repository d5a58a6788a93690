package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Ledger.FeeBps != 250 {
		t.Errorf("expected default fee 250 bps, got %d", cfg.Ledger.FeeBps)
	}
	if cfg.Ledger.MinGoalAmount != 1 {
		t.Errorf("expected default min goal 1, got %d", cfg.Ledger.MinGoalAmount)
	}
	if cfg.Archive.QueueSize != 1024 || cfg.Archive.Workers != 4 {
		t.Errorf("unexpected archive defaults: %+v", cfg.Archive)
	}
	if cfg.Task.Interval != 60 {
		t.Errorf("expected default task interval 60, got %d", cfg.Task.Interval)
	}
	if cfg.Log.Level != "info" || cfg.Log.Output != "stdout" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

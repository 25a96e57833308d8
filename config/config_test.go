package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfigMissingFileFallsBackToDefaults(t *testing.T) {
	conf := ParseConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if conf.Generator.Sellers != 30 {
		t.Errorf("sellers = %d, want the default 30", conf.Generator.Sellers)
	}
	if conf.Generator.DuplicateExtIDRate != 0.05 {
		t.Errorf("duplicate rate = %v, want 0.05", conf.Generator.DuplicateExtIDRate)
	}
	if conf.Database.CreateBatchSize != 500 {
		t.Errorf("batch size = %d, want 500", conf.Database.CreateBatchSize)
	}
	if conf.Logging.LogLevel != "info" {
		t.Errorf("log level = %q, want info", conf.Logging.LogLevel)
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "generator:\n  sellers: 5\n  missingSellerRate: 0.1\nlogging:\n  logLevel: \"debug\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	conf := ParseConfig(path)
	if conf.Generator.Sellers != 5 {
		t.Errorf("sellers = %d, want 5", conf.Generator.Sellers)
	}
	if conf.Generator.MissingSellerRate != 0.1 {
		t.Errorf("missing seller rate = %v, want 0.1", conf.Generator.MissingSellerRate)
	}
	if conf.Logging.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", conf.Logging.LogLevel)
	}
	// untouched sections keep their defaults
	if conf.Generator.BadQtyRate != 0.01 {
		t.Errorf("bad qty rate = %v, want the default 0.01", conf.Generator.BadQtyRate)
	}
}

package database

import "testing"

func TestBuildDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "schnose",
		Password: "hunter2",
		Database: "schnose",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=schnose password=hunter2 dbname=schnose sslmode=require"
	if got := buildDSN(cfg); got != want {
		t.Errorf("buildDSN = %q, want %q", got, want)
	}

	// Local setups rarely run TLS, so the ssl mode defaults off.
	cfg.SSLMode = ""
	if got := buildDSN(cfg); got != "host=db.internal port=5433 user=schnose password=hunter2 dbname=schnose sslmode=disable" {
		t.Errorf("buildDSN default ssl mode = %q", got)
	}
}

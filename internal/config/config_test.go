package config

import (
	"os"
	"testing"
)

func unsetStoreEnv() {
	_ = os.Unsetenv("MESHWORK_DOCSTORE_DRIVER")
	_ = os.Unsetenv("MESHWORK_SQLITE_PATH")
	_ = os.Unsetenv("MESHWORK_POSTGRES_DSN")
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetStoreEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DocStoreDriver != "sqlite" || cfg.SQLitePath == "" {
		t.Fatalf("unexpected default store config: %+v", cfg)
	}
	if cfg.HTTPPort != 8080 || cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("unexpected default http config: %+v", cfg)
	}
}

func TestConfigLoad_DriverEnvOverride(t *testing.T) {
	unsetStoreEnv()
	_ = os.Setenv("MESHWORK_DOCSTORE_DRIVER", "memory")
	defer unsetStoreEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DocStoreDriver != "memory" {
		t.Fatalf("driver env override failed, got %s", cfg.DocStoreDriver)
	}
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	unsetStoreEnv()
	_ = os.Setenv("MESHWORK_DOCSTORE_DRIVER", "mongodb")
	defer unsetStoreEnv()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestResolveDefaults_PostgresRequiresDSN(t *testing.T) {
	unsetStoreEnv()
	_ = os.Setenv("MESHWORK_DOCSTORE_DRIVER", "postgres")
	defer unsetStoreEnv()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for postgres driver without DSN")
	}
}

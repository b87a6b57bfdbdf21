package config

import "testing"

func TestBackendSelection(t *testing.T) {
	if b := (Config{}).Backend(); b != BackendMemory {
		t.Fatalf("empty config: %s", b)
	}
	if b := (Config{DatabaseURL: "postgres://x"}).Backend(); b != BackendPostgres {
		t.Fatalf("database url set: %s", b)
	}
	if b := (Config{CosmosEndpoint: "https://acct.documents.azure.com"}).Backend(); b != BackendCosmos {
		t.Fatalf("cosmos endpoint set: %s", b)
	}
	// DATABASE_URL wins when both are present.
	both := Config{DatabaseURL: "postgres://x", CosmosEndpoint: "https://y"}
	if b := both.Backend(); b != BackendPostgres {
		t.Fatalf("both set: %s", b)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{CosmosEndpoint: "https://acct.documents.azure.com"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("cosmos without database name should fail")
	}
	cfg.CosmosDatabase = "journal"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("memory backend needs no settings: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("COSMOS_CONTAINER_NAME", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port default: %s", cfg.Port)
	}
	if cfg.CosmosContainer != "entries" {
		t.Fatalf("container default: %s", cfg.CosmosContainer)
	}
}

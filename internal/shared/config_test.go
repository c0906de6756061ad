package shared

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "IMPORT_SOURCE", "IMPORT_HOTEL_CODES", "IMPORT_INTERVAL", "CACHE_TTL_SEC", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	c := fromEnv()
	if c.StoreDriver != StoreMySQL || c.ImportSource != SourceFixtures {
		t.Fatalf("driver/source: %q %q", c.StoreDriver, c.ImportSource)
	}
	if c.CacheTTL != 900*time.Second || c.ImportInterval != 0 || c.RedisAddr != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ImportCodes != nil {
		t.Fatalf("codes: %v", c.ImportCodes)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("IMPORT_HOTEL_CODES", " MOV_EG_001, ,MOV_SB_002 ")
	t.Setenv("IMPORT_INTERVAL", "30m")
	t.Setenv("IMPORT_WORKERS", "0")
	t.Setenv("REDIS_DB", "3")

	c := fromEnv()
	if c.StoreDriver != StoreMemory {
		t.Fatalf("driver: %q", c.StoreDriver)
	}
	if len(c.ImportCodes) != 2 || c.ImportCodes[0] != "MOV_EG_001" || c.ImportCodes[1] != "MOV_SB_002" {
		t.Fatalf("codes: %v", c.ImportCodes)
	}
	if c.ImportInterval != 30*time.Minute || c.ImportWorkers != 1 || c.RedisDB != 3 {
		t.Fatalf("unexpected: %+v", c)
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("CACHE_TTL_SEC", "soon")
	t.Setenv("IMPORT_INTERVAL", "hourly")

	c := fromEnv()
	if c.StoreDriver != StoreMySQL || c.CacheTTL != 900*time.Second || c.ImportInterval != 0 {
		t.Fatalf("unexpected: %+v", c)
	}
}

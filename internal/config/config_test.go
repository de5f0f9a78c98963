package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("APP_SERVICE_NAME", "")
	t.Setenv("BOOTSTRAP_WORKERS", "")
	t.Setenv("ANUBIS_CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "hr-profile-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.BootstrapWorkers != 4 {
		t.Fatalf("unexpected bootstrap workers: %d", cfg.BootstrapWorkers)
	}
	if cfg.AnubisCacheTTL != 30*time.Second {
		t.Fatalf("unexpected anubis cache ttl: %s", cfg.AnubisCacheTTL)
	}
	if !cfg.AnubisCircuitEnabled {
		t.Fatalf("expected anubis circuit breaker enabled by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("memory allowed in dev", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORAGE_DRIVER", "Memory")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageDriverMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("memory rejected in prod", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for STORAGE_DRIVER=memory in prod")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORAGE_DRIVER", "mysql")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_DBPoolValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	tests := []struct {
		name    string
		open    string
		idle    string
		life    string
		wantErr bool
	}{
		{name: "defaults", open: "", idle: "", life: ""},
		{name: "custom", open: "10", idle: "10", life: "5m"},
		{name: "zero open", open: "0", wantErr: true},
		{name: "idle above open", open: "2", idle: "3", wantErr: true},
		{name: "bad lifetime", life: "forever", wantErr: true},
		{name: "negative lifetime", life: "-1m", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_MAX_OPEN_CONNS", tc.open)
			t.Setenv("DB_MAX_IDLE_CONNS", tc.idle)
			t.Setenv("DB_CONN_MAX_LIFETIME", tc.life)

			_, err := Load()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_AnubisConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("ANUBIS_ADMIN_KEY", " admin-key ")
		t.Setenv("ANUBIS_TIMEOUT", "2s")
		t.Setenv("ANUBIS_CACHE_TTL", "-1s")
		t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AnubisAdminKey != "admin-key" {
			t.Fatalf("unexpected admin key: %q", cfg.AnubisAdminKey)
		}
		if cfg.AnubisTimeout != 2*time.Second {
			t.Fatalf("unexpected anubis timeout: %s", cfg.AnubisTimeout)
		}
		if cfg.AnubisCacheTTL >= 0 {
			t.Fatalf("expected negative cache ttl to be kept, got %s", cfg.AnubisCacheTTL)
		}
		if cfg.AnubisCircuitFailureCount != 3 {
			t.Fatalf("unexpected failure count: %d", cfg.AnubisCircuitFailureCount)
		}
	})

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ANUBIS_CIRCUIT_FAILURE_COUNT=0")
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("ANUBIS_CIRCUIT_FAILURE_COUNT", "")
		t.Setenv("ANUBIS_TIMEOUT", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for ANUBIS_TIMEOUT=0s")
		}
	})
}

func TestLoad_BootstrapWorkersBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	for _, value := range []string{"0", "65", "many"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("BOOTSTRAP_WORKERS", value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for BOOTSTRAP_WORKERS=%s", value)
			}
		})
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")
		t.Setenv("STORAGE_DRIVER", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "hr-profile-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "hr-profile-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})

	t.Run("only separators rejected", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

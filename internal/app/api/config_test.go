package api

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "OTEL_TRACES_EXPORTER", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_INSECURE", "DENTALLAB_SLOT_DRIVER", "DENTALLAB_SQLITE_PATH", "POSTGRES_DSN",
	"MYSQL_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX", "DENTALLAB_ORDERS_KEY",
	"DENTALLAB_LANGUAGE_KEY", "DENTALLAB_ARCHIVE_DRIVER", "DENTALLAB_ARCHIVE_DIR", "DENTALLAB_S3_BUCKET",
	"DENTALLAB_S3_REGION", "DENTALLAB_S3_ENDPOINT", "DENTALLAB_S3_PATH_STYLE", "DENTALLAB_S3_ACCESS_KEY_ID",
	"DENTALLAB_S3_SECRET_ACCESS_KEY",
}

// isolateEnv unsets every config key for the duration of the test and runs
// it from an empty directory so no .env file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfig_Overrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DENTALLAB_SLOT_DRIVER", " Redis ")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DENTALLAB_ARCHIVE_DRIVER", "fs")
	t.Setenv("DENTALLAB_ORDERS_KEY", "lab_a_orders")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, SlotRedis, cfg.SlotDriver)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, ArchiveFS, cfg.ArchiveDriver)
	require.Equal(t, "lab_a_orders", cfg.OrdersKey)
	require.Equal(t, ":9090", cfg.Addr())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Port = "http"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.SlotDriver = "etcd"
	require.ErrorContains(t, bad.Validate(), "DENTALLAB_SLOT_DRIVER")

	bad = cfg
	bad.ArchiveDriver = ArchiveS3
	require.ErrorContains(t, bad.Validate(), "DENTALLAB_S3_BUCKET")

	bad.S3Bucket = "exports"
	require.NoError(t, bad.Validate())
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	isolateEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DENTALLAB_SLOT_DRIVER=memory\nDENTALLAB_LANGUAGE_KEY=lab_lang\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, SlotMemory, cfg.SlotDriver)
	require.Equal(t, "lab_lang", cfg.LanguageKey)
}

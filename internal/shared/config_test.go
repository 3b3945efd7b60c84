package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_booking/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("WEATHER_CACHE_TTL_SECONDS", "")
	t.Setenv("GATEWAY_RPS", "")
	t.Setenv("JWT_TTL_HOURS", "")

	c := shared.Load()
	if c.HTTPAddr != ":8080" || c.WeatherCacheTTL != 10*time.Minute || c.GatewayRPS != 5 || c.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_EnvOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := "HTTP_ADDR=:7070\nGEOSYNC_WORKERS=9\nREDIS_DB=notanumber\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)
	t.Setenv("GEOSYNC_WORKERS", "3")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REDIS_DB", "")
	os.Unsetenv("HTTP_ADDR")
	os.Unsetenv("REDIS_DB")

	c := shared.Load()
	if c.HTTPAddr != ":7070" {
		t.Fatalf("expected .env value, got %q", c.HTTPAddr)
	}
	if c.Workers != 3 {
		t.Fatalf("real environment must win, got %d", c.Workers)
	}
	if c.RedisDB != 0 {
		t.Fatalf("bad integer should fall back to default, got %d", c.RedisDB)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

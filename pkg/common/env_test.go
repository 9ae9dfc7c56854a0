package common

// Verify environment loading of the OpenStack credential bundle
import (
	"os"
	"testing"
)

func TestLoadEnvs_Credentials(t *testing.T) {
	// Case 1: env vars are set
	if err := os.Setenv("OS_AUTH_URL", "https://keystone.example.com/v3"); err != nil {
		t.Fatalf("Failed to set OS_AUTH_URL: %v", err)
	}
	if err := os.Setenv("OS_USERNAME", "observer"); err != nil {
		t.Fatalf("Failed to set OS_USERNAME: %v", err)
	}
	if err := os.Setenv("OS_PASSWORD", "hunter2"); err != nil {
		t.Fatalf("Failed to set OS_PASSWORD: %v", err)
	}
	LoadEnvs()
	if OSAuthURL != "https://keystone.example.com/v3" {
		t.Errorf("Expected OSAuthURL to be overridden, got '%s'", OSAuthURL)
	}
	if OSUsername != "observer" {
		t.Errorf("Expected OSUsername to be 'observer', got '%s'", OSUsername)
	}
	if OSPassword != "hunter2" {
		t.Errorf("Expected OSPassword to be 'hunter2', got '%s'", OSPassword)
	}

	// Case 2: env vars are not set -> defaults survive
	for _, key := range []string{"OS_AUTH_URL", "OS_USERNAME", "OS_PASSWORD"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Failed to unset %s: %v", key, err)
		}
	}
	OSAuthURL = "http://127.0.0.1:5000/v3"
	OSUsername = "admin"
	LoadEnvs()
	if OSAuthURL != "http://127.0.0.1:5000/v3" {
		t.Errorf("Expected default OSAuthURL, got '%s'", OSAuthURL)
	}
	if OSUsername != "admin" {
		t.Errorf("Expected default OSUsername, got '%s'", OSUsername)
	}
}

func TestLoadEnvs_QueryLimitMax(t *testing.T) {
	if err := os.Setenv("QUERY_LIMIT_MAX", "250"); err != nil {
		t.Fatalf("Failed to set QUERY_LIMIT_MAX: %v", err)
	}
	defer os.Unsetenv("QUERY_LIMIT_MAX")
	LoadEnvs()
	if QueryLimitMax != 250 {
		t.Errorf("Expected QueryLimitMax to be 250, got %d", QueryLimitMax)
	}
}

func TestLoadEnvs_BasePath(t *testing.T) {
	if err := os.Setenv("CLOUD_SENTINEL_OS_BASE", "sentinel/"); err != nil {
		t.Fatalf("Failed to set CLOUD_SENTINEL_OS_BASE: %v", err)
	}
	defer os.Unsetenv("CLOUD_SENTINEL_OS_BASE")
	LoadEnvs()
	if Base != "/sentinel" {
		t.Errorf("Expected Base to be '/sentinel', got '%s'", Base)
	}
}

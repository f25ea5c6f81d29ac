package serverrun

import (
	"context"
	"os"
	"testing"
	"time"

	cfgpkg "github.com/LynchzDEV/CommitQ/internal/config"
)

func TestGetenvDefault(t *testing.T) {
	_ = os.Setenv("COMMITQ_TEST_VAR", "env_value")
	t.Cleanup(func() { _ = os.Unsetenv("COMMITQ_TEST_VAR") })
	if got := getenvDefault("COMMITQ_TEST_VAR", "default"); got != "env_value" {
		t.Fatalf("got %q", got)
	}
	if got := getenvDefault("COMMITQ_TEST_VAR_UNSET", "default"); got != "default" {
		t.Fatalf("got %q", got)
	}
}

// TestRunIntegration verifies Run starts both servers and shuts down on
// context cancellation.
func TestRunIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	opts := Options{
		HTTPAddr: ":0",
		WSAddr:   ":0",
		Config:   cfgpkg.Default(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := Run(ctx, opts); err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		t.Errorf("Expected context cancellation, got %v", err)
	}
}

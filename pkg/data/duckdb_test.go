package data

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "storyline-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	repo, err := NewRepository(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to init repo: %v", err)
	}

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func TestSessionRoundTrip(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	if got := repo.Get(KeyAccess); got != "" {
		t.Errorf("Expected empty value for unset key, got %q", got)
	}

	if err := repo.Set(KeyAccess, "token-123"); err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}

	if got := repo.Get(KeyAccess); got != "token-123" {
		t.Errorf("Expected token-123, got %q", got)
	}

	// Overwrite
	if err := repo.Set(KeyAccess, "token-456"); err != nil {
		t.Fatalf("Failed to overwrite key: %v", err)
	}
	if got := repo.Get(KeyAccess); got != "token-456" {
		t.Errorf("Expected token-456, got %q", got)
	}

	if err := repo.Delete(KeyAccess); err != nil {
		t.Fatalf("Failed to delete key: %v", err)
	}
	if got := repo.Get(KeyAccess); got != "" {
		t.Errorf("Expected empty value after delete, got %q", got)
	}
}

func TestClearSession(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	repo.Set(KeyAccess, "a")
	repo.Set(KeyRefresh, "r")
	repo.Set(KeyIsAuthenticated, "true")
	deviceID := repo.DeviceID()

	if err := repo.ClearSession(); err != nil {
		t.Fatalf("Failed to clear session: %v", err)
	}

	for _, key := range []string{KeyAccess, KeyRefresh, KeyIsAuthenticated} {
		if got := repo.Get(key); got != "" {
			t.Errorf("Expected %s to be cleared, got %q", key, got)
		}
	}

	if got := repo.DeviceID(); got != deviceID {
		t.Errorf("Expected device id to survive session clear, got %q", got)
	}
}

func TestDeviceIDStable(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	first := repo.DeviceID()
	if first == "" {
		t.Fatal("Expected a device id to be generated")
	}

	second := repo.DeviceID()
	if second != first {
		t.Errorf("Expected stable device id, got %q then %q", first, second)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	got, err := repo.GetProgress(1)
	if err != nil {
		t.Fatalf("Failed to get progress: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil progress for unknown story, got %+v", got)
	}

	if err := repo.SaveProgress(Progress{Story: 1, Episode: 3, Message: 42}); err != nil {
		t.Fatalf("Failed to save progress: %v", err)
	}

	got, err = repo.GetProgress(1)
	if err != nil {
		t.Fatalf("Failed to get progress: %v", err)
	}
	if got == nil {
		t.Fatal("Expected progress to be found")
	}
	if got.Episode != 3 || got.Message != 42 {
		t.Errorf("Expected episode 3 message 42, got %+v", got)
	}

	// Moving forward replaces the row for the same story
	if err := repo.SaveProgress(Progress{Story: 1, Episode: 4, Message: 7}); err != nil {
		t.Fatalf("Failed to update progress: %v", err)
	}

	got, _ = repo.GetProgress(1)
	if got.Episode != 4 || got.Message != 7 {
		t.Errorf("Expected episode 4 message 7, got %+v", got)
	}

	all, err := repo.ListProgress()
	if err != nil {
		t.Fatalf("Failed to list progress: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 progress row, got %d", len(all))
	}
}

package utils

import "testing"

func TestSweepLockScriptCompiles(t *testing.T) {
	// Compile-time smoke test: the release script should be initialized.
	if sweepLockReleaseScript == nil {
		t.Fatalf("expected script to be initialized")
	}
}

func TestSweepLockKeyIsPerWorkspace(t *testing.T) {
	if sweepLockKey("w1") == sweepLockKey("w2") {
		t.Fatalf("lock keys must differ per workspace")
	}
}

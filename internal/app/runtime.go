package app

import (
	"os"
	"sync/atomic"
)

const testModeEnv = "SHOPDESK_TEST_MODE"

// 0 unread, 1 off, 2 on.
var testMode atomic.Int32

// InTestMode reports whether binaries should return before touching the
// network. Tests enable it by importing internal/testing/guard.
func InTestMode() bool {
	if testMode.Load() == 0 {
		RefreshTestMode()
	}
	return testMode.Load() == 2
}

// RefreshTestMode re-reads SHOPDESK_TEST_MODE.
func RefreshTestMode() {
	if os.Getenv(testModeEnv) == "1" {
		testMode.Store(2)
		return
	}
	testMode.Store(1)
}

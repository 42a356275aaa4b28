// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

// SetEnv sets key to value for the rest of the test. Tests that use it
// must not call t.Parallel, since the process environment is shared.
func SetEnv(t testing.TB, key, value string) {
	t.Helper()
	restoreEnvOnCleanup(t, key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("set env %s: %v", key, err)
	}
}

// UnsetEnv removes key for the rest of the test, so a NEXT_TO_FIREBASE_*
// variable of the developer's shell cannot leak into config tests.
func UnsetEnv(t testing.TB, key string) {
	t.Helper()
	restoreEnvOnCleanup(t, key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset env %s: %v", key, err)
	}
}

func restoreEnvOnCleanup(t testing.TB, key string) {
	original, had := os.LookupEnv(key)
	t.Cleanup(func() {
		var err error
		if had {
			err = os.Setenv(key, original)
		} else {
			err = os.Unsetenv(key)
		}
		if err != nil {
			t.Errorf("restore env %s: %v", key, err)
		}
	})
}

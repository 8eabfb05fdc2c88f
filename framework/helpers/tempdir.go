package helpers

import "os"

// WithTempDir creates a uniquely named directory in the system temporary
// area, calls action with its absolute path, and removes the directory and
// everything in it when action returns, or when it panics; the cleanup is
// deferred so the directory is never leaked. A removal failure is only
// reported when action itself succeeded.
func WithTempDir(action func(dir string) error) (err error) {
	dir, err := os.MkdirTemp("", "testkit-")
	if err != nil {
		return err
	}
	defer func() {
		removeErr := os.RemoveAll(dir)
		if err == nil {
			err = removeErr
		}
	}()
	return action(dir)
}

// TempDir creates a temporary directory and returns its path along with a
// cleanup function that removes it. Use this form when the directory must
// outlive a single function body, registering cleanup with the owning test
// scope (for example paramtest.(*T).Defer). A creation failure fails the test.
func TempDir(t TestContext) (string, func()) {
	dir, err := os.MkdirTemp("", "testkit-")
	if err != nil {
		t.Errorf("could not create temporary directory: %s", err)
		t.FailNow()
	}
	return dir, func() { _ = os.RemoveAll(dir) }
}

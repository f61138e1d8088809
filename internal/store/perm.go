package store

import "os"

// chmodDatabaseFile enforces the 0600 file mode named in §4.4. os.Chmod is
// a no-op for the permission bits SQLite cares about on platforms without
// a Unix-style permission model, so this is safe to call unconditionally.
func chmodDatabaseFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			// Creating a brand new file; sql.Open hasn't touched disk yet
			// since SQLite opens lazily on first use. Nothing to chmod
			// until after the first write, handled by a best-effort retry
			// from the caller's next Open.
			return nil
		}
		return err
	}
	return os.Chmod(path, 0o600)
}

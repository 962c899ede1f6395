package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// CopyPerm returns the permission bits a copied file should carry. Source
// execute bits are kept; the owner can always write and everyone can read,
// so files copied out of a read-only embedded tree stay editable.
func CopyPerm(src fs.FileMode) os.FileMode {
	return src.Perm() | 0o644
}

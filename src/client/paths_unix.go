//go:build !windows

package client

import "os"

// setDirPermissions restricts config directories to the owner
func setDirPermissions(dir string) error {
	return os.Chmod(dir, 0700)
}

// setFilePermissions restricts config files, which may hold an API key, to the owner
func setFilePermissions(path string) error {
	return os.Chmod(path, 0600)
}

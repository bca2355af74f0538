//go:build windows

package client

// setDirPermissions is a no-op: %APPDATA% already restricts access to the user
func setDirPermissions(dir string) error {
	return nil
}

// setFilePermissions is a no-op: files inherit ACLs from their directory
func setFilePermissions(path string) error {
	return nil
}

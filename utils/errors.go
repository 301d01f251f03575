package utils

import "fmt"

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return fmt.Errorf("list error: %w", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return fmt.Errorf("delete error: %w", err)
}

// WrapRenameError returns a wrapped rename error
func WrapRenameError(err error) error {
	return fmt.Errorf("rename error: %w", err)
}

// WrapMoveError returns a wrapped move error
func WrapMoveError(err error) error {
	return fmt.Errorf("move error: %w", err)
}

// WrapCopyError returns a wrapped copy error
func WrapCopyError(err error) error {
	return fmt.Errorf("copy error: %w", err)
}

// WrapUploadError returns a wrapped upload error
func WrapUploadError(err error) error {
	return fmt.Errorf("upload error: %w", err)
}

// WrapDownloadError returns a wrapped download error
func WrapDownloadError(err error) error {
	return fmt.Errorf("download error: %w", err)
}

// WrapLoginError returns a wrapped login error
func WrapLoginError(err error) error {
	return fmt.Errorf("login error: %w", err)
}

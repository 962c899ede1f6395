package platform

import (
	"fmt"
	"runtime"
)

// unsupported lists the GOOS values the scaffolder refuses to run on. The
// generated build scripts assume a POSIX shell.
var unsupported = map[string]string{
	"windows": "Windows",
}

// UnsupportedError is returned when the host operating system is rejected.
type UnsupportedError struct {
	GOOS string
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported yet", e.Name)
}

// CheckSupported returns an *UnsupportedError when the current operating
// system cannot host a generated project.
func CheckSupported() error {
	return checkSupported(runtime.GOOS)
}

func checkSupported(goos string) error {
	if name, ok := unsupported[goos]; ok {
		return &UnsupportedError{GOOS: goos, Name: name}
	}
	return nil
}

// EOL returns the platform line terminator appended to generated JSON files.
func EOL() string {
	return eol(runtime.GOOS)
}

func eol(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

package platform

import (
	"errors"
	"testing"
)

func TestCheckSupported(t *testing.T) {
	tests := []struct {
		goos    string
		wantErr bool
	}{
		{"linux", false},
		{"darwin", false},
		{"freebsd", false},
		{"windows", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			err := checkSupported(tt.goos)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkSupported(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ue *UnsupportedError
			if !errors.As(err, &ue) {
				t.Fatalf("error type = %T, want *UnsupportedError", err)
			}
			if ue.GOOS != tt.goos {
				t.Errorf("GOOS = %q, want %q", ue.GOOS, tt.goos)
			}
		})
	}
}

func TestEOL(t *testing.T) {
	if got := eol("linux"); got != "\n" {
		t.Errorf("eol(linux) = %q, want %q", got, "\n")
	}
	if got := eol("windows"); got != "\r\n" {
		t.Errorf("eol(windows) = %q, want %q", got, "\r\n")
	}
}

package jsonfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMarshal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("expects a unix newline")
	}

	got, err := Marshal(map[string]any{
		"browserslist": []string{">0.2%", "not dead"},
		"name":         "my-app",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{
  "browserslist": [
    ">0.2%",
    "not dead"
  ],
  "name": "my-app"
}
`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	if err := Write(path, map[string]any{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Errorf("written file should end with a newline, got %q", data)
	}
}

func TestWriteMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "package.json")
	if err := Write(path, map[string]any{}); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

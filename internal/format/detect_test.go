package format

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		magic []byte
		want  ContainerFormat
	}{
		{"yaz0", []byte("Yaz0\x00\x01\x02\x03"), FormatYaz0},
		{"yaz0 exact", []byte("Yaz0"), FormatYaz0},
		{"rarc", []byte("RARC\x00\x00"), FormatRARC},
		{"lowercase yaz0", []byte("yaz0"), FormatUnknown},
		{"yay0", []byte("Yay0"), FormatUnknown},
		{"short", []byte("Yaz"), FormatUnknown},
		{"empty", nil, FormatUnknown},
		{"zip", []byte("PK\x03\x04"), FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFormat(tc.magic); got != tc.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.magic, got, tc.want)
			}
			if got := IsYaz0(tc.magic); got != (tc.want == FormatYaz0) {
				t.Errorf("IsYaz0(%q) = %v", tc.magic, got)
			}
		})
	}
}

func TestIsCompressedContainer(t *testing.T) {
	dir := t.TempDir()

	files := map[string][]byte{
		"compressed.arc": append([]byte("Yaz0"), make([]byte, 60)...),
		"magic_only.arc": []byte("Yaz0"),
		"raw.arc":        append([]byte("RARC"), make([]byte, 60)...),
		"empty.arc":      {},
		"short.arc":      []byte("Ya"),
		"three.arc":      []byte("Yaz"),
		"late_magic.arc": []byte("\x00Yaz0"),
		"text.txt":       []byte("hello world"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "folder.arc"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"compressed.arc", true},
		{"magic_only.arc", true},
		{"raw.arc", false},
		{"empty.arc", false},
		{"short.arc", false},
		{"three.arc", false},
		{"late_magic.arc", false},
		{"text.txt", false},
		{"folder.arc", false},
		{"missing.arc", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := IsCompressedContainer(filepath.Join(dir, tc.path)); got != tc.want {
				t.Errorf("IsCompressedContainer(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestSniffUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	path := filepath.Join(t.TempDir(), "locked.arc")
	if err := os.WriteFile(path, []byte("Yaz0data"), 0000); err != nil {
		t.Fatal(err)
	}

	if got := Sniff(path); got != FormatUnknown {
		t.Errorf("Sniff on unreadable file = %v, want %v", got, FormatUnknown)
	}
	if IsCompressedContainer(path) {
		t.Error("unreadable file should not be classified as compressed")
	}
}

func TestContainerFormatString(t *testing.T) {
	if FormatYaz0.String() != "YAZ0" || FormatRARC.String() != "RARC" || FormatUnknown.String() != "UNKNOWN" {
		t.Errorf("unexpected names: %s %s %s", FormatYaz0, FormatRARC, FormatUnknown)
	}
	if !FormatYaz0.Compressed() || FormatRARC.Compressed() || FormatUnknown.Compressed() {
		t.Error("only YAZ0 should be compressed")
	}
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// unsetEnv clears key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestReadDefaults(t *testing.T) {
	for _, key := range []string{CodecVar, CodecArgsVar, ExtensionVar, TempDirVar, LogLevelVar} {
		unsetEnv(t, key)
	}

	e := Read()
	if e.Codec != DefaultCodec {
		t.Errorf("Codec = %q, want %q", e.Codec, DefaultCodec)
	}
	if e.CodecArgs != nil || e.Extension != "" || e.TempDir != "" {
		t.Errorf("unexpected values: %+v", e)
	}
	if e.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", e.LogLevel, DefaultLogLevel)
	}
}

func TestReadFromEnvironment(t *testing.T) {
	t.Setenv(CodecVar, "/opt/tools/arctool")
	t.Setenv(CodecArgsVar, "  --quiet   --no-color ")
	t.Setenv(ExtensionVar, ".szs")
	t.Setenv(TempDirVar, "/scratch")
	t.Setenv(LogLevelVar, "debug")

	e := Read()
	want := Env{
		Codec:     "/opt/tools/arctool",
		CodecArgs: []string{"--quiet", "--no-color"},
		Extension: ".szs",
		TempDir:   "/scratch",
		LogLevel:  "debug",
	}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("Read() = %+v, want %+v", e, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	unsetEnv(t, CodecVar)
	unsetEnv(t, ExtensionVar)
	t.Setenv(LogLevelVar, "ERROR")

	path := filepath.Join(t.TempDir(), ".env")
	content := "ARCBATCH_CODEC=wszst\nARCBATCH_EXTENSION=.szs\nARCBATCH_LOG_LEVEL=DEBUG\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	e := Read()
	if e.Codec != "wszst" || e.Extension != ".szs" {
		t.Errorf("values from .env not applied: %+v", e)
	}
	// Already-set variables are not overridden
	if e.LogLevel != "ERROR" {
		t.Errorf("LogLevel = %q, want ERROR", e.LogLevel)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"Warn", slog.LevelWarn, false},
		{"WARNING", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

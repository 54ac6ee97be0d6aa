package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckFFmpegReadsVersion(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffmpeg")
	script := []byte("#!/bin/sh\necho 'ffmpeg version 7.1 Copyright (c) 2000-2024'\necho 'built with gcc'\n")
	if err := os.WriteFile(stub, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	status := CheckFFmpeg(context.Background(), stub)
	if !status.Available {
		t.Fatalf("expected ffmpeg available, got detail %q", status.Detail)
	}
	if status.Detail != "ffmpeg version 7.1 Copyright (c) 2000-2024" {
		t.Fatalf("unexpected version detail %q", status.Detail)
	}
	if status.Command != stub {
		t.Fatalf("expected resolved command %q, got %q", stub, status.Command)
	}
}

func TestCheckFFmpegFailingBinary(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	status := CheckFFmpeg(context.Background(), stub)
	if status.Available {
		t.Fatal("expected failing binary to be unavailable")
	}
}

func TestCheckFFmpegPathLookup(t *testing.T) {
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "ffmpeg"), []byte("#!/bin/sh\necho 'ffmpeg version test'\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	status := CheckFFmpeg(context.Background(), "")
	if !status.Available {
		t.Fatalf("expected PATH lookup to succeed, got %q", status.Detail)
	}
	if status.Command != filepath.Join(binDir, "ffmpeg") {
		t.Fatalf("unexpected command %q", status.Command)
	}
}

func TestCheckFFmpegMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	status := CheckFFmpeg(context.Background(), "")
	if status.Available || status.Detail == "" {
		t.Fatalf("expected missing ffmpeg, got %#v", status)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"modemctl", "--log-level", "error"}, args...))
	return stdout.String(), err
}

func TestEncodeDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.wav")

	if _, err := run(t, "encode", "--message", "hello", "--out", path); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	got, err := run(t, "decode", "--in", path)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got != "hello\n" {
		t.Fatalf("decode output = %q, want %q", got, "hello\n")
	}

	got, err = run(t, "decode", "--in", path, "--method", "goertzel", "--hex")
	if err != nil {
		t.Fatalf("decode --hex error = %v", err)
	}
	if got != "68656c6c6f\n" {
		t.Fatalf("decode --hex output = %q", got)
	}
}

func TestEncodeHexWithProfileFile(t *testing.T) {
	dir := t.TempDir()
	prof := filepath.Join(dir, "lab.yaml")
	if err := os.WriteFile(prof, []byte("name: lab\npayload_frame_size: 2\nrepeat: 2\nbit_depth: 24\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	wav := filepath.Join(dir, "bytes.wav")

	if _, err := run(t, "--profile", prof, "encode", "--hex", "00ff10", "--out", wav); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	got, err := run(t, "--profile", prof, "decode", "--in", wav, "--hex")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got != "00ff10\n" {
		t.Fatalf("decode output = %q, want %q", got, "00ff10\n")
	}
}

func TestRoundtrip(t *testing.T) {
	got, err := run(t, "--profile", "robust", "roundtrip", "--message", "hello", "--noise", "0.2")
	if err != nil {
		t.Fatalf("roundtrip error = %v", err)
	}
	if !strings.HasPrefix(got, "ok bytes=5 ") {
		t.Fatalf("roundtrip output = %q", got)
	}

	got, err = run(t, "roundtrip", "--message", "quiet", "--gain-db", "-30", "--noise", "0.001", "--normalize", "-1")
	if err != nil {
		t.Fatalf("roundtrip --normalize error = %v", err)
	}
	if !strings.HasPrefix(got, "ok bytes=5 ") {
		t.Fatalf("roundtrip --normalize output = %q", got)
	}
}

func TestInfo(t *testing.T) {
	got, err := run(t, "info")
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	for _, want := range []string{"Profile", "default", "Max payload", "84 bytes", "Slot", "1875.0"} {
		if !strings.Contains(got, want) {
			t.Fatalf("info output missing %q:\n%s", want, got)
		}
	}
}

func TestBeaconTrack(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.wav")
	if _, err := run(t, "beacon", "--id", "42", "--ts", "10", "--out", single); err != nil {
		t.Fatalf("beacon error = %v", err)
	}
	got, err := run(t, "decode", "--in", single, "--beacon")
	if err != nil {
		t.Fatalf("decode --beacon error = %v", err)
	}
	if got != "id=42 ts=10\n" {
		t.Fatalf("decode --beacon output = %q", got)
	}

	// One continuous capture: silence before each of three beacons.
	capture := filepath.Join(dir, "capture.wav")
	if _, err := run(t, "beacon", "--id", "42", "--ts", "10", "--count", "3", "--gap", "1024", "--out", capture); err != nil {
		t.Fatalf("beacon --count error = %v", err)
	}
	got, err = run(t, "track", capture)
	if err != nil {
		t.Fatalf("track error = %v", err)
	}
	want := "potential\tid=42 ts=10\nsync\tid=42 ts=11\nsync\tid=42 ts=12\n"
	if got != want {
		t.Fatalf("track output = %q, want %q", got, want)
	}

	// Half-frame gaps need a finer analysis hop.
	unaligned := filepath.Join(dir, "unaligned.wav")
	if _, err := run(t, "beacon", "--id", "7", "--ts", "1", "--count", "2", "--gap", "512", "--out", unaligned); err != nil {
		t.Fatalf("beacon --gap error = %v", err)
	}
	got, err = run(t, "track", "--hop", "256", unaligned)
	if err != nil {
		t.Fatalf("track --hop error = %v", err)
	}
	want = "potential\tid=7 ts=1\nsync\tid=7 ts=2\n"
	if got != want {
		t.Fatalf("track --hop output = %q, want %q", got, want)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown profile", args: []string{"--profile", "nope.yaml", "info"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "info"}},
		{name: "message and hex", args: []string{"encode", "--message", "a", "--hex", "61", "--out", "x.wav"}},
		{name: "bad method", args: []string{"roundtrip", "--message", "a", "--method", "dft"}},
		{name: "missing file", args: []string{"decode", "--in", "does-not-exist.wav"}},
		{name: "beacon overflow", args: []string{"beacon", "--id", "70000", "--ts", "1", "--out", "x.wav"}},
		{name: "track without files", args: []string{"track"}},
		{name: "track bad hop", args: []string{"track", "--hop", "300", "x.wav"}},
		{name: "beacon zero count", args: []string{"beacon", "--id", "1", "--ts", "1", "--count", "0", "--out", "x.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			app := newApp(&stdout, &stderr)
			app.ExitErrHandler = func(*cli.Context, error) {}
			if err := app.Run(append([]string{"modemctl"}, tt.args...)); err == nil {
				t.Fatal("Run() error = nil")
			}
		})
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chip8asm/pkg/config"
)

const demoProgram = `; clear and spin
%define COUNT V1
start:
    CLS
    LD COUNT, 3
loop:
    ADD COUNT, 0xFF
    SE COUNT, 0
    JP loop
    JP start
`

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd, err := newRootCmd(&stdout, &stderr)
	if err != nil {
		t.Fatalf("newRootCmd: %v", err)
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunWritesImage(t *testing.T) {
	in := writeSource(t, "demo.asm", demoProgram)
	out := filepath.Join(filepath.Dir(in), "demo.ch8")

	var stdout, stderr bytes.Buffer
	err := run(config.Options{InputPath: in, OutputPath: out}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0xE0, 0x61, 0x03, 0x71, 0xFF, 0x31, 0x00, 0x12, 0x04, 0x12, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("image = % X, want % X", got, want)
	}
	if !strings.Contains(stdout.String(), "assembled 12 bytes") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run logged: %s", stderr.String())
	}
}

func TestCLIHexToStdout(t *testing.T) {
	in := writeSource(t, "cls.asm", "CLS\nRET\n")

	for _, args := range [][]string{{in, "-"}, {"--hex", in}, {"-", in}} {
		stdout, _, err := execute(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if stdout != "00 e0 00 ee\n" {
			t.Errorf("%v: stdout = %q", args, stdout)
		}
	}
}

func TestCLIOutputFlag(t *testing.T) {
	in := writeSource(t, "cls.asm", "CLS\n")
	out := filepath.Join(filepath.Dir(in), "custom.bin")

	if _, _, err := execute(t, "-o", out, in); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil || !bytes.Equal(got, []byte{0x00, 0xE0}) {
		t.Errorf("output = % X, %v", got, err)
	}
}

func TestCLIListingAndSymbols(t *testing.T) {
	in := writeSource(t, "demo.asm", demoProgram)
	dir := filepath.Dir(in)
	symFile := filepath.Join(dir, "demo.yaml")

	stdout, _, err := execute(t, "-o", filepath.Join(dir, "demo.ch8"), "--listing", "--symbols", "--symbols-file", symFile, in)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ADD V1, 0xFF", "JP 0x204", "loop", "start", "0x0204"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout is missing %q:\n%s", want, stdout)
		}
	}

	yml, err := os.ReadFile(symFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(yml), "name: loop") || !strings.Contains(string(yml), "0x0204") {
		t.Errorf("symbols file:\n%s", yml)
	}
}

func TestCLIDumpAndDebug(t *testing.T) {
	in := writeSource(t, "cls.asm", "CLS\n")
	_, stderr, err := execute(t, "-d", "--dump", in, "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "asm.Instruction") {
		t.Errorf("dump missing from stderr:\n%s", stderr)
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("debug logging missing from stderr:\n%s", stderr)
	}
}

func TestCLIWarningsInQuietMode(t *testing.T) {
	in := writeSource(t, "data.asm", "db 1\nCLS\n")
	_, stderr, err := execute(t, "-q", in, "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "unaligned data") {
		t.Errorf("warning missing from stderr:\n%s", stderr)
	}
}

func TestCLIErrors(t *testing.T) {
	bad := writeSource(t, "bad.asm", "CLS\nJP nowhere\n")
	good := writeSource(t, "good.asm", "CLS\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"assembly fault", []string{bad, "-"}, "bad.asm:2: reference to undefined label: nowhere"},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.asm")}, "failed to read input file"},
		{"two inputs", []string{good, good}, "multiple input files"},
		{"no input", []string{"-"}, "no input file"},
		{"no args", nil, "no input file"},
		{"too many args", []string{good, "-", "-"}, "accepts at most 2 arg(s)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := execute(t, tc.args...)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want %q", err, tc.want)
			}
			if !strings.Contains(stderr, "Error:") {
				t.Errorf("error was not printed: %q", stderr)
			}
		})
	}
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "chip8asm version "+version+"\n") || !strings.Contains(stdout, "--license") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCLILicense(t *testing.T) {
	for _, flag := range []string{"--license", "-l"} {
		stdout, _, err := execute(t, flag)
		if err != nil {
			t.Fatalf("%s: %v", flag, err)
		}
		if stdout != licenseText {
			t.Errorf("%s printed %q", flag, stdout)
		}
		if !strings.HasPrefix(stdout, "BSD 2-Clause License\n") {
			t.Errorf("%s: unexpected license header %q", flag, strings.SplitN(stdout, "\n", 2)[0])
		}
	}
}

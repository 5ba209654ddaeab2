package editor

import (
	"os"
	"strings"
	"testing"
)

func TestCmd_UsesEditorAndWritesTemplate(t *testing.T) {
	t.Setenv("EDITOR", "cat -n")
	e := NewEnvEditor()

	cmd, path, err := e.Cmd("hello", "Replying to comment 12")
	if err != nil {
		t.Fatalf("cmd failed: %v", err)
	}
	defer os.Remove(path)
	if len(cmd.Args) != 3 || cmd.Args[1] != "-n" || cmd.Args[2] != path {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Replying to comment 12") || !strings.HasSuffix(text, "hello") {
		t.Fatalf("unexpected template content: %q", text)
	}
}

func TestReadContent_StripsInstructionAndDeletesFile(t *testing.T) {
	e := NewEnvEditor()
	f, err := os.CreateTemp("", "echoterm-test-*.md")
	if err != nil {
		t.Fatalf("create temp failed: %v", err)
	}
	path := f.Name()
	_, _ = f.WriteString(instructions("New post") + "\nline1\nline2\n")
	_ = f.Close()

	content, err := e.ReadContent(path)
	if err != nil {
		t.Fatalf("read content failed: %v", err)
	}
	if content != "line1\nline2" {
		t.Fatalf("unexpected content: %q", content)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be deleted")
	}
}

func TestReadContent_KeepsArrowsInBody(t *testing.T) {
	e := NewEnvEditor()
	f, _ := os.CreateTemp("", "echoterm-test-*.md")
	path := f.Name()
	_, _ = f.WriteString("a --> b")
	_ = f.Close()

	content, err := e.ReadContent(path)
	if err != nil || content != "a --> b" {
		t.Fatalf("body without header must be kept, got %q err=%v", content, err)
	}
}

package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does not run the editor itself. Callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionEnd = "-->"

func instructions(heading string) string {
	return `<!--
Echo: ` + heading + `

- SAVE and EXIT to send (e.g., :wq in vi).
- Leaving the text empty cancels.
` + instructionEnd + `

`
}

// Cmd writes content under an instruction header to a temp file and
// returns the editor command for it along with the file path.
func (e *EnvEditor) Cmd(content, heading string) (*exec.Cmd, string, error) {
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		fields = []string{"vi"}
	}

	tmpFile, err := os.CreateTemp("", "echoterm-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructions(heading) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(fields[1:], tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction header, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if strings.HasPrefix(strings.TrimSpace(content), "<!--") {
		if idx := strings.Index(content, instructionEnd); idx != -1 {
			content = content[idx+len(instructionEnd):]
		}
	}
	return strings.TrimSpace(content), nil
}

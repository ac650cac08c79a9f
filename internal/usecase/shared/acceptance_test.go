package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAcceptanceCommands_FencedBlock(t *testing.T) {
	prompt := `Implement the feature.

Acceptance:
` + "```" + `
go test ./...
echo ok
` + "```" + `

Notes:
whatever`

	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"go test ./...", "echo ok"}, got)
}

func TestExtractAcceptanceCommands_NoMarker(t *testing.T) {
	got := ExtractAcceptanceCommands("Do the thing.\n\ngo test ./...\n")
	assert.Empty(t, got)
}

func TestExtractAcceptanceCommands_RemainderOnMarkerLine(t *testing.T) {
	got := ExtractAcceptanceCommands("Acceptance: `make check`\n")
	assert.Equal(t, []string{"make check"}, got)
}

func TestExtractAcceptanceCommands_MarkerCaseInsensitive(t *testing.T) {
	got := ExtractAcceptanceCommands("ACCEPTANCE:\n- go vet ./...\n")
	assert.Equal(t, []string{"go vet ./..."}, got)
}

func TestExtractAcceptanceCommands_BlankLineEndsUnfenced(t *testing.T) {
	prompt := `Acceptance:
- go build ./...
- go test ./...

echo never-collected`

	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"go build ./...", "go test ./..."}, got)
}

func TestExtractAcceptanceCommands_NewSectionEndsCollection(t *testing.T) {
	prompt := `Acceptance:
- make build
Notes:
- not a command`

	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"make build"}, got)
}

func TestExtractAcceptanceCommands_IndentedColonLineIsCollected(t *testing.T) {
	// An indented line ending in ":" is not a section header.
	prompt := "Acceptance:\n  echo done:\n"
	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"echo done:"}, got)
}

func TestExtractAcceptanceCommands_BlankLinesInsideFenceKept(t *testing.T) {
	prompt := "Acceptance:\n```sh\nmake lint\n\nmake test\n```\n"
	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"make lint", "make test"}, got)
}

func TestExtractAcceptanceCommands_DuplicatesKept(t *testing.T) {
	prompt := "Acceptance:\n- go test ./...\n- go test ./...\n"
	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"go test ./...", "go test ./..."}, got)
}

func TestExtractAcceptanceCommands_EverythingBeforeMarkerIgnored(t *testing.T) {
	prompt := "- rm -rf /\n```\nnot collected\n```\nAcceptance:\n- true\n"
	got := ExtractAcceptanceCommands(prompt)
	assert.Equal(t, []string{"true"}, got)
}

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "make build", want: "make build"},
		{name: "dash bullet", in: "- make build", want: "make build"},
		{name: "star bullet", in: "* make build", want: "make build"},
		{name: "numeric prefix", in: "1. make build", want: "make build"},
		{name: "two digit prefix", in: "12. make build", want: "make build"},
		{name: "three digit prefix", in: "123. make build", want: "make build"},
		{name: "dot too late", in: "1234. make build", want: "1234. make build"},
		{name: "not all digits", in: "1a. make build", want: "1a. make build"},
		{name: "backticks", in: "`ls -la`", want: "ls -la"},
		{name: "bullet then backticks", in: "- `ls -la`", want: "ls -la"},
		{name: "lone backtick pair", in: "``", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "version-like command survives", in: "go1.22 test", want: "go1.22 test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeCommand(tt.in))
		})
	}
}

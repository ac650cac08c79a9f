// Package shared provides logic reused across use cases.
package shared

import (
	"strings"
	"unicode"
)

// acceptanceMarker introduces the acceptance-check section of a prompt.
// Matching is case-insensitive on the trimmed line.
const acceptanceMarker = "acceptance:"

// extractState is the scanner state for acceptance-command extraction.
type extractState int

const (
	stateSeeking    extractState = iota // before the marker line
	stateCollecting                     // inside the acceptance section
)

// ExtractAcceptanceCommands recovers the ordered list of literal shell
// commands from free-form instructional text. The text is not guaranteed to
// be well-formed markdown, so the grammar is deliberately tolerant:
//
//   - nothing before a line starting with "acceptance:" is collected;
//     text after the colon on that line is itself a candidate
//   - a line starting with ``` toggles fenced mode without being collected
//   - while fenced, every non-blank line is collected
//   - while unfenced, a blank line ends collection, as does an unindented
//     line ending in ":" (the start of a new section)
//
// Duplicates are kept. The result is empty if no marker is found.
func ExtractAcceptanceCommands(promptText string) []string {
	commands := []string{}
	state := stateSeeking
	fenced := false

	for _, raw := range strings.Split(promptText, "\n") {
		stripped := strings.TrimSpace(raw)

		if state == stateSeeking {
			if strings.HasPrefix(strings.ToLower(stripped), acceptanceMarker) {
				state = stateCollecting
				remainder := strings.TrimSpace(stripped[len(acceptanceMarker):])
				if remainder != "" {
					if cmd := sanitizeCommand(remainder); cmd != "" {
						commands = append(commands, cmd)
					}
				}
			}
			continue
		}

		if strings.HasPrefix(stripped, "```") {
			fenced = !fenced
			continue
		}

		if fenced {
			if stripped != "" {
				if cmd := sanitizeCommand(stripped); cmd != "" {
					commands = append(commands, cmd)
				}
			}
			continue
		}

		if stripped == "" {
			break
		}

		// An unindented line ending in ":" starts a new section.
		if raw == strings.TrimLeftFunc(raw, unicode.IsSpace) && strings.HasSuffix(stripped, ":") {
			break
		}

		if cmd := sanitizeCommand(stripped); cmd != "" {
			commands = append(commands, cmd)
		}
	}

	return commands
}

// sanitizeCommand strips list decoration from a candidate command line:
// a leading "- " or "* " bullet, a numeric list prefix of 1-3 digits
// followed by a dot within the first 4 characters, and one pair of
// surrounding backticks. Returns "" if nothing remains.
func sanitizeCommand(line string) string {
	cmd := strings.TrimSpace(line)

	if strings.HasPrefix(cmd, "- ") || strings.HasPrefix(cmd, "* ") {
		cmd = strings.TrimSpace(cmd[2:])
	}

	if len(cmd) > 2 && isASCIIDigit(cmd[0]) {
		if dot := strings.IndexByte(cmd, '.'); dot > 0 && dot < 4 && allASCIIDigits(cmd[:dot]) {
			cmd = strings.TrimSpace(cmd[dot+1:])
		}
	}

	if len(cmd) >= 2 && strings.HasPrefix(cmd, "`") && strings.HasSuffix(cmd, "`") {
		cmd = strings.TrimSpace(cmd[1 : len(cmd)-1])
	}

	return cmd
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIIDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

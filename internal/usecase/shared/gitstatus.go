package shared

import "strings"

// ChangedPaths parses `git status --porcelain` output into the ordered list
// of changed paths. Each path is the substring after the fixed 3-character
// status-code prefix, or the whole trimmed line when shorter.
func ChangedPaths(statusOut string) []string {
	paths := []string{}
	for _, line := range strings.Split(statusOut, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) > 3 {
			paths = append(paths, strings.TrimSpace(line[3:]))
		} else {
			paths = append(paths, strings.TrimSpace(line))
		}
	}
	return paths
}

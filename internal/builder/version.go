package builder

import (
	"strconv"
	"strings"
)

// Version is a parsed game version such as "14.3.558.106".
type Version struct {
	Major int
	Minor int
	Patch int
	Build int
}

// ParseVersion reads up to four dotted components. Missing or non-numeric
// components are zero; anything past the fourth is ignored.
func ParseVersion(raw string) Version {
	var parts [4]int
	for i, part := range strings.SplitN(strings.TrimSpace(raw), ".", 5) {
		if i >= len(parts) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2], Build: parts[3]}
}

package input

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FileSpec represents a file with optional line range
type FileSpec struct {
	Path      string
	StartLine int  // 1-indexed, 0 means from beginning
	EndLine   int  // 1-indexed, 0 means to end
	HasRegion bool // true if a line range was specified
}

var fileSpecPattern = regexp.MustCompile(`^(.+?)(:(\d*)-(\d*))?$`)

// ParseFileSpec parses a file specification like "README.md:11-22"
// Supported formats:
//   - README.md       - Entire file (no region)
//   - README.md:11-22 - Lines 11-22
//   - README.md:11-   - Lines 11 to end of file
//   - README.md:-22   - Lines 1-22
func ParseFileSpec(spec string) (FileSpec, error) {
	matches := fileSpecPattern.FindStringSubmatch(spec)
	if matches == nil {
		return FileSpec{}, fmt.Errorf("invalid file spec: %s", spec)
	}

	fs := FileSpec{Path: matches[1]}

	if matches[2] != "" {
		fs.HasRegion = true
		if matches[3] != "" {
			start, err := strconv.Atoi(matches[3])
			if err != nil {
				return FileSpec{}, fmt.Errorf("invalid start line: %s", matches[3])
			}
			fs.StartLine = start
		}
		if matches[4] != "" {
			end, err := strconv.Atoi(matches[4])
			if err != nil {
				return FileSpec{}, fmt.Errorf("invalid end line: %s", matches[4])
			}
			fs.EndLine = end
		}
		if fs.EndLine > 0 && fs.StartLine > fs.EndLine {
			return FileSpec{}, fmt.Errorf("start line %d is after end line %d", fs.StartLine, fs.EndLine)
		}
	}

	return fs, nil
}

// ExtractLines extracts lines from content based on start and end line numbers.
// Line numbers are 1-indexed. 0 for start means from beginning, 0 for end means to end.
func ExtractLines(content string, startLine, endLine int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Convert to 0-indexed
	start := 0
	if startLine > 0 {
		start = startLine - 1
	}
	if start >= totalLines {
		return ""
	}

	end := totalLines
	if endLine > 0 && endLine < totalLines {
		end = endLine
	}

	if start >= end {
		return ""
	}

	return strings.Join(lines[start:end], "\n")
}

// FormatSpecPath returns a display path that includes the region if specified
func (fs FileSpec) FormatSpecPath() string {
	if !fs.HasRegion {
		return fs.Path
	}
	var start, end string
	if fs.StartLine > 0 {
		start = strconv.Itoa(fs.StartLine)
	}
	if fs.EndLine > 0 {
		end = strconv.Itoa(fs.EndLine)
	}
	return fmt.Sprintf("%s:%s-%s", fs.Path, start, end)
}

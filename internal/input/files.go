package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

// StdinPath is the display path used for content read from stdin.
const StdinPath = "-"

// FileContent represents markdown read from a file or stdin
type FileContent struct {
	Path    string // File path, with region if one was requested
	Content string
}

// ReadFiles reads content from the given paths
// Supported forms:
//   - "-": reads stdin
//   - Glob patterns, including "**" (e.g., "docs/**/*.md"): reads all matching files
//   - Regular paths: reads file content directly
//   - Line ranges (e.g., "README.md:10-40"): reads only specified lines
//
// A path that fails does not stop the others; all failures are returned
// together alongside whatever could be read.
func ReadFiles(paths []string) ([]FileContent, error) {
	var (
		result []FileContent
		errs   error
	)

	for _, path := range paths {
		if path == StdinPath {
			content, err := readAll(os.Stdin)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			result = append(result, FileContent{Path: StdinPath, Content: content})
			continue
		}

		files, err := readSpec(path)
		errs = multierr.Append(errs, err)
		result = append(result, files...)
	}

	return result, errs
}

func readSpec(path string) ([]FileContent, error) {
	// Parse file spec to extract line range if present
	spec, err := ParseFileSpec(path)
	if err != nil {
		return nil, fmt.Errorf("invalid file spec %q: %w", path, err)
	}

	// Expand ~ to home directory
	expandedPath := expandPath(spec.Path)

	var matches []string
	if containsGlobChars(spec.Path) {
		// Glob expansion applies to the path part only, not the line range
		matches, err = doublestar.FilepathGlob(expandedPath)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", spec.Path, err)
		}
		sort.Strings(matches)
	} else {
		matches = []string{expandedPath}
	}

	var (
		result []FileContent
		errs   error
	)
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to stat %q: %w", match, err))
			continue
		}
		// Skip directories
		if info.IsDir() {
			continue
		}

		content, err := os.ReadFile(match)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to read %q: %w", match, err))
			continue
		}

		contentStr := string(content)
		displayPath := match

		// Extract line range if specified
		if spec.HasRegion {
			contentStr = ExtractLines(contentStr, spec.StartLine, spec.EndLine)
			displayPath = FileSpec{Path: match, StartLine: spec.StartLine, EndLine: spec.EndLine, HasRegion: true}.FormatSpecPath()
		}

		result = append(result, FileContent{Path: displayPath, Content: contentStr})
	}
	return result, errs
}

// HasStdin returns true if stdin has data available (not a TTY)
func HasStdin() bool {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Check if stdin is a pipe or has data
	return (fi.Mode()&os.ModeCharDevice) == 0 || fi.Size() > 0
}

// ReadStdin reads all content from stdin
// Returns empty string if stdin is a TTY or has no data
func ReadStdin() (string, error) {
	if !HasStdin() {
		return "", nil
	}
	return readAll(os.Stdin)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// containsGlobChars returns true if the path contains glob metacharacters
func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

package codegen

import (
	"bytes"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// CodeFormatter normalizes generated source text before it is written out.
// Two implementations exist: one that shells out to the target language's
// formatting tools, and a built-in fallback used when those tools are not
// installed. The choice happens once, at startup.
type CodeFormatter interface {
	Format(source string) (string, error)
}

// NewCodeFormatter probes the PATH for the external formatters and returns
// the tool-backed formatter when both are available, otherwise the built-in
// normalizer.
func NewCodeFormatter() CodeFormatter {
	yapf, err := exec.LookPath("yapf")
	if err != nil {
		return normalizeFormatter{}
	}
	isort, err := exec.LookPath("isort")
	if err != nil {
		return normalizeFormatter{}
	}
	return &toolFormatter{yapf: yapf, isort: isort}
}

// toolFormatter pipes the source through isort then yapf, both reading stdin
// and writing stdout.
type toolFormatter struct {
	yapf  string
	isort string
}

func (f *toolFormatter) Format(source string) (string, error) {
	sorted, err := runFilter(f.isort, []string{"-"}, source)
	if err != nil {
		return "", fmt.Errorf("error running isort: %w", err)
	}
	formatted, err := runFilter(f.yapf, nil, sorted)
	if err != nil {
		return "", fmt.Errorf("error running yapf: %w", err)
	}
	return formatted, nil
}

func runFilter(binary string, args []string, input string) (string, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// normalizeFormatter is the dependency-free fallback. It normalizes line
// endings, trims trailing whitespace per line, sorts the leading import
// block, and guarantees exactly one trailing newline.
type normalizeFormatter struct{}

func (normalizeFormatter) Format(source string) (string, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	sortImportBlock(lines)

	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// sortImportBlock stable-sorts the contiguous run of import statements at the
// top of the file, skipping any leading comments or blank lines.
func sortImportBlock(lines []string) {
	start := 0
	for start < len(lines) {
		trimmed := strings.TrimSpace(lines[start])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			start++
			continue
		}
		break
	}

	end := start
	for end < len(lines) && isImportLine(lines[end]) {
		end++
	}
	if end-start > 1 {
		sort.SliceStable(lines[start:end], func(i, j int) bool {
			return importSortKey(lines[start+i]) < importSortKey(lines[start+j])
		})
	}
}

func isImportLine(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ")
}

// importSortKey orders plain module imports before from imports, matching
// the external tool's default profile closely enough for stable output.
func importSortKey(line string) string {
	if strings.HasPrefix(line, "import ") {
		return "0 " + line
	}
	return "1 " + line
}

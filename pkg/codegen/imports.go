package codegen

import (
	"sort"
	"strings"
)

// ImportSet accumulates the import lines required by a generated file and
// renders them deterministically: plain module imports first, then from
// imports, both sorted, with the imported names of each module sorted and
// deduplicated.
type ImportSet struct {
	modules map[string]struct{}
	froms   map[string]map[string]struct{}
}

func NewImportSet() *ImportSet {
	return &ImportSet{
		modules: make(map[string]struct{}),
		froms:   make(map[string]map[string]struct{}),
	}
}

// Add records one import. An empty name means "import module".
func (s *ImportSet) Add(from, name string) {
	if from == "" {
		return
	}
	if name == "" {
		s.modules[from] = struct{}{}
		return
	}
	names, ok := s.froms[from]
	if !ok {
		names = make(map[string]struct{})
		s.froms[from] = names
	}
	names[name] = struct{}{}
}

// AddAll records a batch of imports.
func (s *ImportSet) AddAll(imports []PyImport) {
	for _, imp := range imports {
		s.Add(imp.From, imp.Name)
	}
}

// Render emits the import block, one statement per line, ending with a
// newline when non-empty.
func (s *ImportSet) Render() string {
	var lines []string

	modules := make([]string, 0, len(s.modules))
	for m := range s.modules {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	for _, m := range modules {
		lines = append(lines, "import "+m)
	}

	froms := make([]string, 0, len(s.froms))
	for f := range s.froms {
		froms = append(froms, f)
	}
	sort.Strings(froms)
	for _, f := range froms {
		names := make([]string, 0, len(s.froms[f]))
		for n := range s.froms[f] {
			names = append(names, n)
		}
		sort.Strings(names)
		lines = append(lines, "from "+f+" import "+strings.Join(names, ", "))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

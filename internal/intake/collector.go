package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// Collector owns the set of selected resume files. Entries are unique by
// name and kept in arrival order. Rejected candidates are dropped silently;
// the per-step accounting is only logged.
type Collector struct {
	logger *zap.Logger
	items  []*ResumeFile
	seen   map[string]struct{}
}

func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Collector{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Add runs the candidates through the type and duplicate filters and appends
// the remainder, preserving arrival order. It returns the names that were
// actually added.
func (c *Collector) Add(candidates ...*ResumeFile) []string {
	steps := []Filter{
		NewTypeFilter(),
		NewDuplicateFilter(c.seen),
	}

	for _, step := range steps {
		next, info := step.Apply(candidates)
		if info.Dropped > 0 {
			c.logger.Debug("intake filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
		candidates = next
	}

	added := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		c.seen[candidate.Name] = struct{}{}
		c.items = append(c.items, candidate)
		added = append(added, candidate.Name)
	}

	return added
}

// AddPath stats the file at path and adds it to the collection. Unsupported
// and duplicate files are dropped silently, matching Add.
func (c *Collector) AddPath(path string) error {
	file, err := FromPath(path)
	if err != nil {
		return err
	}

	c.Add(file)
	return nil
}

// CollectDir adds every matching file from dir (non-recursive). Patterns are
// glob expressions matched against file names; an empty pattern list matches
// everything.
func (c *Collector) CollectDir(dir string, patterns []string) error {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("compiling intake pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading intake dir %q: %w", dir, err)
	}

	// ReadDir sorts by name already. Keep the order deterministic anyway.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !matchAny(globs, entry.Name()) {
			continue
		}

		if err := c.AddPath(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

func matchAny(globs []glob.Glob, name string) bool {
	if len(globs) == 0 {
		return true
	}

	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}

	return false
}

// Remove drops the entry with the given name. It is a no-op when absent and
// reports whether anything was removed.
func (c *Collector) Remove(name string) bool {
	for idx, item := range c.items {
		if item.Name == name {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			delete(c.seen, name)
			return true
		}
	}

	return false
}

// Files returns the collected resumes in arrival order.
func (c *Collector) Files() []*ResumeFile {
	return c.items
}

func (c *Collector) Len() int {
	return len(c.items)
}

func (c *Collector) Names() []string {
	names := make([]string, 0, len(c.items))
	for _, item := range c.items {
		names = append(names, item.Name)
	}

	return names
}

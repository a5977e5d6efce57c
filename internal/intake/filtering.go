package intake

// Filter represents a single filtering step applied to incoming resume files.
type Filter interface {
	Name() string
	Apply(candidates []*ResumeFile) ([]*ResumeFile, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type typeFilter struct{}

// NewTypeFilter creates a filter that drops files whose MIME type is not an
// accepted resume type.
func NewTypeFilter() Filter {
	return &typeFilter{}
}

func (f *typeFilter) Name() string { return "type" }

func (f *typeFilter) Apply(candidates []*ResumeFile) ([]*ResumeFile, Step) {
	initial := len(candidates)
	kept := make([]*ResumeFile, 0, initial)

	for _, candidate := range candidates {
		if _, ok := MIMETypeFor(candidate.Name); !ok {
			continue
		}
		kept = append(kept, candidate)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

type duplicateFilter struct {
	seen map[string]struct{}
}

// NewDuplicateFilter creates a filter that drops files whose name is already
// present in the provided set. The first arrival wins; names within a single
// batch are also deduplicated.
func NewDuplicateFilter(seen map[string]struct{}) Filter {
	return &duplicateFilter{seen: seen}
}

func (f *duplicateFilter) Name() string { return "duplicate" }

func (f *duplicateFilter) Apply(candidates []*ResumeFile) ([]*ResumeFile, Step) {
	initial := len(candidates)
	kept := make([]*ResumeFile, 0, initial)
	batch := make(map[string]struct{}, initial)

	for _, candidate := range candidates {
		if _, ok := f.seen[candidate.Name]; ok {
			continue
		}
		if _, ok := batch[candidate.Name]; ok {
			continue
		}
		batch[candidate.Name] = struct{}{}
		kept = append(kept, candidate)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

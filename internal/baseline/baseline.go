// Package baseline records accepted complexity scores so existing debt
// can be grandfathered while new regressions still get reported.
package baseline

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"ccs/internal/analyze"
)

// Entry is one accepted function score.
type Entry struct {
	File       string `toml:"file"`
	Function   string `toml:"function"`
	Complexity int    `toml:"complexity"`
}

// Baseline is the on-disk document.
type Baseline struct {
	GeneratedBy string  `toml:"generated_by,omitempty"`
	Entries     []Entry `toml:"entry,omitempty"`
}

// Load reads a baseline file. A missing file yields an empty baseline,
// not an error, so "no baseline yet" needs no special handling.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Baseline{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}

	var b Baseline
	if err := toml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	return &b, nil
}

// Save writes the baseline with entries in deterministic order.
func (b *Baseline) Save(path string) error {
	sort.SliceStable(b.Entries, func(i, j int) bool {
		if b.Entries[i].File != b.Entries[j].File {
			return b.Entries[i].File < b.Entries[j].File
		}
		return b.Entries[i].Function < b.Entries[j].Function
	})

	data, err := toml.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	return nil
}

// FromResults builds a baseline accepting every given result.
func FromResults(results []analyze.Result, generatedBy string) *Baseline {
	b := &Baseline{GeneratedBy: generatedBy}
	for _, res := range results {
		b.Entries = append(b.Entries, Entry{
			File:       res.FilePath,
			Function:   res.Function,
			Complexity: res.Complexity,
		})
	}
	return b
}

// Filter drops results already accepted at an equal or higher score.
// A function that grew past its baselined score is reported again.
func (b *Baseline) Filter(results []analyze.Result) []analyze.Result {
	if len(b.Entries) == 0 {
		return results
	}

	accepted := make(map[string]int, len(b.Entries))
	for _, entry := range b.Entries {
		key := entry.File + "\x00" + entry.Function
		if entry.Complexity > accepted[key] {
			accepted[key] = entry.Complexity
		}
	}

	kept := make([]analyze.Result, 0, len(results))
	for _, res := range results {
		if limit, ok := accepted[res.FilePath+"\x00"+res.Function]; ok && res.Complexity <= limit {
			continue
		}
		kept = append(kept, res)
	}
	return kept
}

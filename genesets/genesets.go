// SPDX-License-Identifier: MIT

package genesets

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrBadRecord indicates a malformed tab-delimited gene-set record.
	ErrBadRecord = errors.New("genesets: malformed record")

	// ErrDuplicateSet indicates two records carrying the same set name.
	ErrDuplicateSet = errors.New("genesets: duplicate set name")
)

// GeneSet is a named set of gene symbols. Genes is sorted ascending and
// free of duplicates, which lets overlap computations use linear
// sorted-merge scans.
type GeneSet struct {
	Name        string
	Description string
	Genes       []string
}

// NewGeneSet builds a GeneSet, deduplicating and sorting genes.
// Complexity: O(k log k).
func NewGeneSet(name, description string, genes []string) GeneSet {
	uniq := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		if g == "" {
			continue // empty trailing fields are common in hand-edited files
		}
		uniq[g] = struct{}{}
	}
	sorted := make([]string, 0, len(uniq))
	for g := range uniq {
		sorted = append(sorted, g)
	}
	sort.Strings(sorted)

	return GeneSet{Name: name, Description: description, Genes: sorted}
}

// Len returns the number of distinct genes in the set.
func (s GeneSet) Len() int { return len(s.Genes) }

// Contains reports membership via binary search.
// Complexity: O(log k).
func (s GeneSet) Contains(gene string) bool {
	i := sort.SearchStrings(s.Genes, gene)
	return i < len(s.Genes) && s.Genes[i] == gene
}

// IntersectCount returns |s ∩ t| by sorted-merge scan.
// Complexity: O(|s| + |t|).
func (s GeneSet) IntersectCount(t GeneSet) int {
	n, i, j := 0, 0, 0
	for i < len(s.Genes) && j < len(t.Genes) {
		switch {
		case s.Genes[i] == t.Genes[j]:
			n++
			i++
			j++
		case s.Genes[i] < t.Genes[j]:
			i++
		default:
			j++
		}
	}

	return n
}

// Intersect returns the sorted gene list of s ∩ t.
// Complexity: O(|s| + |t|).
func (s GeneSet) Intersect(t GeneSet) []string {
	out := make([]string, 0)
	i, j := 0, 0
	for i < len(s.Genes) && j < len(t.Genes) {
		switch {
		case s.Genes[i] == t.Genes[j]:
			out = append(out, s.Genes[i])
			i++
			j++
		case s.Genes[i] < t.Genes[j]:
			i++
		default:
			j++
		}
	}

	return out
}

// Library is an insertion-ordered collection of GeneSets.
type Library struct {
	sets  []GeneSet
	index map[string]int
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{index: make(map[string]int)}
}

// Add appends a set, rejecting duplicate names.
func (l *Library) Add(s GeneSet) error {
	if _, exists := l.index[s.Name]; exists {
		return fmt.Errorf("genesets: Add(%q): %w", s.Name, ErrDuplicateSet)
	}
	l.index[s.Name] = len(l.sets)
	l.sets = append(l.sets, s)

	return nil
}

// Len returns the number of sets.
func (l *Library) Len() int { return len(l.sets) }

// Sets returns the sets in insertion order. The slice is shared; callers
// must not mutate it.
func (l *Library) Sets() []GeneSet { return l.sets }

// Get returns the set with the given name.
func (l *Library) Get(name string) (GeneSet, bool) {
	i, ok := l.index[name]
	if !ok {
		return GeneSet{}, false
	}

	return l.sets[i], true
}

// Universe returns the sorted distinct union of genes across libraries —
// the background population n for overlap statistics.
// Complexity: O(total genes).
func Universe(libs ...*Library) []string {
	uniq := make(map[string]struct{})
	for _, l := range libs {
		if l == nil {
			continue
		}
		for _, s := range l.sets {
			for _, g := range s.Genes {
				uniq[g] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(uniq))
	for g := range uniq {
		out = append(out, g)
	}
	sort.Strings(out)

	return out
}

// Package parser turns free-form user input into normalized tag sets.
package parser

import (
	"sort"
	"strings"
)

// ParseTags splits a comma separated string into a normalized tag set:
// trimmed, lowercased, non-empty, deduplicated and sorted.
func ParseTags(input string) []string {
	return NormalizeTags(strings.Split(input, ","))
}

// NormalizeTags applies the ParseTags normalization to tags that are
// already split. The result is never nil.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// NormalizeTag trims and lowercases a single tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// FormatTags renders a tag set back into the editable input form.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// TagCounter tallies how many notes carry each tag.
type TagCounter struct {
	counts map[string]int
}

func NewTagCounter() *TagCounter {
	return &TagCounter{counts: make(map[string]int)}
}

// Add counts every tag of one note once.
func (tc *TagCounter) Add(tags []string) {
	for _, tag := range NormalizeTags(tags) {
		tc.counts[tag]++
	}
}

// Count returns the number of notes carrying tag.
func (tc *TagCounter) Count(tag string) int {
	return tc.counts[tag]
}

// Tags returns every counted tag in ascending order.
func (tc *TagCounter) Tags() []string {
	out := make([]string, 0, len(tc.counts))
	for tag := range tc.counts {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

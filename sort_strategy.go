package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy orders a deck of pages
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(pages []PageSource) []PageSource
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// NaturalSortStrategy orders numbers by value (page2 before page10)
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(pages []PageSource) []PageSource {
	result := slices.Clone(pages)
	slices.SortStableFunc(result, func(a, b PageSource) int {
		switch {
		case natural.Less(a.Path, b.Path):
			return -1
		case natural.Less(b.Path, a.Path):
			return 1
		}
		return 0
	})
	return nonNil(result)
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }

func (s *NaturalSortStrategy) ID() int { return SortNatural }

// SimpleSortStrategy orders pages lexicographically
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(pages []PageSource) []PageSource {
	result := slices.Clone(pages)
	slices.SortStableFunc(result, func(a, b PageSource) int {
		return strings.Compare(a.Path, b.Path)
	})
	return nonNil(result)
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }

func (s *SimpleSortStrategy) ID() int { return SortSimple }

// EntryOrderSortStrategy keeps the order pages were found in
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(pages []PageSource) []PageSource {
	return nonNil(slices.Clone(pages))
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }

func (s *EntryOrderSortStrategy) ID() int { return SortEntryOrder }

func nonNil(pages []PageSource) []PageSource {
	if pages == nil {
		return []PageSource{}
	}
	return pages
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}

// parseSortMethod resolves a strategy by name, case-insensitively
func parseSortMethod(name string) (int, error) {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	for _, s := range GetAllSortStrategies() {
		if strings.ReplaceAll(strings.ToLower(s.Name()), " ", "") == key {
			return s.ID(), nil
		}
	}
	switch key {
	case "entry":
		return SortEntryOrder, nil
	}
	return 0, fmt.Errorf("unknown sort method %q (want natural, simple or entry)", name)
}

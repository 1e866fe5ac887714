package ecodata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

// MatchMode selects how an item-type name is matched against the
// reference dataset. The reference endpoint matches anywhere in the
// name; the upload path requires the whole name to match. Both call
// sites keep their historical semantics.
type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchExact     MatchMode = "exact"
)

const (
	defaultCacheSize = 256
	maxSuggestions   = 5
)

// Service answers sustainability lookups. Results are cached in an LRU
// keyed by match mode and folded name; the dataset is read-only, so
// entries never need invalidation within a process lifetime.
type Service struct {
	source Source
	cache  *lru.Cache

	mu    sync.RWMutex
	names []string
}

func NewService(source Source) *Service {
	cache, _ := lru.New(defaultCacheSize)
	return &Service{
		source: source,
		cache:  cache,
	}
}

// LoadIndex snapshots the dataset's item names for fuzzy suggestions.
// A failure is not fatal; lookups work without suggestions.
func (s *Service) LoadIndex(ctx context.Context) error {
	names, err := s.source.ItemNames(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()

	slog.Info("Eco-data name index loaded",
		slog.String("type", "db"),
		slog.Int("names", len(names)))
	return nil
}

// Lookup finds the reference record for an item-type name. The query is
// always treated as a literal string: regex metacharacters in user input
// are escaped before the pattern reaches the datastore.
func (s *Service) Lookup(ctx context.Context, name string, mode MatchMode) (*Record, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNotFound
	}

	cacheKey := string(mode) + "|" + strings.ToLower(trimmed)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*Record), nil
	}

	pattern := regexp.QuoteMeta(trimmed)
	if mode == MatchExact {
		pattern = "^" + pattern + "$"
	}

	record, err := s.source.FindByPattern(ctx, pattern)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w for %q", ErrNotFound, trimmed)
		}
		return nil, err
	}

	s.cache.Add(cacheKey, record)
	return record, nil
}

// Suggest returns up to five item names fuzzily close to the query, for
// "did you mean" hints on a missed lookup.
func (s *Service) Suggest(name string) []string {
	s.mu.RLock()
	names := s.names
	s.mu.RUnlock()

	if len(names) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, names)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

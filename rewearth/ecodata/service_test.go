package ecodata

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records  []*Record
	patterns []string
	namesErr error
}

func (s *stubSource) FindByPattern(_ context.Context, pattern string) (*Record, error) {
	s.patterns = append(s.patterns, pattern)
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	for _, record := range s.records {
		if re.MatchString(record.ItemName) {
			out := *record
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubSource) ItemNames(_ context.Context) ([]string, error) {
	if s.namesErr != nil {
		return nil, s.namesErr
	}
	names := make([]string, 0, len(s.records))
	for _, r := range s.records {
		names = append(names, r.ItemName)
	}
	return names, nil
}

func testDataset() []*Record {
	return []*Record{
		{ItemName: "Jeans", WaterSavedLitres: 7000},
		{ItemName: "Denim Jacket", WaterSavedLitres: 8000},
		{ItemName: "Hoodie", WaterSavedLitres: 3000},
		{ItemName: "T-Shirt", WaterSavedLitres: 2500},
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("substring matches anywhere", func(t *testing.T) {
		svc := NewService(&stubSource{records: testDataset()})

		record, err := svc.Lookup(ctx, "jacket", MatchSubstring)
		require.NoError(t, err)
		assert.Equal(t, "Denim Jacket", record.ItemName)
	})

	t.Run("exact requires the whole name", func(t *testing.T) {
		src := &stubSource{records: testDataset()}
		svc := NewService(src)

		_, err := svc.Lookup(ctx, "jacket", MatchExact)
		assert.ErrorIs(t, err, ErrNotFound)
		require.Len(t, src.patterns, 1)
		assert.Equal(t, "^jacket$", src.patterns[0])

		record, err := svc.Lookup(ctx, "denim jacket", MatchExact)
		require.NoError(t, err)
		assert.Equal(t, "Denim Jacket", record.ItemName)
	})

	t.Run("metacharacters are escaped", func(t *testing.T) {
		src := &stubSource{records: []*Record{{ItemName: "Jeans"}}}
		svc := NewService(src)

		// ".*" must be a literal query, not match-everything.
		_, err := svc.Lookup(ctx, ".*", MatchSubstring)
		assert.ErrorIs(t, err, ErrNotFound)
		require.Len(t, src.patterns, 1)
		assert.Equal(t, regexp.QuoteMeta(".*"), src.patterns[0])
	})

	t.Run("hits are cached", func(t *testing.T) {
		src := &stubSource{records: testDataset()}
		svc := NewService(src)

		first, err := svc.Lookup(ctx, "Hoodie", MatchExact)
		require.NoError(t, err)
		second, err := svc.Lookup(ctx, "HOODIE", MatchExact)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, src.patterns, 1, "second lookup should come from cache")
	})

	t.Run("cache keys separate match modes", func(t *testing.T) {
		src := &stubSource{records: testDataset()}
		svc := NewService(src)

		_, err := svc.Lookup(ctx, "Jeans", MatchSubstring)
		require.NoError(t, err)
		_, err = svc.Lookup(ctx, "Jeans", MatchExact)
		require.NoError(t, err)

		assert.Len(t, src.patterns, 2)
	})

	t.Run("miss names the query", func(t *testing.T) {
		svc := NewService(&stubSource{records: testDataset()})

		_, err := svc.Lookup(ctx, "Ballgown", MatchSubstring)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), `"Ballgown"`)
	})

	t.Run("blank query", func(t *testing.T) {
		src := &stubSource{records: testDataset()}
		svc := NewService(src)

		_, err := svc.Lookup(ctx, "   ", MatchSubstring)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, src.patterns)
	})
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("close names surface", func(t *testing.T) {
		svc := NewService(&stubSource{records: testDataset()})
		require.NoError(t, svc.LoadIndex(ctx))

		suggestions := svc.Suggest("Jens")
		assert.Contains(t, suggestions, "Jeans")
		assert.LessOrEqual(t, len(suggestions), 5)
	})

	t.Run("no index means no suggestions", func(t *testing.T) {
		svc := NewService(&stubSource{records: testDataset()})

		assert.Nil(t, svc.Suggest("Jeans"))
	})

	t.Run("index load failure is reported", func(t *testing.T) {
		boom := errors.New("connection reset")
		svc := NewService(&stubSource{namesErr: boom})

		assert.ErrorIs(t, svc.LoadIndex(ctx), boom)
		assert.Nil(t, svc.Suggest("Jeans"))
	})
}

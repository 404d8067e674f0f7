package catalog

import (
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/backend/internal/errs"
	"github.com/eventhub/backend/internal/models"
)

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func intp(n int) *int { return &n }

func TestFilterTextAI(t *testing.T) {
	events := SeedEvents()
	require.Len(t, events, 6)

	got := Filter(events, Query{Text: "AI"})

	var want []string
	for _, e := range events {
		hay := strings.ToLower(e.Title + "\n" + e.Description + "\n" + e.Organizer)
		if strings.Contains(hay, "ai") {
			want = append(want, e.ID)
		}
	}
	assert.Equal(t, want, ids(got))
	assert.Contains(t, ids(got), "5", "AI & Machine Learning Conference")
	assert.NotContains(t, ids(got), "4", "Design Systems Workshop")
}

func TestFilterEmptyQueryReturnsCatalogInOrder(t *testing.T) {
	events := SeedEvents()
	got := Filter(events, Query{})
	assert.Equal(t, ids(events), ids(got))
}

func TestFilterTagsUseOr(t *testing.T) {
	got := Filter(SeedEvents(), Query{Tags: []string{"Research", "Design"}})
	assert.Equal(t, []string{"4", "5", "6"}, ids(got))

	got = Filter(SeedEvents(), Query{Tags: []string{"Nope"}})
	assert.Empty(t, got)
}

func TestFilterPriceInclusive(t *testing.T) {
	got := Filter(SeedEvents(), Query{MinPrice: 75, MaxPrice: intp(99)})
	assert.Equal(t, []string{"1", "2", "6"}, ids(got))
}

func TestFilterCombinesConditions(t *testing.T) {
	got := Filter(SeedEvents(), Query{Text: "summit", Tags: []string{"Research", "AI"}, MaxPrice: intp(100)})
	assert.Equal(t, []string{"1", "6"}, ids(got))
}

func TestFilterPriceRangeProperty(t *testing.T) {
	events := SeedEvents()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		lo := rng.Intn(200)
		hi := lo + rng.Intn(200-lo+1)
		for _, e := range Filter(events, Query{MinPrice: lo, MaxPrice: intp(hi)}) {
			assert.GreaterOrEqual(t, e.Price(), lo)
			assert.LessOrEqual(t, e.Price(), hi)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	events := SeedEvents()
	queries := []Query{
		{},
		{Text: "ai"},
		{Tags: []string{"Research"}},
		{MinPrice: 50, MaxPrice: intp(130), Sort: SortPriceDesc},
		{Text: "summit", Sort: SortTitle},
	}
	for _, q := range queries {
		once := Filter(events, q)
		twice := Filter(once, q)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestFilterDoesNotTouchInput(t *testing.T) {
	events := SeedEvents()
	before := ids(events)
	got := Filter(events, Query{Sort: SortPriceAsc})
	assert.Equal(t, before, ids(events))
	got[0].Title = "changed"
	assert.NotEqual(t, "changed", events[0].Title)
}

func TestFilterSort(t *testing.T) {
	events := SeedEvents()
	assert.Equal(t, []string{"4", "2", "6", "1", "3", "5"}, ids(Filter(events, Query{Sort: SortPriceAsc})))
	assert.Equal(t, []string{"5", "3", "1", "6", "2", "4"}, ids(Filter(events, Query{Sort: SortPriceDesc})))
	assert.Equal(t, []string{"5", "4", "2", "3", "6", "1"}, ids(Filter(events, Query{Sort: SortTitle})))
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(Filter(events, Query{Sort: SortDate})))
}

func TestTags(t *testing.T) {
	tags := Tags(SeedEvents())
	assert.Equal(t, []string{"Technology", "Innovation", "AI", "Web Development", "Marketing"}, tags[:5])
	seen := map[string]bool{}
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %s", tag)
		seen[tag] = true
	}
	assert.Len(t, tags, 22)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"q":         {" ai "},
		"tags":      {"AI,Research", "Research", "Design"},
		"min_price": {"10"},
		"max_price": {"150"},
		"sort":      {"price_asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, " ai ", q.Text)
	assert.Equal(t, []string{"AI", "Research", "Design"}, q.Tags)
	assert.Equal(t, 10, q.MinPrice)
	require.NotNil(t, q.MaxPrice)
	assert.Equal(t, 150, *q.MaxPrice)
	assert.Equal(t, SortPriceAsc, q.Sort)

	q, err = ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, q.MaxPrice)
}

func TestParseQueryKeepsSurroundingSpaces(t *testing.T) {
	q, err := ParseQuery(url.Values{"q": {" ai"}})
	require.NoError(t, err)

	e := models.Event{Title: "AI Summit", Description: "Two days of talks", Organizer: "Labs"}
	assert.False(t, q.Matches(e), "a leading space is part of the search term")
	e.Title = "Applied AI Summit"
	assert.True(t, q.Matches(e))
}

func TestParseQueryRejectsBadBounds(t *testing.T) {
	cases := []struct {
		values url.Values
		field  string
	}{
		{url.Values{"min_price": {"100"}, "max_price": {"50"}}, "min_price"},
		{url.Values{"min_price": {"-1"}}, "min_price"},
		{url.Values{"max_price": {"lots"}}, "max_price"},
		{url.Values{"sort": {"random"}}, "sort"},
	}
	for _, tc := range cases {
		_, err := ParseQuery(tc.values)
		ve, ok := errs.AsValidation(err)
		require.True(t, ok, tc.values.Encode())
		assert.NotEmpty(t, ve.Message(tc.field), tc.values.Encode())
	}
}

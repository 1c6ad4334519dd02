package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeJSON mirrors how the locator hands decoded files to extractors.
func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

// --- watch / search ---

func TestExtractWatch_StripsPrefixAndTrims(t *testing.T) {
	raw := decodeJSON(t, `[
		{"title": "Watched   Lofi Beats  ", "time": "2024-01-05T22:31:02.123Z"},
		{"title": "Watched Cats", "time": "2024-01-06T03:00:00+02:00"},
		{"title": "Visited YouTube Music"},
		{"header": "YouTube"}
	]`)

	records := ExtractWatch(raw)
	require.Len(t, records, 2)

	assert.Equal(t, Watch, records[0].Kind)
	assert.Equal(t, "Lofi Beats", records[0].Label)
	assert.Equal(t, time.Date(2024, 1, 5, 22, 31, 2, 123000000, time.UTC), records[0].Time)

	assert.Equal(t, "Cats", records[1].Label)
	assert.Equal(t, 1, records[1].Time.Hour(), "offset times are normalized to UTC")
	assert.Equal(t, time.UTC, records[1].Time.Location())
}

func TestExtractWatch_MalformedTimeStillCounted(t *testing.T) {
	raw := decodeJSON(t, `[
		{"title": "Watched A", "time": "2024-01-05T10:00:00Z"},
		{"title": "Watched B", "time": "not-a-date"},
		{"title": "Watched C", "time": "2024-01-05T11:00:00Z"},
		{"title": "Watched D"},
		{"title": "Watched E", "time": 12345},
		{"title": "Watched F", "time": {"bad": 1}},
		{"title": "Watched G", "time": ["x", "y"]},
		{"title": "Watched H", "time": true},
		{"title": "Watched I", "time": null}
	]`)

	records := ExtractWatch(raw)
	require.Len(t, records, 9)
	assert.True(t, records[0].HasTime())
	assert.False(t, records[1].HasTime())
	assert.Equal(t, "B", records[1].Label)
	for _, r := range records[3:] {
		assert.False(t, r.HasTime(), r.Label)
	}
	assert.Equal(t, "F", records[5].Label)
	assert.Equal(t, "G", records[6].Label)
}

func TestExtractSearch_MalformedTimeStillCounted(t *testing.T) {
	raw := decodeJSON(t, `[
		{"title": "Searched for go", "time": {"seconds": 1}},
		{"title": "Searched for rust", "time": [1, 2]},
		{"title": {"nested": true}, "time": "2024-01-05T10:00:00Z"}
	]`)

	records := ExtractSearch(raw)
	require.Len(t, records, 2)
	assert.Equal(t, "go", records[0].Label)
	assert.Equal(t, "rust", records[1].Label)
}

func TestExtractWatch_OnlyStripsLeadingPrefix(t *testing.T) {
	raw := decodeJSON(t, `[{"title": "Watched Watched Walter White"}]`)
	records := ExtractWatch(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "Watched Walter White", records[0].Label)
}

func TestExtractWatch_DropsEmptyLabelWithoutTime(t *testing.T) {
	raw := decodeJSON(t, `[
		{"title": "Watched "},
		{"title": "Watched  ", "time": "2024-03-01T04:00:00Z"}
	]`)
	records := ExtractWatch(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Label)
	assert.True(t, records[0].HasTime())
}

func TestExtractWatch_PrefixIsCaseSensitive(t *testing.T) {
	raw := decodeJSON(t, `[{"title": "watched lowercase"}, {"title": "Watched"}]`)
	assert.Empty(t, ExtractWatch(raw))
}

func TestExtractSearch(t *testing.T) {
	raw := decodeJSON(t, `[
		{"title": "Searched for how to boil an egg", "time": "2024-02-01T08:00:00Z"},
		{"title": "Watched something"},
		{"title": "Searched for  golang generics "}
	]`)

	records := ExtractSearch(raw)
	require.Len(t, records, 2)
	assert.Equal(t, Search, records[0].Kind)
	assert.Equal(t, "how to boil an egg", records[0].Label)
	assert.Equal(t, "golang generics", records[1].Label)
}

func TestExtractPrefixed_FailsSoft(t *testing.T) {
	cases := map[string]string{
		"object":       `{"title": "Watched A"}`,
		"string":       `"Watched A"`,
		"null":         `null`,
		"mixed items":  `[1, "two", null, [], {"title": {"nested": true}}]`,
		"empty array":  `[]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, ExtractWatch(decodeJSON(t, input)))
			assert.Empty(t, ExtractSearch(decodeJSON(t, input)))
		})
	}
}

// --- query ---

func TestExtractQuery(t *testing.T) {
	raw := decodeJSON(t, `{
		"event": [
			{"subEvent": [{"query": "weather"}, {"query": " news "}, {"other": 1}]},
			{"subEvent": [{"query": "weather"}]},
			{"noSubEvent": true},
			"garbage"
		]
	}`)

	records := ExtractQuery(raw)
	require.Len(t, records, 3)
	assert.Equal(t, "weather", records[0].Label)
	assert.Equal(t, "news", records[1].Label)
	assert.Equal(t, "weather", records[2].Label)
	for _, r := range records {
		assert.Equal(t, Query, r.Kind)
		assert.False(t, r.HasTime())
	}
}

func TestExtractQuery_MissingStructure(t *testing.T) {
	assert.Empty(t, ExtractQuery(decodeJSON(t, `{}`)))
	assert.Empty(t, ExtractQuery(decodeJSON(t, `{"events": []}`)))
	assert.Empty(t, ExtractQuery(decodeJSON(t, `[]`)))
	assert.Empty(t, ExtractQuery(nil))
}

// --- location ---

func TestExtractLocation_CountsEveryPing(t *testing.T) {
	raw := decodeJSON(t, `{
		"locations": [
			{"latitudeE7": 1, "timestampMs": "1704067200000"},
			{"timestamp": "2024-01-02T05:00:00.000Z"},
			{},
			"not an object"
		]
	}`)

	records := ExtractLocation(raw)
	require.Len(t, records, 4)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Time)
	assert.Equal(t, 5, records[1].Time.Hour())
	assert.False(t, records[2].HasTime())
	assert.False(t, records[3].HasTime())
	for _, r := range records {
		assert.Equal(t, Location, r.Kind)
		assert.Empty(t, r.Label)
	}
}

func TestExtractLocation_NumericTimestampMs(t *testing.T) {
	raw := decodeJSON(t, `{"locations": [{"timestampMs": 1704067200000}]}`)
	records := ExtractLocation(raw)
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Time)
}

func TestExtractLocation_MissingStructure(t *testing.T) {
	assert.Empty(t, ExtractLocation(decodeJSON(t, `{"timelineObjects": []}`)))
	assert.Empty(t, ExtractLocation(decodeJSON(t, `[1,2,3]`)))
}

func TestExtract_Dispatch(t *testing.T) {
	raw := decodeJSON(t, `[{"title": "Watched A"}, {"title": "Searched for B"}]`)
	assert.Len(t, Extract(Watch, raw), 1)
	assert.Len(t, Extract(Search, raw), 1)
	assert.Empty(t, Extract(Query, raw))
	assert.Empty(t, Extract(Category("bogus"), raw))
}

// --- timestamps ---

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 5, 22, 31, 2, 0, time.UTC)
	for _, s := range []string{
		"2024-01-05T22:31:02Z",
		"2024-01-05T22:31:02+00:00",
		"2024-01-05T17:31:02-05:00",
		"2024-01-05 22:31:02",
		"2024-01-05T22:31:02",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestParseDisplayTimestamp(t *testing.T) {
	got, ok := parseDisplayTimestamp("Jan 5, 2024, 10:31:02 PM EST")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 6, 3, 31, 2, 0, time.UTC), got)

	got, ok = parseDisplayTimestamp("5 Jan 2024, 22:31:02 CET")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 21, 31, 2, 0, time.UTC), got)

	_, ok = parseDisplayTimestamp("Some Channel Name")
	assert.False(t, ok)
}

// --- categories ---

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Watch ")
	require.NoError(t, err)
	assert.Equal(t, Watch, c)

	c, err = ParseCategory("google-search")
	require.NoError(t, err)
	assert.Equal(t, Query, c)

	_, err = ParseCategory("tiktok")
	assert.Error(t, err)
}

func TestParseCategories_CanonicalOrder(t *testing.T) {
	cats, err := ParseCategories([]string{"location", "watch", "watch"})
	require.NoError(t, err)
	assert.Equal(t, []Category{Watch, Location}, cats)
}

package activity

import (
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	watchPrefix  = "Watched "
	searchPrefix = "Searched for "
)

// historyEntry is one element of watch-history.json or search-history.json.
// Time stays untyped so a time of the wrong shape cannot drop the entry.
type historyEntry struct {
	Title string `json:"title"`
	Time  any    `json:"time"`
}

// MyActivity.json: {"event": [{"subEvent": [{"query": "..."}]}]}
type activityExport struct {
	Event []any `json:"event"`
}

type activityEvent struct {
	SubEvent []any `json:"subEvent"`
}

type activitySubEvent struct {
	Query *string `json:"query"`
}

// Location History.json: {"locations": [...]}
type locationExport struct {
	Locations []any `json:"locations"`
}

type locationPing struct {
	Timestamp   string `json:"timestamp"`
	TimestampMs string `json:"timestampMs"`
}

// Extract dispatches raw decoded JSON to the extractor for c.
func Extract(c Category, raw any) []Record {
	switch c {
	case Watch:
		return ExtractWatch(raw)
	case Search:
		return ExtractSearch(raw)
	case Query:
		return ExtractQuery(raw)
	case Location:
		return ExtractLocation(raw)
	default:
		return nil
	}
}

// ExtractWatch keeps entries whose title starts with "Watched ". An
// unparseable time leaves the record without a timestamp; it is still kept.
func ExtractWatch(raw any) []Record {
	return extractPrefixed(raw, Watch, watchPrefix)
}

// ExtractSearch keeps entries whose title starts with "Searched for ".
func ExtractSearch(raw any) []Record {
	return extractPrefixed(raw, Search, searchPrefix)
}

func extractPrefixed(raw any, kind Category, prefix string) []Record {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var e historyEntry
		if !decodeLoose(item, &e) || !strings.HasPrefix(e.Title, prefix) {
			continue
		}
		rec := Record{
			Kind:  kind,
			Label: strings.TrimSpace(strings.TrimPrefix(e.Title, prefix)),
		}
		if raw, ok := e.Time.(string); ok && raw != "" {
			if ts, err := ParseTimestamp(raw); err == nil {
				rec.Time = ts
			}
		}
		if rec.Label == "" && !rec.HasTime() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// ExtractQuery collects every subEvent query of a Google "My Activity"
// export. Query records carry no timestamp.
func ExtractQuery(raw any) []Record {
	var export activityExport
	if !decodeLoose(raw, &export) {
		return nil
	}

	var records []Record
	for _, item := range export.Event {
		var ev activityEvent
		if !decodeLoose(item, &ev) {
			continue
		}
		for _, sub := range ev.SubEvent {
			var se activitySubEvent
			if !decodeLoose(sub, &se) || se.Query == nil {
				continue
			}
			label := strings.TrimSpace(*se.Query)
			if label == "" {
				continue
			}
			records = append(records, Record{Kind: Query, Label: label})
		}
	}
	return records
}

// ExtractLocation yields one record per element of "locations", whatever
// its content. A ping timestamp is attached when one can be read.
func ExtractLocation(raw any) []Record {
	var export locationExport
	if !decodeLoose(raw, &export) {
		return nil
	}

	records := make([]Record, 0, len(export.Locations))
	for _, item := range export.Locations {
		rec := Record{Kind: Location}
		var ping locationPing
		if decodeLoose(item, &ping) {
			rec.Time = pingTime(ping)
		}
		records = append(records, rec)
	}
	return records
}

func pingTime(p locationPing) time.Time {
	if p.Timestamp != "" {
		if ts, err := ParseTimestamp(p.Timestamp); err == nil {
			return ts
		}
	}
	if p.TimestampMs != "" {
		if ms, err := strconv.ParseInt(p.TimestampMs, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}

// decodeLoose decodes one JSON object into out, converting scalar types
// where needed. Anything that is not an object is rejected.
func decodeLoose(input, out any) bool {
	if _, ok := input.(map[string]any); !ok {
		return false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return false
	}
	return dec.Decode(input) == nil
}

package classify

import "math"

// MoodTable returns the data mood decision list.
func MoodTable() Table {
	return Table{
		Rules: []Rule{
			{
				Name: "night-owl",
				Match: func(in Inputs) bool {
					return math.Round(in.Watch.NightRatio*100)/100 > 0.6
				},
				Result: Result{Label: "Night Owl"},
			},
			{
				Name: "doom-scroller",
				Match: func(in Inputs) bool {
					return in.Search.TotalCount > 200 && in.Watch.TotalCount < 20
				},
				Result: Result{Label: "Doom Scroller"},
			},
			{
				Name: "binger",
				Match: func(in Inputs) bool {
					return in.Watch.TotalCount > 1000
				},
				Result: Result{Label: "Binger"},
			},
			{
				Name: "curious",
				Match: func(in Inputs) bool {
					return in.Search.UniqueCount > 300
				},
				Result: Result{Label: "Curious Type"},
			},
			{
				Name: "overthinker",
				Match: func(in Inputs) bool {
					return in.Search.LongestTermWordCount > 10
				},
				Result: Result{Label: "Overthinker"},
			},
		},
		Default: Result{Label: "Default Human (You contain multitudes)"},
	}
}

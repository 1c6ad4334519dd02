package classify

var defaultHuman = Result{
	Label: "Default Human",
	Description: "You don't game the algorithm. You are the algorithm. " +
		"Predictable, pluggable, perfectly marketable.",
}

// LabelTable returns the data label decision list.
func LabelTable() Table {
	return Table{
		Rules: []Rule{
			{
				Name: "curator",
				Match: func(in Inputs) bool {
					return in.Watch.TotalCount > 500 && in.Search.TotalCount > 1000
				},
				Result: Result{
					Label: "Terminally Online Curator",
					Description: "You don't consume, you catalog. Your playlists have subtext. " +
						"The algorithm tries to catch up, but you're already onto the next niche.",
				},
			},
			{
				Name: "thought-spiral",
				Match: func(in Inputs) bool {
					return in.Search.UniqueCount > 300
				},
				Result: Result{
					Label: "Thought Spiral Enthusiast",
					Description: "Your late-night queries include 'how do I know if I'm real' and " +
						"'can I marry my best friend.' You don't search. You spiral with intention.",
				},
			},
			{
				Name: "panopticon",
				Match: func(in Inputs) bool {
					return in.Watch.ActiveHourKnown() && between(in.Watch.MostActiveHour, 3, 5)
				},
				Result: Result{
					Label: "Panopticon Peeper",
					Description: "You are the dream user. Consistent. Predictable. Always watching. " +
						"Even your boredom has a timestamp.",
				},
			},
			{
				Name: "algorithm-generated",
				Match: func(in Inputs) bool {
					return in.Watch.TotalCount > 1000 && in.Search.TotalCount < 50
				},
				Result: Result{
					Label: "Algorithm-Generated Human",
					Description: "You didn't find YouTube. It found you. " +
						"The only thing you searched for was 'lofi beats to dissociate to.'",
				},
			},
			{
				Name: "fringe",
				Match: func(in Inputs) bool {
					return in.Search.UniqueCount > 200 && in.Search.TotalCount > 500
				},
				Result: Result{
					Label: "Fringe Researcher",
					Description: "'Simulation theory' and 'hidden ancient tech' are normal to you. " +
						"Google doesn't judge. It just listens.",
				},
			},
			{
				Name: "lurker",
				Match: func(in Inputs) bool {
					return in.Watch.TotalCount < 50 && in.Search.TotalCount < 50
				},
				Result: Result{
					Label: "Low-Impact Lurker",
					Description: "You leave almost no trace. Maybe that's on purpose. " +
						"Or maybe you just... have a life?",
				},
			},
			{
				Name: "default-human",
				Match: func(in Inputs) bool {
					return between(in.Watch.TotalCount, 100, 200) && between(in.Search.TotalCount, 100, 200)
				},
				Result: defaultHuman,
			},
			{
				Name: "pipeline",
				Match: func(in Inputs) bool {
					return in.Watch.TotalCount > 500 && in.Search.UniqueCount < 20
				},
				Result: Result{
					Label: "Pipeline Candidate",
					Description: "Your recommendations got darker. Your searches got louder. " +
						"You might've started with debates, but now you're in the trenches of the algorithm's war games.",
				},
			},
		},
		Default: defaultHuman,
	}
}

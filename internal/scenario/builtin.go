package scenario

func init() {
	Register(Scenario{
		ID:          "hills",
		Name:        "Hills",
		Description: "Two small sand hills with some water",
		Fills: []Fill{
			{Material: "sand", Region: Ratio(0.25, 0.6, 0.25, 0.4), Density: 0.5},
			{Material: "sand", Region: Ratio(0.5, 0.4, 0.25, 0.2), Density: 0.5},
			{Material: "water", Region: Ratio(0.25, 0.4, 0.25, 0.2), Density: 0.5},
		},
	})

	Register(Scenario{
		ID:          "rain",
		Name:        "Rain",
		Description: "Water and sand sprinkled over a rock floor",
		Fills: []Fill{
			{Material: "rock", Region: Ratio(0, 0.95, 1, 0.05), Density: 1},
			{Material: "water", Region: Ratio(0, 0, 1, 0.33), Density: 0.15},
			{Material: "sand", Region: Ratio(0, 0, 1, 0.33), Density: 0.08},
		},
	})

	Register(Scenario{
		ID:          "hourglass",
		Name:        "Hourglass",
		Description: "Sand draining through a gap in a glass shelf",
		Fills: []Fill{
			{Material: "glass", Region: Ratio(0.15, 0.5, 0.33, 0.03), Density: 1},
			{Material: "glass", Region: Ratio(0.52, 0.5, 0.33, 0.03), Density: 1},
			{Material: "glass", Region: Ratio(0.15, 0.1, 0.02, 0.4), Density: 1},
			{Material: "glass", Region: Ratio(0.83, 0.1, 0.02, 0.4), Density: 1},
			{Material: "sand", Region: Ratio(0.2, 0.15, 0.6, 0.3), Density: 0.9},
		},
	})

	Register(Scenario{
		ID:          "pool",
		Name:        "Pool",
		Description: "A rock basin of water with a falling sand column",
		Fills: []Fill{
			{Material: "rock", Region: Ratio(0.1, 0.9, 0.8, 0.1), Density: 1},
			{Material: "rock", Region: Ratio(0.1, 0.5, 0.05, 0.4), Density: 1},
			{Material: "rock", Region: Ratio(0.85, 0.5, 0.05, 0.4), Density: 1},
			{Material: "water", Region: Ratio(0.15, 0.6, 0.7, 0.3), Density: 1},
			{Material: "sand", Region: Ratio(0.46, 0, 0.08, 0.3), Density: 1},
		},
	})

	Register(Scenario{
		ID:          "empty",
		Name:        "Empty",
		Description: "Nothing at all",
	})
}

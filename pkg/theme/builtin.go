package theme

func registerBuiltins() {
	for _, t := range []Theme{
		defaultTheme(),
		nordTheme(),
		gruvboxTheme(),
		highContrastTheme(),
	} {
		Register(t)
	}
}

// defaultTheme is dark with a purple focus ring.
func defaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		Border:    "#3e3e3e",
		Focus:     "#7C3AED",
		FocusText: "#ffffff",
		Disabled:  "#4a4a4a",

		OverlayBackground: "#000000",
		OverlayForeground: "#9a9a9a",
		Clock:             "#d4d4d4",

		HelpKey:  "#7C3AED",
		HelpDesc: "#6b6b6b",
		Playing:  "#4ec970",
	}
}

func nordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#eceff4",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:    "#3b4252",
		Focus:     "#88c0d0",
		FocusText: "#eceff4",
		Disabled:  "#434c5e",

		OverlayBackground: "#242933",
		OverlayForeground: "#81a1c1",
		Clock:             "#e5e9f0",

		HelpKey:  "#81a1c1",
		HelpDesc: "#4c566a",
		Playing:  "#a3be8c",
	}
}

func gruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		Border:    "#504945",
		Focus:     "#fe8019",
		FocusText: "#fbf1c7",
		Disabled:  "#665c54",

		OverlayBackground: "#1d2021",
		OverlayForeground: "#a89984",
		Clock:             "#fabd2f",

		HelpKey:  "#fe8019",
		HelpDesc: "#928374",
		Playing:  "#b8bb26",
	}
}

// highContrastTheme meets TV-distance legibility: white on black, yellow
// focus ring.
func highContrastTheme() Theme {
	return Theme{
		Name:       "high-contrast",
		Background: "#000000",
		Foreground: "#ffffff",
		Dim:        "#bfbfbf",
		Accent:     "#ffff00",

		Border:    "#808080",
		Focus:     "#ffff00",
		FocusText: "#ffff00",
		Disabled:  "#595959",

		OverlayBackground: "#000000",
		OverlayForeground: "#ffffff",
		Clock:             "#ffffff",

		HelpKey:  "#ffff00",
		HelpDesc: "#ffffff",
		Playing:  "#00ff00",
	}
}

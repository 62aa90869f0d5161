package services

const (
	ColourPrimary         = "#00dfb8"
	ColourSecondary       = "#00573B"
	ColourTertiary        = "#00C29D"
	ColourQuaternary      = "#007152"
	ColourQuinary         = "#00A783"
	ColourBackground      = "#ffffff"
	ColourCard            = "#fdfffe"
	ColourBorder          = "#e2e8f0"
	ColourForeground      = "#0f172a"
	ColourMuted           = "#f8fafc"
	ColourMutedForeground = "#64748b"
	ColourGrid            = "#f1f5f9"
)

func SeriesPalette() []string {
	return []string{ColourPrimary, ColourSecondary, ColourTertiary, ColourQuaternary, ColourQuinary}
}

func PiePalette() []string {
	return []string{
		ColourPrimary,
		ColourSecondary,
		ColourTertiary,
		ColourQuaternary,
		ColourQuinary,
		"#10d9c4",
		"#004d3d",
		"#00b894",
		"#006b5a",
		"#00f5d4",
		"#003d32",
		"#009688",
	}
}

func paletteColour(palette []string, index int) string {
	if len(palette) == 0 {
		return ColourPrimary
	}
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

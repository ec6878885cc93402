package domain

import "strings"

const (
	iconBaseURL = "https://oldschool.runescape.wiki/images/"
	seedSuffix  = "_seed"
	// seed images on the wiki are stored as the fifth growth variant
	seedVariant = "_5"
)

var iconEscaper = strings.NewReplacer(
	" ", "_",
	"'", "%27",
	"(", "%28",
	")", "%29",
)

// IconName converts a display name into a wiki image file name.
func IconName(name string) string {
	icon := iconEscaper.Replace(name)
	if strings.HasSuffix(icon, seedSuffix) {
		icon += seedVariant
	}
	return icon
}

// IconURL returns the wiki image URL of a display name.
func IconURL(name string) string {
	return iconBaseURL + IconName(name) + ".png"
}

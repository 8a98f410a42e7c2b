package viewmodel

// Condition derives a textual condition from the temperature alone; the
// backend does not report weather codes.
func Condition(celsius int) string {
	switch {
	case celsius >= 30:
		return "Clear"
	case celsius >= 20:
		return "Clear"
	case celsius >= 10:
		return "Partly Cloudy"
	case celsius >= 0:
		return "Cloudy"
	default:
		return "Snow"
	}
}

// Icons
const (
	IconSun       = "☀"
	IconMoon      = "☾"
	IconMoonStars = "☾✦"
	IconCloud     = "☁"
	IconCloudSnow = "🌨"
	IconSnowflake = "❄"
)

// Icon picks the glyph shown next to the current temperature
func Icon(celsius int, night bool) string {
	switch {
	case celsius >= 20:
		if night {
			return IconMoon
		}
		return IconSun
	case celsius >= 10:
		if night {
			return IconMoonStars
		}
		return IconCloud
	case celsius >= 0:
		if night {
			return IconMoonStars
		}
		return IconCloudSnow
	default:
		return IconSnowflake
	}
}

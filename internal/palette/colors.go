package palette

// Colors is the top/bottom pair of a vertical gradient.
type Colors struct {
	Top    RGB
	Bottom RGB
}

// Blend interpolates both ends of the pair toward to.
func (c Colors) Blend(to Colors, f float64) Colors {
	return Colors{
		Top:    Interpolate(c.Top, to.Top, f),
		Bottom: Interpolate(c.Bottom, to.Bottom, f),
	}
}

// At returns the color a fraction t of the way from Top to Bottom.
func (c Colors) At(t float64) RGB {
	return Interpolate(c.Top, c.Bottom, t)
}

var (
	Night = Colors{
		Top:    Parse("#0f0c29"), // deep violet
		Bottom: Parse("#302b63"), // violet
	}
	Sunrise = Colors{
		Top:    Parse("#FF512F"), // orange-red
		Bottom: Parse("#F09819"), // amber
	}
	Day = Colors{
		Top:    Parse("#56CCF2"), // light blue
		Bottom: Parse("#87CEEB"), // sky
	}
	Sunset = Colors{
		Top:    Parse("#FF512F"), // orange-red
		Bottom: Parse("#DD2476"), // pink-violet
	}
	Dusk = Colors{
		Top:    Parse("#2C3E50"), // slate
		Bottom: Parse("#4CA1AF"), // blue-grey
	}
)

// Placeholder is shown before the first gradient has been computed.
var Placeholder = Colors{
	Top:    RGB{R: 10, G: 10, B: 30},
	Bottom: RGB{R: 30, G: 30, B: 60},
}

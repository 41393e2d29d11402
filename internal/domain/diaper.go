package domain

type DiaperSize string

const (
	DiaperP       DiaperSize = "P"
	DiaperM       DiaperSize = "M"
	DiaperG       DiaperSize = "G"
	DiaperUnknown DiaperSize = "-"
)

// DiaperSizeFor returns the diaper size an in-kind payment for number n should bring.
func DiaperSizeFor(n int) DiaperSize {
	switch {
	case n >= 1 && n <= 30:
		return DiaperP
	case n >= 31 && n <= 70:
		return DiaperM
	case n >= 71 && n <= 100:
		return DiaperG
	default:
		return DiaperUnknown
	}
}

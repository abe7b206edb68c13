package utils

const (
	NODETOL = 1.e-12
	// SpeedOfLight in vacuum, m/s
	SpeedOfLight = 299792458.
)

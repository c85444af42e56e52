package convert

import "strings"

// Defaults substituted for empty optional fields in cleanup mode.
const (
	DefaultUnknown = "Unknown"
	DefaultMass    = "N/A"
)

// Fields are the optional columns subject to normalization.
type Fields struct {
	Recclass string
	Mass     string
	Fall     string
	Year     string
}

// normalizer fills or passes through optional fields. One is picked per run.
type normalizer func(Fields) Fields

func normalizerFor(cleanup bool) normalizer {
	if cleanup {
		return cleanupNormalizer
	}
	return rawNormalizer
}

// cleanupNormalizer trims every field and substitutes defaults for empties.
func cleanupNormalizer(f Fields) Fields {
	return Fields{
		Recclass: orDefault(f.Recclass, DefaultUnknown),
		Mass:     orDefault(f.Mass, DefaultMass),
		Fall:     orDefault(f.Fall, DefaultUnknown),
		Year:     orDefault(f.Year, DefaultUnknown),
	}
}

// rawNormalizer keeps values as read; only mass is trimmed.
func rawNormalizer(f Fields) Fields {
	f.Mass = strings.TrimSpace(f.Mass)
	return f
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

package internal

import (
	"strconv"
	"strings"
)

// ResolveTime parses a human time expression into absolute seconds given the
// total duration of the timeline.
//
// Recognized forms, checked in this order:
//
//	"end"      -> totalSeconds - 0.1 (leaves room for a final interpolation step)
//	".5"       -> fraction of the total duration
//	"1:30"     -> HH:MM
//	"1:30:45"  -> HH:MM:SS
//	"1h30m45s" -> composite hour form (also "1h30m", "4h20", plain "1h")
//	"5m"       -> minutes
//	"30s"      -> seconds
//	"30"       -> bare number, seconds
//
// ResolveTime is deterministic and has no side effects.
func ResolveTime(token string, totalSeconds float64) (float64, error) {
	switch {
	case token == "end":
		return totalSeconds - 0.1, nil

	case strings.HasPrefix(token, "."):
		fraction, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, newParseError(token, "invalid fraction time format")
		}
		return totalSeconds * fraction, nil

	case strings.Contains(token, ":"):
		return resolveColonTime(token)

	case strings.Contains(token, "h"):
		return resolveCompositeTime(token)

	case strings.HasSuffix(token, "m"):
		minutes, err := strconv.ParseFloat(strings.TrimSuffix(token, "m"), 64)
		if err != nil {
			return 0, newParseError(token, "invalid minute time format")
		}
		return minutes * 60, nil

	case strings.HasSuffix(token, "s"):
		seconds, err := strconv.ParseFloat(strings.TrimSuffix(token, "s"), 64)
		if err != nil {
			return 0, newParseError(token, "invalid second time format")
		}
		return seconds, nil

	default:
		seconds, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, newParseError(token, "invalid time format")
		}
		return seconds, nil
	}
}

// resolveColonTime handles HH:MM and HH:MM:SS, each component a float.
func resolveColonTime(token string) (float64, error) {
	parts := strings.Split(token, ":")
	components := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, newParseError(token, "invalid time format with colons")
		}
		components[i] = v
	}
	switch len(components) {
	case 2:
		return (components[0]*60 + components[1]) * 60, nil
	case 3:
		return components[0]*3600 + components[1]*60 + components[2], nil
	default:
		return 0, newParseError(token, "invalid time format with colons")
	}
}

// resolveCompositeTime handles combined forms like "1h30m", "1h30m45s",
// "1h45s" and "4h20" (a bare trailer after the hours is minutes).
func resolveCompositeTime(token string) (float64, error) {
	hParts := strings.SplitN(token, "h", 2)
	hours, err := strconv.ParseFloat(hParts[0], 64)
	if err != nil {
		return 0, newParseError(token, "invalid combined time format")
	}

	var minutes, seconds float64
	rest := hParts[1]
	switch {
	case strings.Contains(rest, "m"):
		mParts := strings.SplitN(rest, "m", 2)
		if mParts[0] != "" {
			minutes, err = strconv.ParseFloat(mParts[0], 64)
			if err != nil {
				return 0, newParseError(token, "invalid combined time format")
			}
		}
		if strings.Contains(mParts[1], "s") {
			sParts := strings.SplitN(mParts[1], "s", 2)
			if sParts[0] != "" {
				seconds, err = strconv.ParseFloat(sParts[0], 64)
				if err != nil {
					return 0, newParseError(token, "invalid combined time format")
				}
			}
		}
	case strings.Contains(rest, "s"):
		sParts := strings.SplitN(rest, "s", 2)
		if sParts[0] != "" {
			seconds, err = strconv.ParseFloat(sParts[0], 64)
			if err != nil {
				return 0, newParseError(token, "invalid combined time format")
			}
		}
	case rest != "":
		minutes, err = strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0, newParseError(token, "invalid combined time format")
		}
	}

	return hours*3600 + minutes*60 + seconds, nil
}

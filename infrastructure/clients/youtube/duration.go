package youtube

import "regexp"

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration decodes the platform's compact ISO-8601 duration notation
// (e.g. "PT4M13S" = 4 minutes 13 seconds) into total seconds. Missing
// components default to 0; a zero duration means live or unknown.
func ParseISODuration(duration string) int64 {
	matches := durationPattern.FindStringSubmatch(duration)
	if matches == nil {
		return 0
	}
	return digits(matches[1])*3600 + digits(matches[2])*60 + digits(matches[3])
}

func digits(s string) int64 {
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	return n
}

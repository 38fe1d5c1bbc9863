package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// maxComponent keeps hours*60 + minutes well inside int range
const maxComponent = math.MaxInt32 / 60

// DurationToMinutes converts an ISO-8601 style duration of the form PT#H#M to
// minutes. Missing or out of range components count as zero and a
// non-matching string yields 0.
func DurationToMinutes(s string) int {
	m := isoDurationRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	return durationComponent(m[1])*60 + durationComponent(m[2])
}

func durationComponent(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n > maxComponent {
		return 0
	}
	return n
}

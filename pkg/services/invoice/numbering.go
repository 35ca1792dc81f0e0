package invoice

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

var placeholderRun = regexp.MustCompile(`X+`)

// NumberFor derives the invoice or matter number for one run of a batch.
// Single runs emit the base verbatim. In batches the first run of X
// characters is replaced with random digits; bases without a placeholder
// get a 1-based -NNN suffix instead.
func NumberFor(base string, index, total int, rnd *rand.Rand) string {
	if total <= 1 {
		return base
	}
	if loc := placeholderRun.FindStringIndex(base); loc != nil {
		digits := make([]byte, loc[1]-loc[0])
		for i := range digits {
			digits[i] = byte('0' + rnd.IntN(10))
		}
		return base[:loc[0]] + string(digits) + base[loc[1]:]
	}
	return fmt.Sprintf("%s-%03d", base, index+1)
}

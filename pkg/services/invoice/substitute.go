package invoice

import (
	"regexp"
	"strings"
	"time"
)

const namePlaceholder = "{NAME_PLACEHOLDER}"

var embeddedDate = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

// substitute rewrites template tokens in a description: every embedded
// MM/DD/YYYY token becomes one freshly drawn date 15-90 days in the
// past, and every name placeholder becomes one synthetic person name.
func (g *generator) substitute(desc string) string {
	if embeddedDate.MatchString(desc) {
		daysAgo := 15 + g.rnd.IntN(76)
		date := time.Now().AddDate(0, 0, -daysAgo).Format("01/02/2006")
		desc = embeddedDate.ReplaceAllString(desc, date)
	}
	if strings.Contains(desc, namePlaceholder) {
		desc = strings.ReplaceAll(desc, namePlaceholder, g.faker.Name())
	}
	return desc
}

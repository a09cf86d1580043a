package domain

import (
	"strings"

	"github.com/samber/lo"
)

// RecipientSet is the ordered list of chat identifiers a message goes to.
type RecipientSet []string

// ParseRecipients splits a comma-separated list of chat IDs. Entries are
// trimmed, empties dropped, and only the first of any duplicate is kept.
func ParseRecipients(s string) RecipientSet {
	ids := lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
	return RecipientSet(lo.Uniq(ids))
}

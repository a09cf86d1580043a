package domain

import "fmt"

// RankedItem is one entry of the ranking, in the order the service returned it.
type RankedItem struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	URL     string `json:"url"`
	Votes   int    `json:"votes"`
}

// ItemList is an ordered ranking. An empty list means "no data today".
type ItemList []RankedItem

// Line renders the item as "index. name — tagline (N votes)", index starting at 1.
func (r RankedItem) Line(index int) string {
	return fmt.Sprintf("%d. %s — %s (%d votes)", index, r.Name, r.Tagline, r.Votes)
}

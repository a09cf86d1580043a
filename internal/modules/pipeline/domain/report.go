package domain

import (
	"time"

	broadcastDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/domain"
	digestDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/digest/domain"
	rankingDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
)

// Report describes one pipeline run. It is kept in memory only.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Items      rankingDomain.ItemList
	Digest     digestDomain.Digest
	Message    string
	Tally      broadcastDomain.Tally
}

// NoData reports whether the run short-circuited on an empty ranking.
func (r Report) NoData() bool {
	return len(r.Items) == 0
}

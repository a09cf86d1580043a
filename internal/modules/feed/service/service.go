package service

import (
	"fmt"
	"html"

	"github.com/gorilla/feeds"
	pipelineDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/domain"
)

const feedTitle = "Daily Product Bot"

// Service renders pipeline reports as RSS feeds
type Service struct{}

// New creates a new feed service
func New() *Service {
	return &Service{}
}

// GenerateFeed builds a feed for one run: the broadcast message first,
// then one item per ranked product.
func (s *Service) GenerateFeed(report pipelineDomain.Report, baseURL string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: baseURL + "/rss"},
		Description: "Daily digest of the top ranked Product Hunt launches",
		Author:      &feeds.Author{Name: feedTitle},
		Created:     report.StartedAt,
		Updated:     report.FinishedAt,
	}

	day := report.StartedAt.UTC().Format("20060102")
	title := pipelineDomain.Header(report.StartedAt)
	if report.NoData() {
		title = pipelineDomain.NoDataMessage
	}

	feed.Items = append(feed.Items, &feeds.Item{
		Title:       title,
		Link:        &feeds.Link{Href: baseURL + "/digest"},
		Description: report.Message,
		Content:     fmt.Sprintf("<pre>%s</pre>", html.EscapeString(report.Message)),
		Author:      &feeds.Author{Name: feedTitle},
		Created:     report.FinishedAt,
		Id:          "digest-" + day,
	})

	for i, item := range report.Items {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       fmt.Sprintf("#%d %s", i+1, item.Name),
			Link:        &feeds.Link{Href: item.URL},
			Description: fmt.Sprintf("%s (%d votes)", item.Tagline, item.Votes),
			Created:     report.FinishedAt,
			Id:          fmt.Sprintf("%s-%d-%s", day, i+1, item.URL),
		})
	}

	return feed
}

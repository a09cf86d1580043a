package domain

import (
	"fmt"
	"time"
)

const (
	// NoDataMessage is broadcast instead of a digest when the ranking is empty.
	NoDataMessage = "❌ 今天没有获取到 Product Hunt 数据，请检查网络连接和 API 配置。"

	Footer = "— Daily Product Bot 🤖"
)

// Header is the first line of a digest message, dated in UTC.
func Header(now time.Time) string {
	return fmt.Sprintf("🚀 Product Hunt 今日热门产品 (%s)", now.UTC().Format("2006年01月02日"))
}

// Compose wraps a digest body with the dated header and the footer.
func Compose(now time.Time, body string) string {
	return Header(now) + "\n\n" + body + "\n\n" + Footer
}

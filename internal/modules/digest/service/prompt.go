package service

import (
	"fmt"
	"strings"

	"github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/samber/lo"
)

const (
	// NoDataText is returned for an empty ranking without calling the model.
	NoDataText = "今天没有找到 Product Hunt 产品数据。"

	fallbackPreamble = "🚀 Product Hunt 今日热门产品："
	fallbackNotice   = "(OpenAI 服务暂时不可用，显示原始数据)"

	systemPersona = "你是一个严格遵守格式要求的产品分析助手。你必须完全按照用户指定的格式输出，不能有任何偏差。"

	// bulletPrefix starts every one of the three lines under a product header.
	bulletPrefix = "- "
)

const promptTemplate = `你是一个专业的产品分析助手。请严格按照以下格式总结 Product Hunt 产品：

【重要要求 - 必须处理所有产品】：
- 必须为列表中的每一个产品都生成总结
- 不能遗漏任何产品
- 必须按照产品在列表中的顺序进行编号

【格式要求 - 必须严格遵守】：
每个产品必须包含：
1. 产品编号和名称（格式：数字. 产品名 - 英文标语）
2. 三个要点，每个要点一行，以 "- " 开头
3. 要点用中文，简洁清晰

【输出示例】：
1. Meku - AI Web App and Site Builder:
- 利用人工智能技术，轻松建立网站
- 提供丰富的模板和设计选项
- 突出智能建站的便捷和创新

2. Open SaaS 2.0 - 免费、开源的 SaaS 起步工具包:
- 开放源代码，免费使用
- 提供强大功能，助力SaaS创业者
- 强调开源和自由的创新精神

【要点撰写规则】：
- 第1点：产品的核心功能或主要特点
- 第2点：产品提供的价值或优势
- 第3点：产品的创新点或核心价值

【待总结的产品列表 - 共%[1]d个产品，必须全部处理】：
%[2]s

【最终要求】：
请为上述列表中的每一个产品都生成总结，按照1-%[1]d的顺序编号，不要遗漏任何产品。严格按照上述格式输出，不要添加其他内容：`

// Enumerate renders one "index. name — tagline (N votes)" line per item.
func Enumerate(items domain.ItemList) string {
	lines := lo.Map(items, func(item domain.RankedItem, i int) string {
		return item.Line(i + 1)
	})
	return strings.Join(lines, "\n")
}

// BuildPrompt returns the user prompt covering every item in order.
func BuildPrompt(items domain.ItemList) string {
	return fmt.Sprintf(promptTemplate, len(items), Enumerate(items))
}

// Fallback is the plain listing used when the model cannot be reached.
func Fallback(items domain.ItemList) string {
	return fallbackPreamble + "\n\n" + Enumerate(items) + "\n\n" + fallbackNotice
}

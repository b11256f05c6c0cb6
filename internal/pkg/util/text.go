package util

import (
	"bytes"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToHTML 渲染 Markdown，原始 HTML 会被转义
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText 将 Markdown 渲染后提取纯文本，渲染失败时退化为原文
func PlainText(source string) string {
	rendered, err := MarkdownToHTML(source)
	if err != nil {
		return source
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return source
	}
	doc.Find("pre, code").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, blockquote, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	return strings.TrimSpace(doc.Text())
}

// WordCount 以空白切分计数
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadTime 按每分钟 wpm 个词向上取整，非空内容至少 1 分钟
func ReadTime(content string, wpm int) int {
	if wpm <= 0 {
		wpm = 200
	}
	words := WordCount(PlainText(content))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / float64(wpm)))
}

// Excerpt 截取前 limit 个字符，按词边界截断
func Excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit-3])
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// TruncateRunes 按字符截断，不追加省略号
func TruncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

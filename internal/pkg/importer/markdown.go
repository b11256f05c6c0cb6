package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToMarkdown 覆盖正文常见元素，未知元素只保留文本
func HTMLToMarkdown(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	doc.Find("body").Contents().Each(func(_ int, sel *goquery.Selection) {
		writeBlock(&sb, sel)
	})
	out := blankLines.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(out)
}

func writeBlock(sb *strings.Builder, sel *goquery.Selection) {
	node := sel.Get(0)
	if node == nil {
		return
	}
	if node.Type == nethtml.TextNode {
		if text := collapse(node.Data); strings.TrimSpace(text) != "" {
			sb.WriteString(text)
		}
		return
	}
	if node.Type != nethtml.ElementNode {
		return
	}

	switch tag := goquery.NodeName(sel); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(tag[1] - '0')
		fmt.Fprintf(sb, "\n\n%s %s\n\n", strings.Repeat("#", level), strings.TrimSpace(inline(sel)))
	case "p":
		fmt.Fprintf(sb, "\n\n%s\n\n", strings.TrimSpace(inline(sel)))
	case "pre":
		lang := ""
		if class, ok := sel.Find("code").Attr("class"); ok {
			lang = strings.TrimPrefix(class, "language-")
		}
		fmt.Fprintf(sb, "\n\n```%s\n%s\n```\n\n", lang, strings.TrimRight(sel.Text(), "\n"))
	case "blockquote":
		inner := HTMLToMarkdownSelection(sel)
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimRight("> "+l, " ")
		}
		fmt.Fprintf(sb, "\n\n%s\n\n", strings.Join(lines, "\n"))
	case "ul", "ol":
		sb.WriteString("\n\n")
		sel.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
			marker := "-"
			if tag == "ol" {
				marker = fmt.Sprintf("%d.", i+1)
			}
			fmt.Fprintf(sb, "%s %s\n", marker, strings.TrimSpace(inline(li)))
		})
		sb.WriteString("\n")
	case "hr":
		sb.WriteString("\n\n---\n\n")
	case "img":
		sb.WriteString(image(sel))
	case "script", "style", "noscript":
	default:
		if sel.Children().Length() == 0 {
			sb.WriteString(inline(sel))
			return
		}
		sel.Contents().Each(func(_ int, child *goquery.Selection) {
			writeBlock(sb, child)
		})
	}
}

// HTMLToMarkdownSelection 对子树递归转换
func HTMLToMarkdownSelection(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		writeBlock(&sb, child)
	})
	return strings.TrimSpace(blankLines.ReplaceAllString(sb.String(), "\n\n"))
}

func inline(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		if node.Type == nethtml.TextNode {
			sb.WriteString(collapse(node.Data))
			return
		}
		if node.Type != nethtml.ElementNode {
			return
		}
		switch goquery.NodeName(child) {
		case "strong", "b":
			fmt.Fprintf(&sb, "**%s**", strings.TrimSpace(inline(child)))
		case "em", "i":
			fmt.Fprintf(&sb, "*%s*", strings.TrimSpace(inline(child)))
		case "code":
			fmt.Fprintf(&sb, "`%s`", child.Text())
		case "a":
			href, _ := child.Attr("href")
			text := strings.TrimSpace(inline(child))
			if href == "" {
				sb.WriteString(text)
			} else {
				fmt.Fprintf(&sb, "[%s](%s)", text, href)
			}
		case "img":
			sb.WriteString(image(child))
		case "br":
			sb.WriteString("  \n")
		default:
			sb.WriteString(inline(child))
		}
	})
	return sb.String()
}

func image(sel *goquery.Selection) string {
	src, _ := sel.Attr("src")
	if src == "" {
		return ""
	}
	alt, _ := sel.Attr("alt")
	return fmt.Sprintf("![%s](%s)", alt, src)
}

func collapse(s string) string {
	trimmed := strings.Join(strings.Fields(s), " ")
	if trimmed == "" {
		if s != "" {
			return " "
		}
		return ""
	}
	if isSpace(s[0]) {
		trimmed = " " + trimmed
	}
	if isSpace(s[len(s)-1]) {
		trimmed += " "
	}
	return trimmed
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

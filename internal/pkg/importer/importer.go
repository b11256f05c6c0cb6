package importer

import (
	"Inkpost/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
)

// 静态抓取结果过短或仍在加载时改用浏览器渲染
const minStaticHTML = 4000

var ErrNoContent = errors.New("no readable content")

// Renderer 可选的脚本渲染能力
type Renderer interface {
	RenderPage(ctx context.Context, url string) (string, error)
}

// Article 导入结果，正文为 Markdown
type Article struct {
	Title     string
	Markdown  string
	SourceURL string
}

type Importer struct {
	client   *resty.Client
	renderer Renderer
}

// New renderer 为 nil 时只做静态抓取
func New(cfg config.ImporterConfig, renderer Renderer) *Importer {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (compatible; InkpostImporter/1.0)"
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", ua)
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}

	return &Importer{client: client, renderer: renderer}
}

// Fetch 抓取网页并提取正文，转换为 Markdown
func (s *Importer) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	html := ""
	resp, err := s.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		log.WarnContext(ctx, "static fetch failed", "url", rawURL, "err", err)
	} else if resp.IsSuccess() {
		html = resp.String()
	}

	if s.renderer != nil && needsRender(html) {
		rendered, rErr := s.renderer.RenderPage(ctx, rawURL)
		if rErr != nil {
			log.WarnContext(ctx, "browser render failed", "url", rawURL, "err", rErr)
		} else {
			html = rendered
		}
	}
	if html == "" {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, ErrNoContent)
	}

	return Extract(html, parsedURL)
}

func needsRender(html string) bool {
	return len(html) < minStaticHTML || strings.Contains(strings.ToLower(html), "loading")
}

// Extract 从 HTML 中抽取正文
func Extract(html string, pageURL *url.URL) (*Article, error) {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	markdown := HTMLToMarkdown(article.Content)
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrNoContent
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL.Host
	}

	return &Article{
		Title:     title,
		Markdown:  fmt.Sprintf("# %s\n\n%s\n\n> Source: <%s>\n", title, markdown, pageURL.String()),
		SourceURL: pageURL.String(),
	}, nil
}

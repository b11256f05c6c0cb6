package browser

import (
	"Inkpost/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Browser 常驻的无头 Chrome，每次调用开一个新标签页
type Browser struct {
	browserCtx context.Context
	cancel     context.CancelFunc
	timeout    time.Duration
}

// New 启动浏览器引擎，失败时调用方应关闭依赖功能
func New(cfg config.ChromeConfig) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		return nil, fmt.Errorf("start headless chrome: %w", err)
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	log.Info("Headless chrome started")
	return &Browser{browserCtx: browserCtx, cancel: cancel, timeout: timeout}, nil
}

func (b *Browser) tab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, b.timeout)
	stop := context.AfterFunc(ctx, tabCancel)
	return tabCtx, func() {
		stop()
		timeoutCancel()
		tabCancel()
	}
}

// PrintPDF 将完整 HTML 文档打印为 A4 PDF
func (b *Browser) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	tabCtx, cancel := b.tab(ctx)
	defer cancel()

	var out []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			out = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return out, nil
}

// RenderPage 渲染需要执行脚本的页面并返回最终 HTML
func (b *Browser) RenderPage(ctx context.Context, url string) (string, error) {
	tabCtx, cancel := b.tab(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return html, nil
}

func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

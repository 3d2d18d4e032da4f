package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Селекторы даты на странице курса, в порядке приоритета.
var coursePageDateSelectors = []string{
	DateSelector,
	".course-date",
	".start-date",
	"[class*='date']",
	".course-info__date",
}

type CoursePageInfo struct {
	Title    string
	DateText string
	URL      string
}

func (i CoursePageInfo) String() string {
	return fmt.Sprintf("CoursePageInfo{title='%s', dateText='%s', url='%s'}", i.Title, i.DateText, i.URL)
}

// ParseCoursePage достаёт заголовок и текст даты из HTML страницы курса.
func (p *Parser) ParseCoursePage(r io.Reader, url string) (CoursePageInfo, error) {
	info := CoursePageInfo{URL: strings.TrimSpace(url)}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return info, fmt.Errorf("ошибка разбора страницы курса %s: %w", url, err)
	}

	info.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	if info.Title == "" {
		info.Title = strings.TrimSpace(doc.Find("h1.sc-1yg5ro0-1").First().Text())
	}

	for _, selector := range coursePageDateSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			info.DateText = text
			p.log.Debug("дата найдена", zap.String("selector", selector), zap.String("date", text))
			break
		}
	}

	p.log.Info("страница курса разобрана", zap.Stringer("info", info))
	return info, nil
}

// Fetcher загружает страницы курсов напрямую, минуя браузер.
type Fetcher struct {
	parser *Parser
	client *http.Client
}

func NewFetcher(p *Parser, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{parser: p, client: client}
}

// CoursePage загружает страницу курса и разбирает её. При ошибке в info остаётся только URL.
func (f *Fetcher) CoursePage(ctx context.Context, url string) (CoursePageInfo, error) {
	f.parser.log.Info("загружаем страницу курса", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CoursePageInfo{URL: url}, fmt.Errorf("ошибка создания запроса %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return CoursePageInfo{URL: url}, fmt.Errorf("ошибка загрузки страницы курса %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return CoursePageInfo{URL: url}, fmt.Errorf("страница курса %s вернула статус %d", url, resp.StatusCode)
	}

	return f.parser.ParseCoursePage(resp.Body, url)
}

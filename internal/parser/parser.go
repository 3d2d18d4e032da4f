// Package parser разбирает исходный HTML каталога и страниц курсов без браузера.
// Результат сверяется с тем, что page objects получают из живого DOM.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"catalogUI/internal/course"
)

const (
	CardSelector  = "a.sc-zzdkm7-0"
	TitleSelector = "h6.sc-1yg5ro0-1 div.sc-hrqzy3-1"
	DateSelector  = ".sc-157icee-1 .sc-hrqzy3-1"
)

type Parser struct {
	baseURL string
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{baseURL: baseURL, log: log}
}

// Cards возвращает сырой текст карточек каталога.
func (p *Parser) Cards(r io.Reader) ([]course.Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора HTML каталога: %w", err)
	}

	sel := doc.Find(CardSelector)
	p.log.Debug("найдено карточек курсов", zap.Int("count", sel.Length()))

	cards := make([]course.Card, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		cards = append(cards, course.Card{
			Title:    strings.TrimSpace(s.Find(TitleSelector).First().Text()),
			DateText: strings.TrimSpace(s.Find(DateSelector).First().Text()),
			Href:     href,
		})
	})
	return cards, nil
}

// Courses разбирает карточки каталога в курсы.
func (p *Parser) Courses(r io.Reader) ([]course.Course, error) {
	cards, err := p.Cards(r)
	if err != nil {
		return nil, err
	}

	courses := make([]course.Course, 0, len(cards))
	for _, card := range cards {
		c, ok := course.FromCard(card, p.baseURL)
		if !ok {
			continue
		}
		courses = append(courses, c)
	}
	courses = course.Distinct(courses)

	p.log.Info("курсы разобраны из HTML",
		zap.Int("cards", len(cards)),
		zap.Int("courses", len(courses)),
		zap.Int("with_date", len(course.WithDate(courses))),
	)
	return courses, nil
}

func (p *Parser) CoursesString(html string) ([]course.Course, error) {
	return p.Courses(strings.NewReader(html))
}

// Earliest возвращает курсы с самой ранней датой старта.
func (p *Parser) Earliest(html string) ([]course.Course, error) {
	courses, err := p.CoursesString(html)
	if err != nil {
		return nil, err
	}
	earliest := course.Earliest(courses)
	if len(earliest) == 0 {
		p.log.Warn("нет курсов с указанной датой")
		return earliest, nil
	}
	p.log.Info("самая ранняя дата", zap.String("date", course.FormatDate(earliest[0].Start)))
	return earliest, nil
}

// Latest возвращает курсы с самой поздней датой старта.
func (p *Parser) Latest(html string) ([]course.Course, error) {
	courses, err := p.CoursesString(html)
	if err != nil {
		return nil, err
	}
	latest := course.Latest(courses)
	if len(latest) == 0 {
		p.log.Warn("нет курсов с указанной датой")
		return latest, nil
	}
	p.log.Info("самая поздняя дата", zap.String("date", course.FormatDate(latest[0].Start)))
	return latest, nil
}

package catalog

import (
	"fmt"
	"regexp"

	"icon-organizer/internal/fileio"
)

// Ключевые слова заголовков категорий. Первый текст слайда, попавший в
// один из паттернов, открывает новую категорию.
var deckPatterns = map[Language][]*regexp.Regexp{
	LangZH: compilePatterns(
		`计算`, `容器`, `存储`, `数据库`, `网络`, `CDN`, `视频`,
		`安全`, `大数据`, `人工智能`, `开发`, `运维`, `通信`,
		`办公`, `微信`, `物联网`, `行业`, `营销`, `云通信`,
	),
	LangEN: compilePatterns(
		`Compute`, `Container`, `Storage`, `Database`, `Network`,
		`CDN`, `Video`, `Security`, `Big\s*Data`, `AI`, `Machine Learning`,
		`Development`, `Operation`, `Communication`, `Office`,
		`WeChat`, `IoT`, `Industry`, `Marketing`,
	),
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// FromDeck собирает категории из текстов слайдов. Эвристика: первый
// текст слайда с ключевым словом — заголовок новой категории (имя
// получает порядковый префикс "NN "); остальные тексты слайда и все
// тексты последующих слайдов без заголовка — продукты текущей
// категории. Слайды до первого заголовка молча отбрасываются: их не к
// чему привязать. Это известное, нефатальное поведение.
func FromDeck(slides []fileio.Slide, lang Language) CategoryMap {
	patterns := deckPatterns[lang]

	var m CategoryMap
	current := -1
	index := 1

	for _, slide := range slides {
		if len(slide.Texts) == 0 {
			continue
		}
		first := slide.Texts[0]
		if matchesAny(patterns, first) {
			m = append(m, Category{
				Name:     fmt.Sprintf("%02d %s", index, first),
				Products: append([]string(nil), slide.Texts[1:]...),
			})
			current = len(m) - 1
			index++
			continue
		}
		if current >= 0 {
			m[current].Products = append(m[current].Products, slide.Texts...)
		}
	}
	return m
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// Package catalog владеет отображением «категория → имена продуктов» и
// тремя его источниками: явный файл, извлечение из слайдов, встроенные
// таблицы.
package catalog

import (
	"fmt"

	"icon-organizer/internal/fileio"
)

// Language — язык встроенных таблиц и эвристики слайдов.
type Language string

const (
	LangZH Language = "zh"
	LangEN Language = "en"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangZH, LangEN:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q (want zh or en)", s)
	}
}

// Category — имя категории и её продукты. Список продуктов может
// содержать дубли и пересекаться с другими категориями — уникальность
// не гарантируется.
type Category struct {
	Name     string
	Products []string
}

// CategoryMap — упорядоченное отображение категорий. Порядок вставки —
// это приоритет: первая категория, забравшая файл, выигрывает. Поэтому
// срез, а не map.
type CategoryMap []Category

// ProductCount — суммарное число продуктов по всем категориям.
func (m CategoryMap) ProductCount() int {
	n := 0
	for _, c := range m {
		n += len(c.Products)
	}
	return n
}

// FromRows собирает CategoryMap из плоских пар, сохраняя порядок первого
// появления каждой категории.
func FromRows(rows []fileio.CategoryRow) CategoryMap {
	var m CategoryMap
	idx := make(map[string]int)
	for _, r := range rows {
		i, ok := idx[r.Category]
		if !ok {
			i = len(m)
			idx[r.Category] = i
			m = append(m, Category{Name: r.Category})
		}
		if r.Product != "" {
			m[i].Products = append(m[i].Products, r.Product)
		}
	}
	return m
}

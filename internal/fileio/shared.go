package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// CategoryRow — плоская пара (категория, продукт) в порядке следования
// в исходном файле. Product может быть пустым: это регистрирует
// категорию без продуктов.
type CategoryRow struct {
	Category string
	Product  string
}

// ReadCategories выбирает парсер по расширению файла. Табличные форматы
// (csv/xls/xlsx) ожидают две колонки: категория, продукт; JSON — объект
// категория → массив имён продуктов.
func ReadCategories(r io.Reader, filename string) ([]CategoryRow, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return readCategoriesJSON(r)
	case ".csv":
		return readCategoriesCSV(r)
	case ".xls":
		return readCategoriesXLS(r)
	case ".xlsx":
		return readCategoriesXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported categories file: %s", filename)
	}
}

// rowsToCategories — конвертирует AoA в пары. Строка-шапка сверху
// пропускается; пустая ячейка категории наследует предыдущую (так
// выглядят выгрузки с объединёнными ячейками).
func rowsToCategories(rows [][]string) []CategoryRow {
	var out []CategoryRow
	current := ""
	for i, rec := range rows {
		cat, prod := cell(rec, 0), cell(rec, 1)
		if i == 0 && looksLikeHeader(rec) {
			continue
		}
		if cat == "" && prod == "" {
			continue
		}
		if cat != "" {
			current = cat
		}
		if current == "" {
			continue // продукт до первой категории — некуда отнести
		}
		out = append(out, CategoryRow{Category: current, Product: prod})
	}
	return out
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

var headerWords = []string{"category", "product", "категория", "продукт", "分类", "类别", "产品"}

func looksLikeHeader(rec []string) bool {
	for _, v := range rec {
		s := strings.ToLower(strings.TrimSpace(v))
		for _, w := range headerWords {
			if s == w || strings.Contains(s, w) {
				return true
			}
		}
	}
	return false
}

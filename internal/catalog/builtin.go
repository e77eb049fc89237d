package catalog

import (
	"bytes"
	"embed"
	"fmt"

	"icon-organizer/internal/fileio"
)

// Встроенные таблицы Tencent Cloud. Данные, а не код: лежат отдельными
// JSON-ассетами, чтобы движок матчинга не зависел от конкретного
// каталога продуктов.
//
//go:embed data/categories_zh.json data/categories_en.json
var builtinFS embed.FS

// Builtin возвращает встроенную таблицу для языка.
func Builtin(lang Language) (CategoryMap, error) {
	name := fmt.Sprintf("data/categories_%s.json", lang)
	b, err := builtinFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("builtin categories %s: %w", lang, err)
	}
	rows, err := fileio.ReadCategories(bytes.NewReader(b), name)
	if err != nil {
		return nil, fmt.Errorf("builtin categories %s: %w", lang, err)
	}
	return FromRows(rows), nil
}

package fileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// readCategoriesJSON читает объект {категория: [имена продуктов]}.
// Декодируем токенами, а не в map: порядок ключей документа и есть
// приоритет категорий, терять его нельзя. Любое отклонение формы —
// ошибка сразу (fail fast), без частичного результата.
func readCategoriesJSON(r io.Reader) ([]CategoryRow, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("categories json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("categories json: top level must be an object of category -> [product names]")
	}

	var out []CategoryRow
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("categories json: %w", err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("categories json: object key is not a string")
		}

		var products []string
		if err := dec.Decode(&products); err != nil {
			return nil, fmt.Errorf("categories json: category %q: %w", category, err)
		}

		if len(products) == 0 {
			out = append(out, CategoryRow{Category: category})
			continue
		}
		for _, p := range products {
			out = append(out, CategoryRow{Category: category, Product: p})
		}
	}

	if _, err := dec.Token(); err != nil { // закрывающая '}'
		return nil, fmt.Errorf("categories json: %w", err)
	}
	return out, nil
}

// ReadOverrides — точечная карта "имя файла → категория" для второго
// прохода организатора. Форма строгая: объект строка → строка.
func ReadOverrides(r io.Reader) (map[string]string, error) {
	var m map[string]string
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("overrides json: %w", err)
	}
	return m, nil
}

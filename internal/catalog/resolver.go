package catalog

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"icon-organizer/internal/fileio"
)

// Source — откуда брать категории. Источники взаимоисключающие,
// приоритет: явный файл > слайды > встроенная таблица языка.
type Source struct {
	CategoriesFile string   // .json / .csv / .xls / .xlsx
	DeckPath       string   // .pptx
	Language       Language // язык встроенных таблиц и эвристики слайдов
}

// Resolve строит CategoryMap один раз на прогон. Ошибка чтения или
// разбора явного файла категорий фатальна; пустой результат извлечения
// из слайдов — нет: тогда откатываемся на встроенную таблицу.
func Resolve(src Source, logger zerolog.Logger) (CategoryMap, error) {
	if src.CategoriesFile != "" {
		f, err := os.Open(src.CategoriesFile)
		if err != nil {
			return nil, fmt.Errorf("categories file: %w", err)
		}
		defer f.Close()

		rows, err := fileio.ReadCategories(f, src.CategoriesFile)
		if err != nil {
			return nil, err
		}
		m := FromRows(rows)
		logger.Info().Str("file", src.CategoriesFile).Int("categories", len(m)).Msg("categories loaded")
		return m, nil
	}

	if src.DeckPath != "" {
		slides, err := fileio.ReadSlideTexts(src.DeckPath, logger)
		if err != nil {
			return nil, err
		}
		if m := FromDeck(slides, src.Language); len(m) > 0 {
			logger.Info().Str("pptx", src.DeckPath).Int("categories", len(m)).Msg("categories extracted from deck")
			return m, nil
		}
		logger.Warn().Str("pptx", src.DeckPath).Msg("deck yielded no categories, falling back to built-in table")
	}

	m, err := Builtin(src.Language)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("language", string(src.Language)).Int("categories", len(m)).Msg("using built-in categories")
	return m, nil
}

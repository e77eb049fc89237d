package service

import "icon-organizer/internal/organize/model"

// методы матчинга в порядке приоритета
const (
	methodExact     = "exact"
	methodSuffix    = "suffix"
	methodScored    = "scored"
	methodOverride  = "override"
	methodSubstring = "substring"
)

// findBestMatch подбирает файл для имени продукта.
// Ярусы, первый сработавший выигрывает:
//  1. точное совпадение нормализованного имени с ключом каталога;
//  2. имя без числового суффикса ("-1", "-2") совпадает с ключом;
//  3. scored-перебор всего каталога: максимум принимается только при
//     score >= threshold; при равных score остаётся первый встреченный
//     ключ (порядок перебора — порядок вставки, он стабилен).
//
// Отсутствие матча — валидный результат, не ошибка.
func findBestMatch(product string, icons *model.IconSet, threshold float64) (model.IconFile, string, float64, bool) {
	norm := normalize(product)

	if f, ok := icons.Get(norm); ok {
		return f, methodExact, 0, true
	}

	if base := stripNumSuffix(norm); base != norm {
		if f, ok := icons.Get(base); ok {
			return f, methodSuffix, 0, true
		}
	}

	best := 0.0
	bestKey := ""
	for _, key := range icons.Keys() {
		if s := score(norm, key); s > best && s >= threshold {
			best = s
			bestKey = key
		}
	}
	if bestKey != "" {
		f, _ := icons.Get(bestKey)
		return f, methodScored, best, true
	}

	return model.IconFile{}, "", 0, false
}

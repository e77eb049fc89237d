package service

import (
	"regexp"
	"strings"
)

// числовой суффикс-дизамбигуатор: "api gateway-1" → "api gateway"
var reNumSuffix = regexp.MustCompile(`-\d+$`)

func stripNumSuffix(s string) string {
	return reNumSuffix.ReplaceAllString(s, "")
}

func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			// вставка / удаление / замена
			dp[i][j] = min3(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)

			// транспозиция соседних символов
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := dp[i-2][j-2] + 1; v < dp[i][j] {
					dp[i][j] = v
				}
			}
		}
	}
	return dp[al][bl]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// similarity — normalized Damerau-Levenshtein similarity in [0..1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}

// wordOverlap — Жаккар по множествам токенов; 0, если одна из сторон пуста.
func wordOverlap(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(wa))
	for _, w := range wa {
		set[w] = struct{}{}
	}
	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(wb))
	for _, w := range wb {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// score — комбинированная схожесть продукта и ключа каталога. Оба
// аргумента уже нормализованы. Диапазон НЕ закрыт единицей: бонусы
// за вложенность (+0.3) и за совпадение базового имени без числового
// суффикса (+0.2) поднимают максимум до 1.5.
func score(product, candidate string) float64 {
	s := 0.6*similarity(product, candidate) + 0.4*wordOverlap(product, candidate)

	if strings.Contains(candidate, product) || strings.Contains(product, candidate) {
		s += 0.3
	}

	bp := stripNumSuffix(product)
	bc := stripNumSuffix(candidate)
	if bp == bc || strings.Contains(bc, bp) || strings.Contains(bp, bc) {
		s += 0.2
	}
	return s
}

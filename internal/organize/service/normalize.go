package service

import "strings"

// NBSP — неразрывный пробел; встречается в именах продуктов и файлов.
const nbsp = "\u00a0"

// normalize приводит имя к ключу сравнения: NBSP → пробел, схлопывание
// пробелов, нижний регистр. Идемпотентна. Единственная основа равенства
// при матчинге.
func normalize(s string) string {
	s = strings.ReplaceAll(s, nbsp, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// normalizeFilename меняет ТОЛЬКО NBSP на обычный пробел. Регистр и
// внутренние пробелы не трогаем: это имя уходит на диск, и видимое
// изменение должно быть минимальным. Не путать с normalize — ключ
// сравнения теряет больше информации, чем переименование.
func normalizeFilename(name string) string {
	return strings.ReplaceAll(name, nbsp, " ")
}

package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// readCategoriesCSV читает CSV с автоопределением кодировки и
// конвертацией в UTF-8. Из коробки: UTF-8, GB-18030 (китайские выгрузки),
// Windows-1251.
func readCategoriesCSV(r io.Reader) ([]CategoryRow, error) {
	br := bufio.NewReader(r)

	// Подглядываем начало файла для детектора
	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "gb-18030", "gb18030", "gbk", "gb2312":
		dec = transform.NewReader(br, simplifiedchinese.GB18030.NewDecoder())
	case "windows-1251", "cp1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
	default:
		// считаем UTF-8
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rowsToCategories(rows), nil
}

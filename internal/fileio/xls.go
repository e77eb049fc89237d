package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// readCategoriesXLS читает легаси-.xls. Кодировку угадываем перебором:
// старые китайские выгрузки чаще всего gb18030, но бывают и UTF-8.
func readCategoriesXLS(r io.Reader) ([]CategoryRow, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	tryCharsets := []string{"utf-8", "gb18030", "windows-1251"}
	var lastErr error
	for _, ch := range tryCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	// нужны только первые две колонки: категория, продукт
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		rows = append(rows, []string{row.Col(0), row.Col(1)})
	}
	return rowsToCategories(rows), nil
}

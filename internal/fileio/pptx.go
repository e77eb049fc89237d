package fileio

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Slide — упорядоченные текстовые фрагменты одного слайда.
type Slide struct {
	Num   int
	Texts []string
}

var reSlideName = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ReadSlideTexts достаёт тексты слайдов из pptx. Это обычный zip со
// слайдами в ppt/slides/slideN.xml; текстовые прогоны лежат в элементах
// <a:t>. Битый слайд — предупреждение в лог и пустой вклад, остальные
// слайды читаются дальше (partial result).
func ReadSlideTexts(path string, logger zerolog.Logger) ([]Slide, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	defer zr.Close()

	var slides []Slide
	for _, zf := range zr.File {
		m := reSlideName.FindStringSubmatch(zf.Name)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])

		texts, err := slideTexts(zf)
		if err != nil {
			logger.Warn().Str("slide", zf.Name).Err(err).Msg("skip slide: parse failed")
			continue
		}
		slides = append(slides, Slide{Num: num, Texts: texts})
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Num < slides[j].Num })
	return slides, nil
}

func slideTexts(zf *zip.File) ([]string, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		texts  []string
		buf    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" { // текстовый прогон DrawingML
				inText = true
				buf.Reset()
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
				if s := strings.TrimSpace(buf.String()); s != "" {
					texts = append(texts, s)
				}
			}
		}
	}
	return texts, nil
}

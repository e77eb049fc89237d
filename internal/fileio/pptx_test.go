package fileio

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePPTX(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReadSlideTexts(t *testing.T) {
	path := writePPTX(t, map[string]string{
		// нарочно в перемешанном порядке имён: 10 должен идти после 2
		"ppt/slides/slide10.xml": `<sld><a:t>десятый</a:t></sld>`,
		"ppt/slides/slide2.xml":  `<sld><a:t>второй</a:t><a:t>  </a:t><a:t>ещё</a:t></sld>`,
		"ppt/slides/slide1.xml":  `<sld><p:sp><a:t>первый</a:t></p:sp></sld>`,
		"ppt/notes/note1.xml":    `<note><a:t>не слайд</a:t></note>`,
		"docProps/app.xml":       `<Properties/>`,
	})

	slides, err := ReadSlideTexts(path, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, slides, 3)
	assert.Equal(t, 1, slides[0].Num)
	assert.Equal(t, 2, slides[1].Num)
	assert.Equal(t, 10, slides[2].Num, "numeric order, not lexicographic")

	assert.Equal(t, []string{"первый"}, slides[0].Texts)
	assert.Equal(t, []string{"второй", "ещё"}, slides[1].Texts, "blank runs are dropped")
	assert.Equal(t, []string{"десятый"}, slides[2].Texts)
}

func TestReadSlideTextsSkipsCorruptSlide(t *testing.T) {
	path := writePPTX(t, map[string]string{
		"ppt/slides/slide1.xml": `<sld><a:t>целый</a:t></sld>`,
		"ppt/slides/slide2.xml": `<sld><a:t>обрыв`,
	})

	slides, err := ReadSlideTexts(path, zerolog.Nop())
	require.NoError(t, err, "one broken slide must not fail the whole deck")
	require.Len(t, slides, 1)
	assert.Equal(t, 1, slides[0].Num)
}

func TestReadSlideTextsNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := ReadSlideTexts(path, zerolog.Nop())
	assert.Error(t, err)
}

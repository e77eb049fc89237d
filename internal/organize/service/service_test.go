package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icon-organizer/internal/catalog"
	"icon-organizer/internal/organize/model"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("<svg/>"), 0o644))
	}
}

func TestOrganizerEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "云服务器.svg", "负载均衡.svg", "未知产品.svg")
	cats := catalog.CategoryMap{
		{Name: "01 计算", Products: []string{"云服务器"}},
		{Name: "05 网络", Products: []string{"负载均衡"}},
	}

	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Found)
	assert.Equal(t, 2, rep.Moved)
	assert.Equal(t, 1, rep.Remaining)
	assert.Empty(t, rep.Unmatched)
	assert.Equal(t, []string{"未知产品.svg"}, rep.RemainingFiles)

	assert.FileExists(t, filepath.Join(dir, "01 计算", "云服务器.svg"))
	assert.FileExists(t, filepath.Join(dir, "05 网络", "负载均衡.svg"))
	assert.FileExists(t, filepath.Join(dir, "未知产品.svg"), "unmatched file stays at root")
}

func TestOrganizerNBSPRename(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "云\u00a0服务器.svg")
	cats := catalog.CategoryMap{{Name: "01 计算", Products: []string{"云 服务器"}}}

	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	require.Equal(t, 1, rep.Moved)
	// на диск уходит имя с обычным пробелом вместо NBSP
	assert.FileExists(t, filepath.Join(dir, "01 计算", "云 服务器.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "01 计算", "云\u00a0服务器.svg"))
	assert.NoFileExists(t, filepath.Join(dir, "云\u00a0服务器.svg"))
}

func TestOrganizerAtMostOnce(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "API Gateway.svg")
	// второй продукт через суффикс-ярус находит тот же файл
	cats := catalog.CategoryMap{{Name: "02 容器与中间件", Products: []string{"API Gateway", "API Gateway-1"}}}

	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Moved)
	assert.Len(t, rep.Matches, 1, "file relocated at most once")
	assert.Empty(t, rep.Unmatched, "claimed-by-earlier-product is a silent no-op, not unmatched")
}

func TestOrganizerUnmatchedReported(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "云服务器.svg")
	cats := catalog.CategoryMap{{Name: "01 计算", Products: []string{"云服务器", "量子计算机"}}}

	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	require.Len(t, rep.Unmatched, 1)
	assert.Equal(t, model.ProductRef{Category: "01 计算", Product: "量子计算机"}, rep.Unmatched[0])
}

func TestOrganizerIdempotentRerun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "云服务器.svg")
	cats := catalog.CategoryMap{{Name: "01 计算", Products: []string{"云服务器"}}}

	_, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	// повторный прогон по полностью разложенному дереву — no-op
	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Found)
	assert.Equal(t, 0, rep.Moved)
	assert.Empty(t, rep.Unmatched)
	assert.Equal(t, 0, rep.Remaining)
}

type decision struct{ category, product, file string }

func decisions(rep *model.Report) []decision {
	out := make([]decision, 0, len(rep.Matches))
	for _, m := range rep.Matches {
		out = append(out, decision{m.Category, m.Product, m.File})
	}
	return out
}

func TestOrganizerPreviewParity(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "api gateway v2.svg", "云服务器.svg", "未知产品.svg")
	cats := catalog.CategoryMap{
		{Name: "01 计算", Products: []string{"云服务器"}},
		{Name: "02 容器与中间件", Products: []string{"API Gateway", "消息队列"}},
	}

	dry, err := New(dir, cats, nil, model.Options{DryRun: true}, zerolog.Nop()).Run()
	require.NoError(t, err)

	// dry-run не трогает файловую систему
	assert.NoDirExists(t, filepath.Join(dir, "01 计算"))
	assert.FileExists(t, filepath.Join(dir, "云服务器.svg"))
	assert.Nil(t, dry.SecondPass, "no second pass in preview")

	real, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	assert.Equal(t, decisions(real), decisions(dry), "preview must predict the real run")
	assert.Equal(t, real.Unmatched, dry.Unmatched)
}

func TestOrganizerSecondPassSubstring(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "对象存储.svg", "轻量对象存储套件.svg")
	cats := catalog.CategoryMap{{Name: "03 存储", Products: []string{"对象存储"}}}

	rep, err := New(dir, cats, nil, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	require.NotNil(t, rep.SecondPass)
	assert.Equal(t, 1, rep.SecondPass.Moved)
	assert.Equal(t, 0, rep.Remaining)
	assert.FileExists(t, filepath.Join(dir, "03 存储", "对象存储.svg"))
	assert.FileExists(t, filepath.Join(dir, "03 存储", "轻量对象存储套件.svg"))
}

func TestOrganizerSecondPassOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "云服务器.svg", "特殊图标.svg", "特\u00a0殊.svg", "孤儿图标.svg")
	cats := catalog.CategoryMap{{Name: "01 计算", Products: []string{"云服务器"}}}
	overrides := map[string]string{
		"特殊图标.svg": "01 计算",
		"特 殊.svg":   "01 计算", // ключ с обычным пробелом, файл с NBSP
		"孤儿图标.svg": "99 其他", // каталог не существует — файл остаётся
	}

	rep, err := New(dir, cats, overrides, model.Options{}, zerolog.Nop()).Run()
	require.NoError(t, err)

	require.NotNil(t, rep.SecondPass)
	assert.Equal(t, 2, rep.SecondPass.Moved)
	assert.FileExists(t, filepath.Join(dir, "01 计算", "特殊图标.svg"))
	assert.FileExists(t, filepath.Join(dir, "01 计算", "特 殊.svg"))
	assert.FileExists(t, filepath.Join(dir, "孤儿图标.svg"), "category dir absent: file stays put")
	assert.Equal(t, 1, rep.Remaining)
}

func TestPreviewWithoutFilesystem(t *testing.T) {
	cats := catalog.CategoryMap{{Name: "01 计算", Products: []string{"云服务器"}}}

	rep := Preview(cats, []string{"云服务器.svg", "未知产品.svg", "readme.txt"}, model.Options{}, zerolog.Nop())

	assert.Equal(t, 2, rep.Found, "non-matching extensions are ignored")
	assert.Equal(t, 1, rep.Moved)
	require.Len(t, rep.Matches, 1)
	assert.Equal(t, "云服务器.svg", rep.Matches[0].File)
	assert.Equal(t, []string{"未知产品.svg"}, rep.RemainingFiles)
	assert.Nil(t, rep.SecondPass)
}

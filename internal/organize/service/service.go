package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"icon-organizer/internal/catalog"
	"icon-organizer/internal/organize/model"
)

// Organizer раскладывает плоский каталог иконок по подкаталогам
// категорий. Два прохода: матчинг продукт → файл по всему каталогу,
// затем добор остатков по прямой карте и подстрокам. moved — файлы,
// уже забранные в этом прогоне: один файл перемещается не более одного
// раза, первый матч выигрывает.
type Organizer struct {
	log       zerolog.Logger
	root      string
	cats      catalog.CategoryMap
	overrides map[string]string
	opt       model.Options
	fs        mover
	moved     map[string]struct{}
}

func New(root string, cats catalog.CategoryMap, overrides map[string]string, opt model.Options, logger zerolog.Logger) *Organizer {
	opt = opt.WithDefaults()
	var fs mover = fsMover{root: root}
	if opt.DryRun {
		fs = nopMover{}
	}
	return &Organizer{
		log:       logger,
		root:      root,
		cats:      cats,
		overrides: overrides,
		opt:       opt,
		fs:        fs,
		moved:     make(map[string]struct{}),
	}
}

// Run — весь прогон. Ошибки здесь только файловые (каталог недоступен,
// перемещение не удалось); «не нашли матч» ошибкой не бывает.
func (o *Organizer) Run() (*model.Report, error) {
	icons, err := o.scan()
	if err != nil {
		return nil, err
	}

	if icons.Len() == 0 {
		// пустой корень — штатный no-op (типично: повторный прогон по
		// уже разложенному дереву), продукты не считаются unmatched
		o.log.Info().Str("extension", o.opt.Extension).Msg("no icon files found, nothing to organize")
		return &model.Report{Categories: len(o.cats), Opts: o.opt}, nil
	}

	rep := &model.Report{Found: icons.Len(), Categories: len(o.cats), Opts: o.opt}
	o.log.Info().
		Int("files", icons.Len()).
		Int("categories", len(o.cats)).
		Str("extension", o.opt.Extension).
		Bool("dry_run", o.opt.DryRun).
		Msg("first pass")

	if err := o.passOne(icons, rep); err != nil {
		return nil, err
	}

	if o.opt.DryRun {
		rep.RemainingFiles = o.unclaimed(icons)
	} else {
		rep.RemainingFiles, err = o.listRemaining()
		if err != nil {
			return nil, err
		}
	}
	rep.Moved = len(o.moved)
	rep.Remaining = len(rep.RemainingFiles)

	o.report(rep)

	if rep.Remaining > 0 && !o.opt.DryRun {
		if err := o.passTwo(rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// scan строит каталог иконок из листинга корня. os.ReadDir отдаёт имена
// отсортированными, так что порядок перебора стабилен между прогонами.
func (o *Organizer) scan() (*model.IconSet, error) {
	entries, err := os.ReadDir(o.root)
	if err != nil {
		return nil, fmt.Errorf("icons directory: %w", err)
	}
	icons := model.NewIconSet()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !hasExt(name, o.opt.Extension) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		icons.Add(normalize(stem), model.IconFile{
			Name: name,
			Stem: stem,
			Path: filepath.Join(o.root, name),
		})
	}
	return icons, nil
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), "."+ext)
}

// passOne идёт по парам (категория, продукт) в порядке CategoryMap и
// матчит каждый продукт против всего каталога иконок.
func (o *Organizer) passOne(icons *model.IconSet, rep *model.Report) error {
	for _, cat := range o.cats {
		if err := o.fs.EnsureDir(cat.Name); err != nil {
			return err
		}
		matched := 0
		for _, product := range cat.Products {
			f, method, sc, ok := findBestMatch(product, icons, o.opt.Threshold)
			if !ok {
				// для ЭТОГО продукта файла нет; сам файл мог уйти
				// к другому продукту раньше — это разные вещи
				rep.Unmatched = append(rep.Unmatched, model.ProductRef{Category: cat.Name, Product: product})
				continue
			}
			if _, claimed := o.moved[f.Name]; claimed {
				continue // забрал более ранний продукт — молча
			}
			if !o.fs.Exists(f) {
				continue
			}

			renamed := normalizeFilename(f.Name)
			if err := o.fs.Move(f, cat.Name, renamed); err != nil {
				return err
			}
			o.moved[f.Name] = struct{}{}

			m := model.Match{Category: cat.Name, Product: product, File: f.Name, Renamed: renamed, Method: method}
			if method == methodScored {
				v := sc
				m.Score = &v
			}
			rep.Matches = append(rep.Matches, m)
			matched++
			o.log.Debug().
				Str("category", cat.Name).
				Str("product", product).
				Str("file", renamed).
				Str("method", method).
				Msg("matched")
		}
		o.log.Info().
			Str("category", cat.Name).
			Int("matched", matched).
			Int("products", len(cat.Products)).
			Msg("category done")
	}
	return nil
}

// passTwo перечитывает корень и добирает оставшиеся файлы: сперва
// прямая карта overrides (сырое имя, затем NBSP-нормализованное), потом
// подстрочный матч по плоской таблице продукт → категория. Файл уходит
// только в уже существующий каталог категории, иначе остаётся на месте.
func (o *Organizer) passTwo(rep *model.Report) error {
	names, err := o.listRemaining()
	if err != nil {
		return err
	}
	sp := &model.SecondPass{}
	rep.SecondPass = sp
	if len(names) == 0 {
		return nil
	}
	o.log.Info().Int("files", len(names)).Msg("second pass")

	flat := o.flatten()
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		category, method := "", ""
		if c, ok := o.overrides[name]; ok {
			category, method = c, methodOverride
		} else if c, ok := o.overrides[normalizeFilename(name)]; ok {
			category, method = c, methodOverride
		}
		if category == "" {
			normStem := normalize(stem)
			for _, e := range flat {
				if strings.Contains(normStem, e.key) || strings.Contains(e.key, normStem) {
					category, method = e.category, methodSubstring
					break
				}
			}
		}
		if category == "" || !o.fs.DirExists(category) {
			continue
		}

		f := model.IconFile{Name: name, Stem: stem, Path: filepath.Join(o.root, name)}
		renamed := normalizeFilename(name)
		if err := o.fs.Move(f, category, renamed); err != nil {
			return err
		}
		o.moved[name] = struct{}{}
		sp.Matches = append(sp.Matches, model.Match{Category: category, File: name, Renamed: renamed, Method: method})
		sp.Moved++
		o.log.Info().Str("file", renamed).Str("category", category).Str("method", method).Msg("second pass: moved")
	}

	left, err := o.listRemaining()
	if err != nil {
		return err
	}
	sp.Remaining = len(left)
	rep.Remaining = sp.Remaining
	rep.RemainingFiles = left
	o.log.Info().Int("moved", sp.Moved).Int("remaining", sp.Remaining).Msg("second pass done")
	return nil
}

type flatEntry struct{ key, category string }

// flatten — таблица normalized-продукт → категория в порядке CategoryMap.
// Продукт, встретившийся в нескольких категориях, остаётся за первой —
// тот же принцип first claim wins, что и в первом проходе.
func (o *Organizer) flatten() []flatEntry {
	var out []flatEntry
	seen := make(map[string]struct{})
	for _, cat := range o.cats {
		for _, p := range cat.Products {
			k := normalize(p)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, flatEntry{key: k, category: cat.Name})
		}
	}
	return out
}

func (o *Organizer) listRemaining() ([]string, error) {
	entries, err := os.ReadDir(o.root)
	if err != nil {
		return nil, fmt.Errorf("icons directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), o.opt.Extension) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func (o *Organizer) unclaimed(icons *model.IconSet) []string {
	var out []string
	for _, k := range icons.Keys() {
		f, _ := icons.Get(k)
		if _, ok := o.moved[f.Name]; !ok {
			out = append(out, f.Name)
		}
	}
	return out
}

// report пишет итог первого прохода в лог; длинные списки обрезаются,
// хвост остаётся на ручной разбор.
func (o *Organizer) report(rep *model.Report) {
	o.log.Info().
		Int("found", rep.Found).
		Int("moved", rep.Moved).
		Int("remaining", rep.Remaining).
		Msg("summary")

	if len(rep.Unmatched) > 0 {
		seen := make(map[string]struct{})
		var shown []string
		for _, u := range rep.Unmatched {
			if _, dup := seen[u.Product]; dup {
				continue
			}
			seen[u.Product] = struct{}{}
			if len(shown) < o.opt.MaxUnmatched {
				shown = append(shown, u.Product)
			}
		}
		o.log.Info().
			Int("unique", len(seen)).
			Strs("products", shown).
			Msg("unmatched products")
	}

	if len(rep.RemainingFiles) > 0 {
		show := rep.RemainingFiles
		if len(show) > o.opt.MaxRemaining {
			show = show[:o.opt.MaxRemaining]
		}
		o.log.Info().
			Int("total", len(rep.RemainingFiles)).
			Strs("files", show).
			Msg("remaining files")
	}
}

// Preview считает решения первого прохода по готовому списку имён
// файлов, вообще не трогая файловую систему. Решения идентичны реальному
// прогону; второго прохода нет — он существует только после настоящих
// перемещений.
func Preview(cats catalog.CategoryMap, filenames []string, opt model.Options, logger zerolog.Logger) *model.Report {
	opt = opt.WithDefaults()
	opt.DryRun = true

	names := append([]string(nil), filenames...)
	sort.Strings(names) // тот же порядок, что у листинга каталога

	icons := model.NewIconSet()
	for _, name := range names {
		if !hasExt(name, opt.Extension) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		icons.Add(normalize(stem), model.IconFile{Name: name, Stem: stem})
	}

	o := &Organizer{
		log:   logger,
		cats:  cats,
		opt:   opt,
		fs:    nopMover{},
		moved: make(map[string]struct{}),
	}
	rep := &model.Report{Found: icons.Len(), Categories: len(cats), Opts: opt}
	_ = o.passOne(icons, rep) // nopMover ошибок не возвращает
	rep.RemainingFiles = o.unclaimed(icons)
	rep.Moved = len(o.moved)
	rep.Remaining = len(rep.RemainingFiles)
	return rep
}

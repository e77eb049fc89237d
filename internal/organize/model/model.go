package model

// Options управляют матчингом и прогоном организатора.
type Options struct {
	Extension    string  `json:"extension"`    // расширение файлов без точки, напр. "svg"
	Threshold    float64 `json:"threshold"`    // порог схожести для scored-поиска
	DryRun       bool    `json:"dryRun"`       // только решения, без перемещений
	MaxUnmatched int     `json:"maxUnmatched"` // сколько unmatched-продуктов показывать в логе
	MaxRemaining int     `json:"maxRemaining"` // сколько оставшихся файлов показывать в логе
}

const (
	DefaultExtension = "svg"
	DefaultThreshold = 0.6
)

// WithDefaults заполняет нулевые поля осознанными дефолтами.
func (o Options) WithDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MaxUnmatched <= 0 {
		o.MaxUnmatched = 20
	}
	if o.MaxRemaining <= 0 {
		o.MaxRemaining = 50
	}
	return o
}

// IconFile — файл иконки в каталоге.
type IconFile struct {
	Name string // имя файла с расширением
	Stem string // имя без расширения
	Path string // полный путь; пустой в preview без файловой системы
}

// IconSet — каталог иконок с ключом по нормализованному stem.
// Порядок вставки сохраняется: он же порядок перебора в scored-поиске.
type IconSet struct {
	keys  []string
	files map[string]IconFile
}

func NewIconSet() *IconSet {
	return &IconSet{files: make(map[string]IconFile)}
}

// Add кладёт файл под ключом. Два файла с одинаковым нормализованным
// ключом в одном листинге — last-write-wins: остаётся последний, позиция
// ключа в порядке перебора не меняется.
func (s *IconSet) Add(key string, f IconFile) {
	if _, ok := s.files[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.files[key] = f
}

func (s *IconSet) Get(key string) (IconFile, bool) {
	f, ok := s.files[key]
	return f, ok
}

// Keys — ключи в порядке вставки.
func (s *IconSet) Keys() []string { return s.keys }

func (s *IconSet) Len() int { return len(s.keys) }

// Match — принятое решение «продукт → файл».
type Match struct {
	Category string   `json:"category"`
	Product  string   `json:"product"`
	File     string   `json:"file"`            // исходное имя файла
	Renamed  string   `json:"renamed"`         // имя после NBSP-нормализации
	Method   string   `json:"method"`          // exact | suffix | scored | override | substring
	Score    *float64 `json:"score,omitempty"` // метрика схожести для scored
}

// ProductRef — продукт, для которого не нашлось файла.
type ProductRef struct {
	Category string `json:"category"`
	Product  string `json:"product"`
}

// SecondPass — итог второго прохода по оставшимся файлам.
type SecondPass struct {
	Moved     int     `json:"moved"`
	Remaining int     `json:"remaining"`
	Matches   []Match `json:"matches"`
}

// Report — полный итог прогона. Отдаётся как JSON в serve-режиме и
// печатается в лог в CLI.
type Report struct {
	RunID          string       `json:"runId,omitempty"`
	Found          int          `json:"found"`
	Categories     int          `json:"categories"`
	Moved          int          `json:"moved"`
	Remaining      int          `json:"remaining"`
	Matches        []Match      `json:"matches"`
	Unmatched      []ProductRef `json:"unmatched"`
	RemainingFiles []string     `json:"remainingFiles"`
	SecondPass     *SecondPass  `json:"secondPass,omitempty"`
	Opts           Options      `json:"opts"`
}

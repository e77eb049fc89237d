package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"icon-organizer/internal/catalog"
	"icon-organizer/internal/config"
	"icon-organizer/internal/fileio"
	"icon-organizer/internal/organize/model"
	"icon-organizer/internal/organize/service"
)

// Preview возвращает http.HandlerFunc для POST /preview.
// Multipart-форма: файл "categories" (.json/.csv/.xls/.xlsx) либо поле
// "language" для встроенной таблицы; поле "files" — имена файлов иконок,
// по одному на строку; опционально "threshold" и "extension". Ответ —
// JSON-отчёт решений первого прохода; файловая система не участвует.
func Preview(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		log := logger
		if reqID != "" {
			log = logger.With().Str("req_id", reqID).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		var cats catalog.CategoryMap
		if file, header, err := r.FormFile("categories"); err == nil {
			defer file.Close()
			rows, err := fileio.ReadCategories(file, header.Filename)
			if err != nil {
				http.Error(w, "failed to read categories: "+err.Error(), http.StatusBadRequest)
				return
			}
			cats = catalog.FromRows(rows)
		} else {
			lang, err := catalog.ParseLanguage(formValue(r, "language", string(catalog.LangZH)))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			cats, err = catalog.Builtin(lang)
			if err != nil {
				log.Error().Err(err).Msg("builtin categories")
				http.Error(w, "internal", http.StatusInternalServerError)
				return
			}
		}

		files := splitLines(r.FormValue("files"))
		if len(files) == 0 {
			http.Error(w, "missing files: one filename per line", http.StatusBadRequest)
			return
		}

		opt := model.Options{
			Extension: formValue(r, "extension", model.DefaultExtension),
			Threshold: toFloat(r.FormValue("threshold"), model.DefaultThreshold),
		}

		rep := service.Preview(cats, files, opt, log)
		rep.RunID = reqID
		if rep.RunID == "" {
			rep.RunID = uuid.NewString()
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("files", rep.Found).
			Int("categories", rep.Categories).
			Int("matched", rep.Moved).
			Dur("elapsed", time.Since(start)).
			Msg("preview done")
	}
}

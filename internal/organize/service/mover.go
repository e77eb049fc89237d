package service

import (
	"fmt"
	"os"
	"path/filepath"

	"icon-organizer/internal/organize/model"
)

// mover изолирует файловые побочные эффекты обоих проходов, чтобы
// dry-run и serve-режим считали ровно те же решения без мутаций.
type mover interface {
	EnsureDir(category string) error
	Exists(f model.IconFile) bool
	DirExists(category string) bool
	Move(f model.IconFile, category, newName string) error
}

type fsMover struct{ root string }

func (m fsMover) EnsureDir(category string) error {
	// существующий каталог — не ошибка
	return os.MkdirAll(filepath.Join(m.root, category), 0o755)
}

func (m fsMover) Exists(f model.IconFile) bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

func (m fsMover) DirExists(category string) bool {
	info, err := os.Stat(filepath.Join(m.root, category))
	return err == nil && info.IsDir()
}

func (m fsMover) Move(f model.IconFile, category, newName string) error {
	dest := filepath.Join(m.root, category, newName)
	if err := os.Rename(f.Path, dest); err != nil {
		return fmt.Errorf("move %s: %w", f.Name, err)
	}
	return nil
}

// nopMover — только решения, никаких побочных эффектов.
type nopMover struct{}

func (nopMover) EnsureDir(string) error                    { return nil }
func (nopMover) Exists(model.IconFile) bool                { return true }
func (nopMover) DirExists(string) bool                     { return false }
func (nopMover) Move(model.IconFile, string, string) error { return nil }

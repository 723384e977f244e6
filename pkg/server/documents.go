package server

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// documents reads markdown files from a file system.
type documents struct {
	fsys fs.FS
}

// list returns the slash-separated paths of all .md files, sorted.
// Hidden files and directories are skipped.
func (d *documents) list() ([]string, error) {
	var paths []string
	err := fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if p != "." && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() && path.Ext(name) == ".md" {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// read returns the content of the document at urlPath. It reports
// fs.ErrNotExist for paths that are not .md files inside the file system.
func (d *documents) read(urlPath string) (string, error) {
	name := strings.TrimPrefix(urlPath, "/")
	if !fs.ValidPath(name) || path.Ext(name) != ".md" {
		return "", fs.ErrNotExist
	}
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return "", fs.ErrNotExist
		}
	}
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

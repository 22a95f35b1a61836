// Package picker holds the fixed extension filters offered when choosing
// files and collects the files of a directory that match one of them.
package picker

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

type Filter struct {
	Label string
	Ext   string // with leading dot
}

// Pattern is the glob form shown next to the file lists, e.g. "*.png".
func (f Filter) Pattern() string { return "*" + f.Ext }

func (f Filter) String() string { return f.Label + " (" + f.Pattern() + ")" }

var Filters = []Filter{
	{"PNG Files", ".png"},
	{"JPEG Files", ".jpeg"},
	{"JPG Files", ".jpg"},
	{"GIF Files", ".gif"},
	{"BMP Files", ".bmp"},
	{"Text Files", ".txt"},
	{"Document Files", ".docx"},
	{"Spreadsheet Files", ".xlsx"},
	{"Python Files", ".py"},
}

// Options returns the String form of every filter, for a select widget.
func Options() []string {
	out := make([]string, len(Filters))
	for i, f := range Filters {
		out[i] = f.String()
	}
	return out
}

// Lookup finds a filter by its String form, its extension ("png" or
// ".png") or its pattern. The first filter is returned when nothing
// matches.
func Lookup(s string) (Filter, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Filters {
		if v == strings.ToLower(f.String()) || v == f.Ext || "."+v == f.Ext || v == f.Pattern() {
			return f, true
		}
	}
	return Filters[0], false
}

// Matches compares extensions case-insensitively.
func (f Filter) Matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), f.Ext)
}

// Collect lists the regular files directly inside dir that match f,
// sorted by path.
func Collect(fs afero.Fs, dir string, f Filter) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.TrimSpace(name) == "" || !f.Matches(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no font file matches.
var ErrNotFound = errors.New("fonts: no matching font")

// Exts are the extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs are the directories, relative to the working directory, searched for UI fonts. They
// cover running from the repo root and from cmd/arplace.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

func isFont(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and removes spaces, dashes and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find returns the slash-separated path of the font in fsys whose path best matches name:
// "Inter", "Inter-Regular" and "inter/inter_regular.ttf" all find Inter/Inter-Regular.ttf.
// Among several matches a "regular" face wins, then the shortest path.
func Find(fsys fs.FS, name string) (string, error) {
	want := normalize(strings.TrimSuffix(name, path.Ext(name)))
	if want == "" {
		return "", ErrNotFound
	}
	best := ""
	score := func(p string) int {
		s := -len(p)
		if strings.Contains(strings.ToLower(p), "regular") {
			s += 1000
		}
		return s
	}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isFont(p) {
			return nil
		}
		if !strings.Contains(normalize(p), want) {
			return nil
		}
		if best == "" || score(p) > score(best) {
			best = p
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if best == "" {
		return "", ErrNotFound
	}
	return best, nil
}

// Locate resolves name to a font file on disk. An existing file path is returned as is;
// otherwise each of dirs (BaseDirs when none are given) is searched with Find.
func Locate(name string, dirs ...string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() && isFont(name) {
		return name, nil
	}
	if len(dirs) == 0 {
		dirs = BaseDirs()
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		rel, err := Find(os.DirFS(dir), name)
		if err == nil {
			return filepath.Join(dir, filepath.FromSlash(rel)), nil
		}
	}
	return "", ErrNotFound
}

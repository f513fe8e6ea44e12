package nummi

import (
	"io/fs"
	"iter"
	"path"
)

// Walk returns every file under root, descending into all subdirectories.
//
// The order is unspecified. Symbolic links are returned as files, they are
// never followed. If a directory cannot be listed, its error is yielded and the
// walk stops.
func Walk(fsys fs.FS, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := fs.Stat(fsys, root)
		if err != nil {
			yield("", err)
			return
		}
		if !info.IsDir() {
			yield(root, nil)
			return
		}
		// stack of directories still to be listed.
		stack := []string{root}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			entries, err := fs.ReadDir(fsys, dir)
			if err != nil {
				yield("", err)
				return
			}
			for _, e := range entries {
				name := path.Join(dir, e.Name())
				if e.IsDir() {
					stack = append(stack, name)
					continue
				}
				if !yield(name, nil) {
					return
				}
			}
		}
	}
}

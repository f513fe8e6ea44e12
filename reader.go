package nummi

import (
	"bufio"
	"io"
	"io/fs"
	"iter"
	"path"
	"slices"
	"strings"
)

// Ext is the extension of ledger files, other files in the ledger directory are ignored.
const Ext = ".txt"

// maxLineSize bounds the length of a ledger line.
const maxLineSize = 1 << 20

// LedgerFiles returns the ledger files under root, sorted by name in descending order.
//
// Ledgers are usually organized as one file per period, named so that the most
// recent period comes first in that order.
func LedgerFiles(fsys fs.FS, root string) ([]string, error) {
	var files []string
	for name, err := range Walk(fsys, root) {
		if err != nil {
			return nil, err
		}
		if path.Ext(name) == Ext {
			files = append(files, name)
		}
	}
	slices.Sort(files)
	slices.Reverse(files)
	return files, nil
}

// Scan returns the entries read from r, in order.
//
// Reading stops at the first blank line: what follows is a trailer for notes
// and is never parsed. The first error is yielded as a *ReadError and ends the
// sequence.
func Scan(r io.Reader) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		line := 0
		for scanner.Scan() {
			line++
			txt := strings.TrimSuffix(scanner.Text(), "\r")
			if txt == "" {
				return
			}
			e, err := ParseEntry(txt)
			if err != nil {
				yield(Entry{}, &ReadError{Line: line, Err: err})
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Entry{}, &ReadError{Line: line + 1, Err: err})
		}
	}
}

// Entries returns the entries of all ledger files under root.
//
// Files are read in the LedgerFiles order, each one is opened only when the
// sequence reaches it. The first error ends the sequence: it is either an
// error listing or opening files, or a *ReadError locating the bad line.
func Entries(fsys fs.FS, root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		files, err := LedgerFiles(fsys, root)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		for _, name := range files {
			if !scanFile(fsys, name, yield) {
				return
			}
		}
	}
}

// scanFile yields the entries of name, and returns false if the iteration must stop.
func scanFile(fsys fs.FS, name string, yield func(Entry, error) bool) bool {
	f, err := fsys.Open(name)
	if err != nil {
		yield(Entry{}, err)
		return false
	}
	defer f.Close()

	for e, err := range Scan(f) {
		if err != nil {
			if re, ok := err.(*ReadError); ok {
				re.Path = name
			}
			yield(Entry{}, err)
			return false
		}
		if !yield(e, nil) {
			return false
		}
	}
	return true
}

// ReadAll returns all the entries under root, in the Entries order.
// It stops at the first error.
func ReadAll(fsys fs.FS, root string) ([]Entry, error) {
	var entries []Entry
	for e, err := range Entries(fsys, root) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Validate reads the ledger under root and returns the first error found.
// Nothing is read past the first error.
func Validate(fsys fs.FS, root string) error {
	for _, err := range Entries(fsys, root) {
		if err != nil {
			return err
		}
	}
	return nil
}

// SortChronological sorts entries by date, keeping the file order of entries on the same day.
//
// Entries are read newest file first: sorting them is required before
// computing a MonthlySeries.
func SortChronological(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int { return a.Date.Compare(b.Date) })
}

// All returns a sequence over entries, suitable for MonthlySeries.
func All(entries []Entry) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

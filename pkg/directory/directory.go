// Package directory keeps the set of identifiers known to a renderer in an FST.
package directory

import (
	"bufio"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/vellum"
	"golang.org/x/text/cases"
)

// ErrClosed is returned by operations on a closed directory.
var ErrClosed = errors.New("directory: closed")

// Directory holds known mention identifiers in an FST for fast lookups.
type Directory struct {
	fst     *vellum.FST
	ids     map[string]struct{} // Source of truth for modifications
	fstPath string
	txtPath string
	mu      sync.RWMutex
}

// fold maps an identifier to its lookup key. Token matching ignores case,
// so the directory does too.
func fold(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

// New loads identifiers from txtPath into an FST stored next to it.
// If the FST doesn't exist, it is built from the text file.
func New(txtPath string) (*Directory, error) {
	d := newDirectory(txtPath)

	if err := d.loadTextFile(); err != nil {
		return nil, err
	}

	if err := d.loadOrBuildFST(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewFromList creates a directory at txtPath holding ids, replacing any
// existing files.
func NewFromList(txtPath string, ids []string) (*Directory, error) {
	d := newDirectory(txtPath)
	for _, id := range ids {
		if key := fold(id); key != "" {
			d.ids[key] = struct{}{}
		}
	}

	if err := d.rebuildFST(); err != nil {
		return nil, err
	}
	return d, nil
}

func newDirectory(txtPath string) *Directory {
	return &Directory{
		ids:     make(map[string]struct{}),
		fstPath: strings.TrimSuffix(txtPath, ".txt") + ".fst",
		txtPath: txtPath,
	}
}

// loadTextFile reads identifiers from the source text file.
func (d *Directory) loadTextFile() error {
	file, err := os.Open(d.txtPath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.ids[fold(line)] = struct{}{}
	}
	return scanner.Err()
}

// loadOrBuildFST loads an existing FST or builds a new one.
func (d *Directory) loadOrBuildFST() error {
	if fst, err := vellum.Open(d.fstPath); err == nil {
		if fst.Len() == len(d.ids) {
			d.fst = fst
			return nil
		}
		// Stale: the text file was edited by hand.
		fst.Close()
	}

	return d.rebuildFST()
}

// Contains checks if an identifier is known (case-insensitive).
func (d *Directory) Contains(id string) bool {
	key := fold(id)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.fst == nil || key == "" {
		return false
	}
	_, exists, _ := d.fst.Get([]byte(key))
	return exists
}

// Add adds identifiers and rebuilds the FST.
func (d *Directory) Add(ids ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fst == nil {
		return ErrClosed
	}
	for _, id := range ids {
		if key := fold(id); key != "" {
			d.ids[key] = struct{}{}
		}
	}
	return d.rebuildFST()
}

// Remove removes identifiers and rebuilds the FST.
func (d *Directory) Remove(ids ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fst == nil {
		return ErrClosed
	}
	for _, id := range ids {
		delete(d.ids, fold(id))
	}
	return d.rebuildFST()
}

// Rebuild rebuilds the FST from the current set and saves to disk.
func (d *Directory) Rebuild() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fst == nil {
		return ErrClosed
	}
	return d.rebuildFST()
}

// sorted returns the identifiers in FST insertion order.
func (d *Directory) sorted() []string {
	ids := make([]string, 0, len(d.ids))
	for id := range d.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// rebuildFST rebuilds the FST without locking (caller must hold lock).
func (d *Directory) rebuildFST() error {
	if d.fst != nil {
		d.fst.Close()
		d.fst = nil
	}

	ids := d.sorted()

	fstFile, err := os.Create(d.fstPath)
	if err != nil {
		return err
	}

	builder, err := vellum.New(fstFile, nil)
	if err != nil {
		fstFile.Close()
		return err
	}

	for _, id := range ids {
		if err := builder.Insert([]byte(id), 0); err != nil {
			builder.Close()
			fstFile.Close()
			return err
		}
	}

	if err := builder.Close(); err != nil {
		fstFile.Close()
		return err
	}
	fstFile.Close()

	fst, err := vellum.Open(d.fstPath)
	if err != nil {
		return err
	}
	d.fst = fst

	return d.saveTextFile(ids)
}

// saveTextFile writes the current set back to the text file.
func (d *Directory) saveTextFile(ids []string) error {
	file, err := os.Create(d.txtPath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, id := range ids {
		if _, err := w.WriteString(id + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Close releases FST resources.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fst != nil {
		err := d.fst.Close()
		d.fst = nil
		return err
	}
	return nil
}

// Count returns the number of known identifiers.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.ids)
}

// Path returns the source text file path.
func (d *Directory) Path() string {
	return d.txtPath
}

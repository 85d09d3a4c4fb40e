package store

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/pkg/metrics"
)

// File layout and permission constants.
const (
	namesExt  = ".txt"
	ratingExt = ".tsv"

	filePermission = 0o644
	dirPermission  = 0o755

	ratingFieldCount = 3
)

// FileStore implements Store on the local filesystem. Each list owns two
// files in the data directory: <list>.txt with one item name per line
// (authoritative membership) and <list>.tsv with one
// name<TAB>rating<TAB>comparisons row per item. Saves are atomic:
// write-new-then-rename, so a concurrent reader never observes a partial
// file.
type FileStore struct {
	dir           string
	initialRating float64
}

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithInitialRating sets the rating assigned to items that have no stored
// row yet. Non-finite values are ignored.
func WithInitialRating(r float64) Option {
	return func(s *FileStore) {
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			s.initialRating = r
		}
	}
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		dir:           dir,
		initialRating: 1500.0,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return s, nil
}

// Names implements Store.Names.
func (s *FileStore) Names(ctx context.Context, listID string) ([]string, error) {
	if err := validateListID(listID); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, listID+namesExt))
	if err != nil {
		if os.IsNotExist(err) {
			metrics.RecordErrorByComponent("store", "no_list")
			return nil, fmt.Errorf("%w: %s", ErrNoList, listID)
		}
		return nil, fmt.Errorf("read list %s: %w", listID, err)
	}
	return splitNames(string(raw)), nil
}

// Load implements Store.Load.
func (s *FileStore) Load(ctx context.Context, listID string) (model.RatingList, error) {
	names, err := s.Names(ctx, listID)
	if err != nil {
		return nil, err
	}
	list := model.NewRatingList(names, s.initialRating)
	metrics.UpdateListItems(listID, len(list))

	raw, err := os.ReadFile(filepath.Join(s.dir, listID+ratingExt))
	if err != nil {
		if os.IsNotExist(err) {
			return list, fmt.Errorf("%w: %s", ErrNotFound, listID)
		}
		return nil, fmt.Errorf("read ratings %s: %w", listID, err)
	}

	// Stored rows only override items the source list still names;
	// anything else is dropped.
	for lineNo, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		item, err := parseRow(line)
		if err != nil {
			metrics.RecordErrorByComponent("store", "corrupt_row")
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrCorruptData, listID, lineNo+1, err)
		}
		if _, ok := list[item.Name]; ok {
			list[item.Name] = item
		}
	}
	return list, nil
}

// Save implements Store.Save.
func (s *FileStore) Save(ctx context.Context, listID string, list model.RatingList) error {
	start := time.Now()
	defer func() {
		metrics.RecordSaveLatency(float64(time.Since(start).Microseconds()) / 1e3)
	}()

	if err := validateListID(listID); err != nil {
		return err
	}

	names := make([]string, 0, len(list))
	for name := range list {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		item := list[name]
		b.WriteString(name)
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(item.Rating, 'f', -1, 64))
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(item.Comparisons))
		b.WriteByte('\n')
	}

	path := filepath.Join(s.dir, listID+ratingExt)
	if err := atomicWrite(path, []byte(b.String())); err != nil {
		metrics.RecordErrorByComponent("store", "save_failed")
		return fmt.Errorf("save ratings %s: %w", listID, err)
	}
	metrics.UpdateListItems(listID, len(list))
	return nil
}

// CreateList implements Store.CreateList.
func (s *FileStore) CreateList(ctx context.Context, listID string, names []string) error {
	if err := validateListID(listID); err != nil {
		return err
	}
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsRune(name, '\t') {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyList, listID)
	}

	path := filepath.Join(s.dir, listID+namesExt)
	if err := atomicWrite(path, []byte(strings.Join(cleaned, "\n")+"\n")); err != nil {
		metrics.RecordErrorByComponent("store", "create_failed")
		return fmt.Errorf("create list %s: %w", listID, err)
	}
	return nil
}

// Lists implements Store.Lists.
func (s *FileStore) Lists(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), namesExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), namesExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// atomicWrite writes data to a temporary sibling and renames it over path.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePermission); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// parseRow decodes one name<TAB>rating<TAB>comparisons row.
func parseRow(line string) (model.Item, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != ratingFieldCount {
		return model.Item{}, fmt.Errorf("expected %d fields, got %d", ratingFieldCount, len(fields))
	}
	rating, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Item{}, fmt.Errorf("bad rating: %w", err)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return model.Item{}, fmt.Errorf("non-finite rating %q", fields[1])
	}
	comparisons, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Item{}, fmt.Errorf("bad comparison count: %w", err)
	}
	if comparisons < 0 {
		return model.Item{}, fmt.Errorf("negative comparison count %d", comparisons)
	}
	return model.Item{Name: fields[0], Rating: rating, Comparisons: comparisons}, nil
}

// splitNames parses the newline-separated name file, dropping blanks.
func splitNames(raw string) []string {
	lines := strings.Split(raw, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// validateListID rejects ids that would escape the data directory or
// collide with the store's own file naming.
func validateListID(listID string) error {
	if listID == "" || listID != filepath.Base(listID) ||
		strings.HasPrefix(listID, ".") || strings.ContainsAny(listID, "\t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidListID, listID)
	}
	return nil
}

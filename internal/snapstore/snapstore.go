// Package snapstore persists analysis snapshots as flat JSON files, one file
// per generation, named so freshness queries need only the directory listing.
package snapstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// Snapshot file names follow analysis_<scope-date>_<generated-at>.json.
const (
	filePrefix     = "analysis_"
	fileSuffix     = ".json"
	snapTimeFormat = "20060102T150405.000000000Z0700"
)

// Store is a flat-file snapshot store rooted at a base directory, with one
// subdirectory per namespace. Writes never overwrite: each generation gets a
// unique timestamped name, and retention pruning keeps the newest files.
type Store struct {
	baseDir   string
	retention int
}

var _ contract.SnapshotStore = (*Store)(nil)

// NewStore creates a snapshot store. The base directory is created lazily on
// first write.
func NewStore(baseDir string, retention int) *Store {
	return &Store{baseDir: baseDir, retention: retention}
}

// Write persists one snapshot and prunes old files beyond the retention
// limit. It returns the path of the written file.
func (s *Store) Write(namespace string, snap *schema.Snapshot) (string, error) {
	dir := filepath.Join(s.baseDir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := filePrefix + snap.ScopeDate + "_" + snap.GeneratedAt.UTC().Format(snapTimeFormat) + fileSuffix
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	// Write to a temp file first so readers never see a partial snapshot.
	tmp, err := os.CreateTemp(dir, name+".tmp")
	if err != nil {
		return "", fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("finalize snapshot: %w", err)
	}

	if err := s.prune(namespace); err != nil {
		contract.LogWarn("pruning snapshots", err)
	}
	return path, nil
}

// LatestForDate returns the most recent snapshot whose scope date equals
// scopeDate, or ErrNoData when none exists.
func (s *Store) LatestForDate(namespace, scopeDate string) (*schema.Snapshot, error) {
	infos, err := s.listNamespace(namespace)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ScopeDate != scopeDate {
			continue
		}
		snap, err := readSnapshot(info.Path)
		if err != nil {
			// A corrupt file should not mask older valid snapshots.
			contract.LogWarn("reading snapshot "+info.Path, err)
			continue
		}
		return snap, nil
	}
	return nil, fmt.Errorf("%w: no snapshot for %s on %s", contract.ErrNoData, namespace, scopeDate)
}

// List returns stored snapshots newest first. An empty namespace lists every
// namespace under the base directory.
func (s *Store) List(namespace string) ([]schema.SnapshotInfo, error) {
	if namespace != "" {
		return s.listNamespace(namespace)
	}

	entries, err := os.ReadDir(s.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot base dir: %w", err)
	}

	var all []schema.SnapshotInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		infos, err := s.listNamespace(e.Name())
		if err != nil {
			return nil, err
		}
		all = append(all, infos...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].GeneratedAt.After(all[j].GeneratedAt) })
	return all, nil
}

// Clear removes all snapshots for a namespace; an empty namespace clears the
// whole store.
func (s *Store) Clear(namespace string) error {
	target := s.baseDir
	if namespace != "" {
		target = filepath.Join(s.baseDir, namespace)
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

// listNamespace returns the parsed snapshot files of one namespace, newest
// first. Files that do not parse as snapshot names are ignored.
func (s *Store) listNamespace(namespace string) ([]schema.SnapshotInfo, error) {
	dir := filepath.Join(s.baseDir, namespace)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir %s: %w", dir, err)
	}

	var infos []schema.SnapshotInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		scopeDate, generatedAt, ok := parseFileName(e.Name())
		if !ok {
			continue
		}
		info := schema.SnapshotInfo{
			Namespace:    namespace,
			ScopeDate:    scopeDate,
			GeneratedAt:  generatedAt,
			IsHistorical: scopeDate < contract.DateOf(time.Now()),
			Path:         filepath.Join(dir, e.Name()),
		}
		if fi, err := e.Info(); err == nil {
			info.SizeBytes = fi.Size()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].GeneratedAt.After(infos[j].GeneratedAt) })
	return infos, nil
}

// prune removes the oldest files of a namespace beyond the retention limit.
func (s *Store) prune(namespace string) error {
	if s.retention <= 0 {
		return nil
	}
	infos, err := s.listNamespace(namespace)
	if err != nil {
		return err
	}
	for _, info := range infos[min(s.retention, len(infos)):] {
		if err := os.Remove(info.Path); err != nil {
			return err
		}
	}
	return nil
}

func readSnapshot(path string) (*schema.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap schema.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// parseFileName extracts the scope date and generation time from a snapshot
// file name of the form analysis_<scope-date>_<generated-at>.json.
func parseFileName(name string) (string, time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", time.Time{}, false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	parts := strings.SplitN(core, "_", 2)
	if len(parts) != 2 {
		return "", time.Time{}, false
	}
	if _, err := time.Parse(contract.DateFormat, parts[0]); err != nil {
		return "", time.Time{}, false
	}
	generatedAt, err := time.Parse(snapTimeFormat, parts[1])
	if err != nil {
		return "", time.Time{}, false
	}
	return parts[0], generatedAt, true
}

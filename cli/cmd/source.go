package cmd

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ardnew/mung"

	"github.com/ardnew/miniml/log"
	"github.com/ardnew/miniml/pkg"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// SearchPath returns the directories searched for relative source file
// names: dirs first, then the entries of the MINIML_PATH environment
// variable. Empty and repeated entries are removed.
func SearchPath(dirs ...string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(pkg.EnvVar("path"))),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var (
		path []string
		seen = make(map[string]struct{})
	)

	for _, dir := range filepath.SplitList(joined) {
		if strings.TrimSpace(dir) == "" {
			continue
		}

		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}
		path = append(path, dir)
	}

	return path
}

// resolveSource returns the path of the named source file. Absolute names
// and names found relative to the working directory are used as given;
// other names are looked up in each directory of dirs in order.
func resolveSource(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", ErrOpenSource.
		With(
			slog.String("file", name),
			slog.String("path", strings.Join(dirs, string(os.PathListSeparator))),
		).
		Wrap(fs.ErrNotExist)
}

// source is an opened program text.
type source struct {
	io.ReadCloser

	name string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the named program sources in order. With no names, the
// only source is standard input. Every "-" is replaced with a single stdin
// source at its first position, and files reached more than once (through
// symlinks or different relative paths) are opened only once.
//
// On error, sources already opened are closed.
func openSources(ctx context.Context, names []string) (srcs []source, err error) {
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	var (
		dirs     = searchPathFrom(ctx)
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	for _, name := range names {
		if name == stdinSource {
			if !hasStdin {
				hasStdin = true
				srcs = append(srcs, source{
					ReadCloser: io.NopCloser(stdinFrom(ctx)),
					name:       stdinSource,
				})
			}

			continue
		}

		path, err := resolveSource(name, dirs)
		if err != nil {
			return srcs, err
		}

		file, dup, err := openUnique(path, seen)
		if err != nil {
			return srcs, ErrOpenSource.With(slog.String("file", name)).Wrap(err)
		}

		if dup {
			log.DebugContext(ctx, "skip duplicate source",
				slog.String("file", name))

			continue
		}

		if filepath.Ext(path) != pkg.SourceExt {
			log.WarnContext(ctx, "unexpected source file extension",
				slog.String("file", name),
				slog.String("want", pkg.SourceExt))
		}

		srcs = append(srcs, source{ReadCloser: file, name: name})
	}

	return srcs, nil
}

// openUnique opens the file at path unless its device and inode are
// already in seen, in which case dup is true.
func openUnique(path string, seen map[fileKey]struct{}) (file *os.File, dup bool, err error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if info.IsDir() {
		return nil, false, syscall.EISDIR
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, true, nil
		}

		seen[key] = struct{}{}
	}

	file, err = os.Open(resolved)

	return file, false, err
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

func closeSources(srcs []source) {
	for _, src := range srcs {
		_ = src.Close()
	}
}

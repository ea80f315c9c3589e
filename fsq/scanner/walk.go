package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	internal "github.com/ZanzyTHEbar/fsquery/fsq"
	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sourcegraph/conc/pool"
)

// ignoreRule is a compiled ignore file and the directory it applies to.
type ignoreRule struct {
	base    string
	matcher *ignore.GitIgnore
}

// dirTask is one directory waiting to be read.
type dirTask struct {
	path    string
	depth   int // depth of the entries inside this directory
	ignores []ignoreRule
}

// walk reads the roots level by level. Each level's directories are read
// concurrently on a bounded pool; the children found form the next level.
func (s *Scanner) walk(ctx context.Context, roots []string, p *plan) error {
	var level []dirTask
	for _, root := range roots {
		task, err := s.rootTask(p, root)
		if err != nil {
			return err
		}
		if task != nil {
			level = append(level, *task)
		}
	}

	workers := s.cfg.EffectiveWorkers()
	for len(level) > 0 {
		var (
			next   []dirTask
			nextMu sync.Mutex
		)

		levelPool := pool.New().
			WithMaxGoroutines(workers).
			WithContext(ctx).
			WithCancelOnError().
			WithFirstError()

		for _, task := range level {
			levelPool.Go(func(ctx context.Context) error {
				children, err := s.processDir(ctx, p, task)
				if err != nil {
					return err
				}
				if len(children) > 0 {
					nextMu.Lock()
					next = append(next, children...)
					nextMu.Unlock()
				}
				return nil
			})
		}

		if err := levelPool.Wait(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		level = next
	}
	return nil
}

// rootTask turns a command line path into a directory task. A root that is
// not a directory is visited as a single row.
func (s *Scanner) rootTask(p *plan, root string) (*dirTask, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, s.visitEntry(p, fileinfo.NewEntry(root, nil))
	}
	if !s.markVisited(p, root) {
		return nil, nil
	}
	task := &dirTask{path: root, depth: 1}
	if s.cfg.Gitignore {
		task.ignores = loadIgnore(p, root, nil)
	}
	return task, nil
}

// processDir visits every entry of one directory and returns the
// subdirectories to descend into.
func (s *Scanner) processDir(ctx context.Context, p *plan, task dirTask) ([]dirTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(task.path)
	if err != nil {
		atomic.AddInt64(&p.stats.ErrorsFound, 1)
		p.logger.Warn().Err(err).Str("path", task.path).Msg("failed to read directory")
		return nil, nil
	}
	atomic.AddInt64(&p.stats.DirsProcessed, 1)

	descend := s.cfg.MaxDepth == -1 || task.depth <= s.cfg.MaxDepth
	var children []dirTask

	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := d.Name()
		childPath := filepath.Join(task.path, name)

		if !s.cfg.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		if ignored(task.ignores, childPath, d.IsDir()) {
			p.logger.Debug().Str("path", childPath).Msg("ignored")
			continue
		}

		entry := fileinfo.NewEntry(childPath, d)
		if err := s.visitEntry(p, entry); err != nil {
			return nil, err
		}

		if !descend {
			continue
		}
		if dir, ok := s.descendInto(p, childPath, d); ok {
			child := dirTask{path: dir, depth: task.depth + 1, ignores: task.ignores}
			if s.cfg.Gitignore {
				child.ignores = loadIgnore(p, childPath, task.ignores)
			}
			children = append(children, child)
		}
	}
	return children, nil
}

// visitEntry evaluates an on-disk entry and, for zip files when archives
// are enabled, each of its members.
func (s *Scanner) visitEntry(p *plan, entry *fileinfo.Entry) error {
	logger := p.logger.With().Str("path", entry.Path).Logger()
	if err := s.visit(p, fileinfo.NewRecord(entry, nil, logger)); err != nil {
		return err
	}
	if s.cfg.Archives && isZip(entry) {
		return s.visitArchive(p, entry.Path)
	}
	return nil
}

// descendInto reports whether d is a directory to read next, following
// directory symlinks when configured. Each real directory is read once.
func (s *Scanner) descendInto(p *plan, path string, d fs.DirEntry) (string, bool) {
	switch {
	case d.IsDir():
	case d.Type()&fs.ModeSymlink != 0 && s.cfg.FollowSymlinks:
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			return "", false
		}
	default:
		return "", false
	}
	if !s.markVisited(p, path) {
		p.logger.Debug().Str("path", path).Msg("directory already visited")
		return "", false
	}
	return path, true
}

// markVisited records the real path of dir and reports whether it was new.
func (s *Scanner) markVisited(p *plan, dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	_, seen := p.visited.LoadOrStore(resolved, struct{}{})
	return !seen
}

// loadIgnore appends the ignore file of dir, if any, to the inherited rules.
func loadIgnore(p *plan, dir string, inherited []ignoreRule) []ignoreRule {
	path := filepath.Join(dir, internal.DefaultIgnoreFile)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Debug().Err(err).Str("path", path).Msg("error checking for ignore file")
		}
		return inherited
	}
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		p.logger.Warn().Err(err).Str("path", path).Msg("error reading ignore file")
		return inherited
	}
	rules := make([]ignoreRule, len(inherited), len(inherited)+1)
	copy(rules, inherited)
	return append(rules, ignoreRule{base: dir, matcher: matcher})
}

func ignored(rules []ignoreRule, path string, isDir bool) bool {
	for _, r := range rules {
		rel, err := filepath.Rel(r.base, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if r.matcher.MatchesPath(rel) || (isDir && r.matcher.MatchesPath(rel+"/")) {
			return true
		}
	}
	return false
}

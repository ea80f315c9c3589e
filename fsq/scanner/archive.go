package scanner

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"

	"github.com/klauspost/compress/zip"
)

func isZip(entry *fileinfo.Entry) bool {
	if !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
		return false
	}
	if entry.DirEntry != nil {
		return entry.DirEntry.Type().IsRegular()
	}
	return true
}

// visitArchive evaluates every member of the zip archive at archivePath as
// a row with a pre-extracted record. Unreadable archives are skipped.
func (s *Scanner) visitArchive(p *plan, archivePath string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		atomic.AddInt64(&p.stats.ErrorsFound, 1)
		p.logger.Debug().Err(err).Str("path", archivePath).Msg("failed to open archive")
		return nil
	}
	defer r.Close()
	atomic.AddInt64(&p.stats.ArchivesOpened, 1)

	for _, f := range r.File {
		info := memberInfo(archivePath, f)
		logger := p.logger.With().Str("path", info.Path).Logger()
		if err := s.visit(p, fileinfo.NewRecord(nil, info, logger)); err != nil {
			return err
		}
	}
	return nil
}

func memberInfo(archivePath string, f *zip.File) *fileinfo.Info {
	name := strings.TrimSuffix(f.Name, "/")
	mode := f.Mode()
	isDir := mode.IsDir() || strings.HasSuffix(f.Name, "/")
	return &fileinfo.Info{
		Name:     path.Base(name),
		Path:     filepath.Join(archivePath, filepath.FromSlash(name)),
		Size:     f.UncompressedSize64,
		Mode:     mode &^ fs.ModeDir,
		Modified: f.Modified,
		IsDir:    isDir,
	}
}

package fileinfo

import (
	"path/filepath"
	"strings"
)

// Category is a coarse file type derived from the extension.
type Category string

const (
	CategoryNone    Category = ""
	CategoryArchive Category = "archive"
	CategoryAudio   Category = "audio"
	CategoryBook    Category = "book"
	CategoryDoc     Category = "doc"
	CategoryImage   Category = "image"
	CategorySource  Category = "source"
	CategoryVideo   Category = "video"
)

var extCategories = map[string]Category{}

func init() {
	register := func(c Category, exts ...string) {
		for _, ext := range exts {
			extCategories[ext] = c
		}
	}
	register(CategoryArchive, "7z", "bz2", "bzip2", "gz", "gzip", "lz", "lzma", "rar", "tar", "tgz", "xz", "z", "zip", "zst", "cab", "deb", "rpm", "jar", "apk", "iso")
	register(CategoryAudio, "aac", "aiff", "amr", "flac", "m4a", "mp3", "oga", "ogg", "opus", "wav", "wma", "ape", "mid", "midi")
	register(CategoryBook, "azw", "azw3", "cbr", "cbz", "djvu", "epub", "fb2", "mobi", "pdf")
	register(CategoryDoc, "accdb", "doc", "docm", "docx", "dot", "dotx", "md", "odp", "ods", "odt", "pps", "ppt", "pptx", "rtf", "txt", "xls", "xlsm", "xlsx", "csv", "tex")
	register(CategoryImage, "bmp", "gif", "heic", "heif", "ico", "jpeg", "jpg", "png", "psd", "svg", "tif", "tiff", "webp", "avif", "raw", "cr2", "nef", "dng")
	register(CategorySource, "asm", "bas", "c", "cc", "ceylon", "clj", "coffee", "cpp", "cs", "css", "d", "dart", "elm", "erl", "go", "groovy", "h", "hh", "hpp", "html", "java", "js", "jsx", "kt", "lisp", "lua", "m", "php", "pl", "py", "rb", "rs", "scala", "scss", "sh", "sql", "swift", "ts", "tsx", "vb", "vue", "zig")
	register(CategoryVideo, "3gp", "avi", "flv", "m4p", "m4v", "mkv", "mov", "mp4", "mpeg", "mpg", "ogv", "webm", "wmv")
}

// CategoryOf classifies name by its extension, ignoring case.
func CategoryOf(name string) Category {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return CategoryNone
	}
	return extCategories[ext[1:]]
}

package filesystem

import (
	"os"
	"path/filepath"
	"time"
)

func CreateDirectoryIfNotExists(path string) error {
	return os.MkdirAll(path, 0777)
}

func FileModifiedTime(path string) (mod time.Time, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return
	}

	mod = fi.ModTime()

	return
}

// OutputPath maps a source file to a file in outputDirectory with the
// extension replaced by ext.
func OutputPath(outputDirectory, source, ext string) string {
	base := filepath.Base(source)
	return filepath.Join(outputDirectory, base[:len(base)-len(filepath.Ext(base))]+ext)
}

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"
	"golang.org/x/text/encoding"
)

// Source is a single document: either regular file or file inside zip
// archive ("themes/pack.zip/theme/theme.json").
type Source struct {
	Path    string // as specified
	Archive string // archive file, empty for regular files
	Name    string // slash separated path inside archive or base file name
}

// Stem returns base name of the document without extension.
func (s Source) Stem() string {
	base := path.Base(filepath.ToSlash(s.Name))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Ext returns document extension.
func (s Source) Ext() string {
	return path.Ext(s.Name)
}

func (s Source) String() string {
	if len(s.Archive) == 0 {
		return s.Path
	}
	return s.Archive + "[" + s.Name + "]"
}

var errFound = errors.New("found")

// IsArchive checks if file looks like a zip archive.
func IsArchive(name string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// 262 bytes is enough for any of the supported signatures
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// Locate finds longest existing prefix of src. When it is a regular file and
// there is nothing left src is a plain document, when it is an archive the
// remainder is path of the document inside it.
func Locate(src string) (Source, error) {
	for head := src; len(head) != 0; head, _ = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}
		if !fi.Mode().IsRegular() {
			return Source{}, fmt.Errorf("input source is not a file (%s)", head)
		}

		tail := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
		if len(tail) == 0 {
			return Source{Path: src, Name: filepath.Base(head)}, nil
		}

		isArc, err := IsArchive(head)
		if err != nil {
			return Source{}, fmt.Errorf("unable to check archive type: %w", err)
		}
		if !isArc {
			return Source{}, fmt.Errorf("input source was not found (%s) => (%s)", head, tail)
		}
		return Source{Path: src, Archive: head, Name: filepath.ToSlash(tail)}, nil
	}
	return Source{}, fmt.Errorf("input source was not found (%s)", src)
}

// Open returns document content. Archive entries are read into memory. Since
// zip "standard" does not define file name encoding non UTF-8 entry names are
// decoded with cp when it is not nil.
func (s Source) Open(cp encoding.Encoding) (io.ReadCloser, error) {
	if len(s.Archive) == 0 {
		return os.Open(s.Path)
	}

	var data []byte
	err := Walk(s.Archive, "", func(_ string, f *fixzip.File) error {
		if EntryName(f, cp) != s.Name {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		if data, err = io.ReadAll(rc); err != nil {
			return err
		}
		return errFound
	})
	switch {
	case errors.Is(err, errFound):
		return io.NopCloser(bytes.NewReader(data)), nil
	case err != nil:
		return nil, fmt.Errorf("unable to read archive (%s): %w", s.Archive, err)
	}
	return nil, fmt.Errorf("file was not found in archive (%s): %s", s.Archive, s.Name)
}

// EntryName returns archive entry name converting it to UTF-8 when necessary.
func EntryName(f *fixzip.File, cp encoding.Encoding) string {
	name := f.FileHeader.Name
	if cp == nil || !f.FileHeader.NonUTF8 {
		return name
	}
	if n, err := cp.NewDecoder().String(name); err == nil {
		return n
	}
	return name
}

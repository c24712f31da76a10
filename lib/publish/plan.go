package publish

import (
	"fmt"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Upload is one planned object write.
type Upload struct {
	// Path is the local file.
	Path string
	// Key is the slash-separated object key relative to the site root.
	Key          string
	ContentType  string
	CacheControl string
	Size         int64
}

// Plan walks dir and returns the uploads sorted by key. Files and directories
// whose name starts with "." are skipped.
func Plan(dir string, rules Rules) ([]Upload, error) {
	var uploads []Upload
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		contentType, err := ContentType(p)
		if err != nil {
			return err
		}
		uploads = append(uploads, Upload{
			Path:         p,
			Key:          key,
			ContentType:  contentType,
			CacheControl: rules.CacheControlFor(key),
			Size:         info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("planning uploads from %s: %w", dir, err)
	}

	sort.Slice(uploads, func(i, j int) bool { return uploads[i].Key < uploads[j].Key })
	return uploads, nil
}

// ContentType resolves the type from the extension, sniffing the content
// when the extension is unknown.
func ContentType(file string) (string, error) {
	if t := mime.TypeByExtension(path.Ext(file)); t != "" {
		return t, nil
	}
	m, err := mimetype.DetectFile(file)
	if err != nil {
		return "", fmt.Errorf("detecting content type of %s: %w", file, err)
	}
	return m.String(), nil
}

// Package attachment copies invoice attachments into a per-company folder
// tree and, on the cloud backend, mirrors them into object storage.
package attachment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes attachments under {root}/{company}/{year}/{month},
// named {invoiceNumber}_{rnc}.{ext}. A name collision is broken with a
// timestamp suffix instead of overwriting the existing file.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save copies content into the folder tree and returns the stored path.
func (s *LocalStore) Save(companyID string, date time.Time, invoiceNumber, rnc, originalName string, content io.Reader) (string, error) {
	dir := filepath.Join(s.root, companyID, fmt.Sprintf("%04d", date.Year()), fmt.Sprintf("%02d", int(date.Month())))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := baseName(invoiceNumber, rnc, originalName)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, collisionName(invoiceNumber, rnc, originalName))
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Key returns the object-storage key for the same attachment, mirroring the
// local layout with forward slashes.
func (s *LocalStore) Key(companyID string, date time.Time, invoiceNumber, rnc, originalName string) string {
	return strings.Join([]string{
		companyID,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", int(date.Month())),
		baseName(invoiceNumber, rnc, originalName),
	}, "/")
}

func baseName(invoiceNumber, rnc, originalName string) string {
	return sanitize(invoiceNumber) + "_" + sanitize(rnc) + ext(originalName)
}

func collisionName(invoiceNumber, rnc, originalName string) string {
	stamp := time.Now().UTC().Format("20060102150405")
	return sanitize(invoiceNumber) + "_" + sanitize(rnc) + "_" + stamp + ext(originalName)
}

func ext(name string) string {
	e := strings.ToLower(filepath.Ext(name))
	if e == "" {
		return ".bin"
	}
	return e
}

func sanitize(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "-", "..", "-")
	return replacer.Replace(strings.TrimSpace(s))
}

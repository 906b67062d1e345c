// Package ingest turns order export files into raw records and decides which are groceries
package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
	"grocer/internal/services/groceryimport/domain"
)

var zipMagic = []byte("PK\x03\x04")

// Extractor opens export files; it satisfies domain.Opener
type Extractor struct{}

// NewExtractor constructs the file opener
func NewExtractor() domain.Opener { return Extractor{} }

// Open implements domain.Opener
func (Extractor) Open(p string) (domain.Source, error) { return Open(p) }

// Open sniffs p and returns a Reader over its purchase rows.
// ZIP archives are detected by magic bytes (or a .zip suffix); everything else is read as CSV
func Open(p string) (*Reader, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "export file %s not found", p)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "open export file %s", p)
	}

	head := make([]byte, len(zipMagic))
	n, _ := io.ReadFull(f, head)
	isZip := bytes.Equal(head[:n], zipMagic) || strings.EqualFold(path.Ext(p), ".zip")

	if !isZip {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "rewind %s", p)
		}
		rd, err := NewReader(p, f, f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return rd, nil
	}

	_ = f.Close()
	return openArchive(p)
}

func openArchive(p string) (*Reader, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFormat, "%s: not a readable zip archive", p)
	}

	member, err := selectMember(p, zr.File)
	if err != nil {
		_ = zr.Close()
		return nil, err
	}
	logger.Named("ingest").Debug().Str("archive", p).Str("member", member.Name).Msg("selected archive member")

	rc, err := member.Open()
	if err != nil {
		_ = zr.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeFormat, "%s: open member %s", p, member.Name)
	}
	rd, err := NewReader(p+"!"+member.Name, rc, multiCloser{rc, zr})
	if err != nil {
		_ = rc.Close()
		_ = zr.Close()
		return nil, err
	}
	return rd, nil
}

// selectMember picks the single CSV member that looks like order history.
// Candidates are CSV members whose header has a title column; several are narrowed to names containing "order"
func selectMember(archive string, files []*zip.File) (*zip.File, error) {
	var cands []*zip.File
	for _, zf := range files {
		if zf.FileInfo().IsDir() || !strings.EqualFold(path.Ext(zf.Name), ".csv") {
			continue
		}
		if hasTitleColumn(zf) {
			cands = append(cands, zf)
		}
	}

	switch len(cands) {
	case 0:
		return nil, perr.Formatf("%s: no order history csv in archive", archive)
	case 1:
		return cands[0], nil
	}

	var orders []*zip.File
	for _, zf := range cands {
		if strings.Contains(strings.ToLower(path.Base(zf.Name)), "order") {
			orders = append(orders, zf)
		}
	}
	if len(orders) == 1 {
		return orders[0], nil
	}
	return nil, perr.Formatf("%s: ambiguous archive, candidate members %s", archive, strings.Join(names(cands), ", "))
}

func hasTitleColumn(zf *zip.File) bool {
	rc, err := zf.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	rd, err := NewReader(zf.Name, rc, nil)
	if err != nil || rd.empty {
		return false
	}
	return rd.Schema().Has(domain.FieldTitle)
}

func names(fs []*zip.File) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"

	perr "grocer/internal/platform/errors"
	"grocer/internal/services/groceryimport/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader streams RawRecords from one CSV body in file order
type Reader struct {
	name   string
	cr     *csv.Reader
	closer io.Closer
	header []string
	schema domain.Schema
	empty  bool
	rows   int
}

// NewReader reads the header from r and resolves the schema.
// An empty body yields a Reader with no records; a header without a title column is a format error
func NewReader(name string, r io.Reader, closer io.Closer) (*Reader, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1 // ragged rows read missing cells as ""
	cr.ReuseRecord = false

	rd := &Reader{name: name, cr: cr, closer: closer}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		rd.empty = true
		return rd, nil
	}
	if err != nil {
		return nil, formatErr(name, err)
	}
	rd.header = header
	rd.schema = ResolveSchema(header)
	if !rd.schema.Has(domain.FieldTitle) {
		return nil, perr.WithField(perr.Formatf("%s: no title column in header %q", name, header), string(domain.FieldTitle))
	}
	return rd, nil
}

// Name returns the file or archive member being read
func (r *Reader) Name() string { return r.name }

// Schema returns the schema resolved from the header
func (r *Reader) Schema() domain.Schema { return r.schema }

// Rows returns how many data rows were read so far
func (r *Reader) Rows() int { return r.rows }

// Next returns the next record or io.EOF
func (r *Reader) Next() (domain.RawRecord, error) {
	if r.empty {
		return domain.RawRecord{}, io.EOF
	}
	for {
		rec, err := r.cr.Read()
		if errors.Is(err, io.EOF) {
			return domain.RawRecord{}, io.EOF
		}
		if err != nil {
			return domain.RawRecord{}, formatErr(r.name, err)
		}
		if blank(rec) {
			continue
		}
		line, _ := r.cr.FieldPos(0)
		vals := make(map[string]string, len(r.header))
		for i, h := range r.header {
			if i < len(rec) {
				vals[h] = rec[i]
			} else {
				vals[h] = ""
			}
		}
		r.rows++
		return domain.RawRecord{Line: line, Values: vals}, nil
	}
}

// Close releases the underlying file or archive
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func blank(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}

func formatErr(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrapf(err, perr.ErrorCodeFormat, "%s: malformed csv at line %d", name, pe.Line)
	}
	return perr.Wrapf(err, perr.ErrorCodeFormat, "%s: read csv", name)
}

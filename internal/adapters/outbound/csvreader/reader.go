package csvreader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/filegate/filegate/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader implements domain.DatasetReader for delimited text files.
type Reader struct{}

// New creates a Reader.
func New() *Reader { return &Reader{} }

// Read opens path and parses it with opts. The first record is the header.
// Cells equal to one of opts.NullValues become nil.
func (r *Reader) Read(path string, opts domain.ReadOptions) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.ResourceError{Op: "read data", Path: path, Err: os.ErrNotExist}
		}
		return nil, &domain.ResourceError{Op: "read data", Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Parse(f, opts)
	if err != nil {
		return nil, &domain.ResourceError{Op: "parse data", Path: path, Err: err}
	}
	return ds, nil
}

// Parse reads a delimited stream into a Dataset.
func Parse(in io.Reader, opts domain.ReadOptions) (*domain.Dataset, error) {
	src, err := decoder(in, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.Comma = ','
	if opts.Separator != 0 {
		cr.Comma = opts.Separator
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opts.TrimSpace

	header, err := cr.Read()
	if err == io.EOF {
		return &domain.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nulls := make(map[string]bool, len(opts.NullValues))
	for _, n := range opts.NullValues {
		nulls[n] = true
	}

	ds := &domain.Dataset{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(ds.Rows)+1, err)
		}
		row := make(domain.Record, len(header))
		for i, name := range header {
			if i >= len(rec) {
				row[name] = nil
				continue
			}
			cell := rec[i]
			if opts.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			if nulls[cell] {
				row[name] = nil
				continue
			}
			row[name] = cell
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// decoder strips a UTF-8 byte order mark and, for a non UTF-8 charset,
// transcodes the stream to UTF-8.
func decoder(in io.Reader, charset string) (io.Reader, error) {
	var enc encoding.Encoding
	if charset != "" && !isUTF8(charset) {
		e, err := ianaindex.IANA.Encoding(charset)
		if err != nil || e == nil {
			return nil, fmt.Errorf("unsupported encoding %q", charset)
		}
		enc = e
	}

	br := bufio.NewReader(in)
	if enc != nil {
		return transform.NewReader(br, enc.NewDecoder()), nil
	}
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br, nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "utf-8", "utf8", "utf-8-sig":
		return true
	}
	return false
}

package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"

	"guidescan/internal/strand"
)

const bufSize = 4 << 20 // 4 MiB

// DefaultID names the record of an input that has no '>' header.
const DefaultID = "sequence"

// Record is one FASTA entry.
type Record struct {
	ID  string
	Seq []byte // ASCII upper-cased, no whitespace; owned by the receiver
}

// Open returns a reader for path ("-" is stdin), transparently un-gzipping
// when the stream starts with the gzip magic bytes.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = f
	}
	br := bufio.NewReaderSize(src, bufSize)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			src.Close()
			return nil, err
		}
		return readCloser{Reader: zr, close: func() error { zr.Close(); return src.Close() }}, nil
	}
	return readCloser{Reader: br, close: src.Close}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// Stream reads `path` and sends each record down the chan.
// The channel is always closed on return.
func Stream(ctx context.Context, path string, out chan<- Record) error {
	rc, err := Open(path)
	if err != nil {
		close(out)
		return err
	}
	defer rc.Close()
	return StreamReader(ctx, rc, out)
}

// StreamReader is Stream over an already open reader.
func StreamReader(ctx context.Context, r io.Reader, out chan<- Record) error {
	defer close(out)

	br := bufio.NewReaderSize(r, bufSize)
	var (
		id     string
		seq    []byte
		header bool
		seen   bool // any sequence bytes or header so far
	)
	flush := func() error {
		if !seen {
			return nil
		}
		if !header && len(seq) == 0 {
			return nil
		}
		rec := Record{ID: id, Seq: strand.ToUpper(seq)}
		seq = nil
		select {
		case out <- rec:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) > 0 && line[0] == '>' {
			if ferr := flush(); ferr != nil {
				return ferr
			}
			id, header, seen = headerID(line[1:]), true, true
		} else if len(line) > 0 {
			if !seen {
				id, seen = DefaultID, true
			}
			seq = appendBases(seq, line)
		}
		if err == io.EOF {
			return flush()
		}
	}
}

// headerID grabs up-to-first-space.
func headerID(h []byte) string {
	f := bytes.Fields(h)
	if len(f) == 0 {
		return ""
	}
	return string(f[0])
}

func appendBases(dst, line []byte) []byte {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\v', '\f':
			continue
		}
		dst = append(dst, b)
	}
	return dst
}

// Normalize applies the single-upload rule: a leading '>' line is dropped,
// the remaining lines are joined and whitespace is removed. Case is kept.
func Normalize(text string) string {
	if strings.HasPrefix(text, ">") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, text)
}

// Package fasta provides random access to reference genome sequences,
// addressed by sequence name and 1-based coordinate range.
//
// Lookups use faidx-style index entries (see http://www.htslib.org/doc/faidx.html):
// one line per sequence with "<name>\t<length>\t<byte offset>\t<bases per
// line>\t<bytes per line>". When no .fai sidecar is present the index is
// built by scanning the FASTA once; the sequence data itself is never held
// in memory.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var indexRegExp = regexp.MustCompile(`(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

// FetchError reports a failed sequence lookup.
type FetchError struct {
	Seq    string
	Start  int64
	Length int
	Reason string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fasta fetch %s:%d (%d bases): %s", e.Seq, e.Start, e.Length, e.Reason)
}

type indexEntry struct {
	length    int64
	offset    int64
	lineBase  int64
	lineWidth int64
}

// File is a read-only, indexed reference genome. Fetch is safe for
// concurrent use.
type File struct {
	reader io.ReadSeeker
	closer io.Closer
	seqs   map[string]indexEntry
	names  []string
	mu     sync.Mutex
}

// Open opens a FASTA file. A "<path>.fai" sidecar index is used when
// present; otherwise the file is scanned once to build the index.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta: %w", err)
	}

	var file *File
	if idx, err := os.Open(path + ".fai"); err == nil {
		file, err = NewIndexed(f, idx)
		idx.Close()
		if err != nil {
			f.Close()
			return nil, err
		}
	} else {
		file, err = New(f)
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	file.closer = f
	return file, nil
}

// NewIndexed creates a File from FASTA data and its faidx index.
func NewIndexed(fasta io.ReadSeeker, index io.Reader) (*File, error) {
	f := &File{reader: fasta, seqs: make(map[string]indexEntry)}
	scanner := bufio.NewScanner(index)
	for scanner.Scan() {
		matches := indexRegExp.FindStringSubmatch(scanner.Text())
		if len(matches) != 6 {
			return nil, fmt.Errorf("invalid fai index line: %s", scanner.Text())
		}
		ent := indexEntry{}
		ent.length, _ = strconv.ParseInt(matches[2], 10, 64)
		ent.offset, _ = strconv.ParseInt(matches[3], 10, 64)
		ent.lineBase, _ = strconv.ParseInt(matches[4], 10, 64)
		ent.lineWidth, _ = strconv.ParseInt(matches[5], 10, 64)
		f.seqs[matches[1]] = ent
		f.names = append(f.names, matches[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fai index: %w", err)
	}
	return f, nil
}

// New creates a File by scanning the FASTA data once to build the index.
func New(fasta io.ReadSeeker) (*File, error) {
	f := &File{reader: fasta, seqs: make(map[string]indexEntry)}
	if _, err := fasta.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek fasta: %w", err)
	}

	r := bufio.NewReaderSize(fasta, 1<<20)
	var off int64
	var name string
	var ent indexEntry

	flush := func() {
		if name != "" {
			f.seqs[name] = ent
			f.names = append(f.names, name)
		}
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("scan fasta: %w", err)
		}
		n := int64(len(line))
		trimmed := strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(trimmed, ">") {
			flush()
			// Name is the text up to the first space; description ignored.
			fields := strings.Fields(trimmed[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("fasta header without sequence name at byte %d", off)
			}
			name = fields[0]
			ent = indexEntry{offset: off + n}
		} else if trimmed != "" {
			if ent.lineBase == 0 {
				ent.lineBase = int64(len(trimmed))
				ent.lineWidth = n
			}
			ent.length += int64(len(trimmed))
		}

		off += n
		if err == io.EOF {
			break
		}
	}
	flush()
	return f, nil
}

// Contains reports whether the named sequence exists.
func (f *File) Contains(name string) bool {
	_, ok := f.seqs[name]
	return ok
}

// Len returns the length of the named sequence.
func (f *File) Len(name string) (int64, error) {
	ent, ok := f.seqs[name]
	if !ok {
		return 0, fmt.Errorf("sequence not found: %s", name)
	}
	return ent.length, nil
}

// SeqNames returns the sequence names in file order.
func (f *File) SeqNames() []string {
	return f.names
}

// Fetch returns length bases of the named sequence starting at the given
// 1-based inclusive position, upper-cased.
func (f *File) Fetch(name string, start int64, length int) (string, error) {
	ent, ok := f.seqs[name]
	if !ok {
		return "", &FetchError{Seq: name, Start: start, Length: length, Reason: "sequence not found"}
	}
	if length <= 0 {
		return "", &FetchError{Seq: name, Start: start, Length: length, Reason: "non-positive length"}
	}
	start0 := start - 1
	end := start0 + int64(length)
	if start0 < 0 || end > ent.length {
		return "", &FetchError{
			Seq: name, Start: start, Length: length,
			Reason: fmt.Sprintf("out of range for sequence of length %d", ent.length),
		}
	}

	firstOff := ent.offset + (start0/ent.lineBase)*ent.lineWidth + start0%ent.lineBase
	lastIdx := end - 1
	lastOff := ent.offset + (lastIdx/ent.lineBase)*ent.lineWidth + lastIdx%ent.lineBase

	buf := make([]byte, lastOff-firstOff+1)

	f.mu.Lock()
	if _, err := f.reader.Seek(firstOff, io.SeekStart); err != nil {
		f.mu.Unlock()
		return "", &FetchError{Seq: name, Start: start, Length: length, Reason: err.Error()}
	}
	if _, err := io.ReadFull(f.reader, buf); err != nil {
		f.mu.Unlock()
		return "", &FetchError{Seq: name, Start: start, Length: length, Reason: err.Error()}
	}
	f.mu.Unlock()

	out := make([]byte, 0, length)
	for _, b := range buf {
		if b == '\n' || b == '\r' {
			continue
		}
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		out = append(out, b)
	}
	if len(out) != length {
		return "", &FetchError{
			Seq: name, Start: start, Length: length,
			Reason: fmt.Sprintf("expected %d bases, read %d", length, len(out)),
		}
	}
	return string(out), nil
}

// Close closes the underlying file, if any.
func (f *File) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

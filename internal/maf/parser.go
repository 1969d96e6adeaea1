package maf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a materialized MAF-shaped tab-separated table. Comment lines
// preceding the header are preserved verbatim (including the leading '#').
type Table struct {
	Comments []string
	Header   []string
	Rows     [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Field returns the value of the named column in the given row, or ""
// when the column is absent or the row is short.
func (t *Table) Field(row []string, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Parser reads a MAF-shaped table line by line.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	comments   []string
	header     []string
}

// NewParser opens a MAF parser for the given file.
// Supports both plain and gzipped input.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read maf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek maf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader collects leading comment lines and parses the header line.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return fmt.Errorf("no header line found: %w", ErrEmptyInput)
			} else if err != io.EOF {
				return fmt.Errorf("read header: %w", err)
			}
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "#") {
			p.comments = append(p.comments, line)
			continue
		}
		if line == "" {
			if err == io.EOF {
				return fmt.Errorf("no header line found: %w", ErrEmptyInput)
			}
			continue
		}

		p.header = strings.Split(line, "\t")
		return nil
	}
}

// Next returns the next data row, or nil at end of input.
func (p *Parser) Next() ([]string, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read data line: %w", err)
		}
		atEOF := err == io.EOF
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if atEOF {
				return nil, nil
			}
			continue
		}

		return strings.Split(line, "\t"), nil
	}
}

// Comments returns the comment lines preceding the header.
func (p *Parser) Comments() []string {
	return p.comments
}

// Header returns the parsed header columns.
func (p *Parser) Header() []string {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ReadTable materializes an entire MAF file.
func ReadTable(path string) (*Table, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return readTable(p)
}

// ReadTableFrom materializes a MAF table from a reader.
func ReadTableFrom(r io.Reader) (*Table, error) {
	p, err := NewParserFromReader(r)
	if err != nil {
		return nil, err
	}
	return readTable(p)
}

func readTable(p *Parser) (*Table, error) {
	t := &Table{
		Comments: p.Comments(),
		Header:   p.Header(),
	}
	for {
		row, err := p.Next()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

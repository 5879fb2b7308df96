package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineSize bounds a single metrics line. Exporters with long label sets
// (update titles) stay well below it.
const maxLineSize = 1024 * 1024

// ParseLabels extracts the label set of one metrics line.
// It takes the text between the first "{" and the next "}", splits it on
// commas and each segment on its first "=". Keys and values are trimmed and
// one layer of double quotes is stripped from the value.
// Segments without "=" are skipped. Returns false if the line has no {...} span.
//
// Escaped quotes, commas or braces inside values are not supported.
func ParseLabels(line string) (map[string]string, bool) {
	open := strings.IndexByte(line, '{')
	if open == -1 {
		return nil, false
	}
	end := strings.IndexByte(line[open+1:], '}')
	if end == -1 {
		return nil, false
	}
	body := line[open+1 : open+1+end]

	labels := make(map[string]string)
	for _, pair := range strings.Split(body, ",") {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		labels[strings.TrimSpace(key)] = unquote(strings.TrimSpace(val))
	}
	return labels, true
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// Parse scans metrics text line by line and returns the records of the given
// dialect in input order. Comment lines, lines of other metrics and lines
// missing required labels are skipped silently.
func Parse(r io.Reader, d Dialect) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if d.Prefix != "" && !strings.Contains(line, d.Prefix) {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", lineNo)
		}

		labels, ok := ParseLabels(line)
		if !ok {
			continue
		}
		if rec, ok := d.Build(labels); ok {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ParseFile reads and parses the metrics file at path.
// A missing file yields a *SourceNotFoundError; every other failure is
// wrapped in a *ParseError.
func ParseFile(path string, d Dialect) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Parse(f, d)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return records, nil
}

// ParseContent parses literal metrics text. The text is written to a
// temporary file which is removed before returning, on success or failure.
func ParseContent(content string, d Dialect) ([]Record, error) {
	tmp, err := os.CreateTemp("", "compliance-metrics-*.prom")
	if err != nil {
		return nil, fmt.Errorf("cannot create temporary metrics file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("cannot write temporary metrics file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("cannot write temporary metrics file: %w", err)
	}

	return ParseFile(path, d)
}

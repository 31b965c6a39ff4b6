package docs2docx

import (
	"bufio"
	"io"
	"strings"
)

// ReadURLs reads a page list, one URL per line. Blank lines and lines
// starting with # are skipped; surrounding whitespace is trimmed.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return urls, err
	}
	return urls, nil
}

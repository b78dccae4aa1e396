// Package console is the line-oriented front end: it collects URLs from a
// terminal or a file and renders decisions as text.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DoneWord ends an interactive session (case-insensitive).
const DoneWord = "done"

// ReadInteractive prompts on out and reads one URL per line from in until
// DoneWord or EOF. Blank lines are skipped and whitespace is trimmed.
func ReadInteractive(in io.Reader, out io.Writer, prompt string) ([]string, error) {
	scanner := bufio.NewScanner(in)
	var urls []string
	for {
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return nil, err
		}
		if !scanner.Scan() {
			break
		}
		u := strings.TrimSpace(scanner.Text())
		if u == "" {
			continue
		}
		if strings.EqualFold(u, DoneWord) {
			return urls, nil
		}
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// EOF without DoneWord: finish the prompt line
	if _, err := fmt.Fprintln(out); err != nil {
		return nil, err
	}
	return urls, nil
}

// ReadList reads a batch file: one URL per line, blank lines and lines
// starting with '#' are ignored.
func ReadList(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var urls []string
	for scanner.Scan() {
		u := strings.TrimSpace(scanner.Text())
		if u == "" || strings.HasPrefix(u, "#") {
			continue
		}
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

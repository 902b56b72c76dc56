// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words_en.txt
var defaultEnglish string

// Default returns the built-in English word list.
func Default() []string {
	words, err := ReadWords(strings.NewReader(defaultEnglish))
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return words
}

// LoadWords reads whitespace-delimited words from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadWords(file)
}

// ReadWords reads whitespace-delimited words, dropping duplicates.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

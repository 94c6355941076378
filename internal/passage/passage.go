// Package passage resolves the text a session asks the user to type.
package passage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/typeracer/internal/generator"
	"github.com/verte-zerg/typeracer/internal/wordlist"
)

// Source names where a passage came from.
type Source string

const (
	SourceText     Source = "text"
	SourceFile     Source = "file"
	SourceWordList Source = "wordlist"
	SourceBuiltin  Source = "builtin"
)

// ErrEmpty is returned when the resolved passage has no characters.
var ErrEmpty = errors.New("passage is empty")

// Options selects a passage. Text wins over File, which wins over
// generating from the word list at WordListPath.
type Options struct {
	Text         string
	File         string
	Lang         string
	WordListPath string
	Generate     generator.Options
}

// Resolve returns the passage for opts.
func Resolve(opts Options, gen *generator.Generator) (string, Source, error) {
	if opts.Text != "" {
		text := normalize(opts.Text)
		if text == "" {
			return "", SourceText, ErrEmpty
		}
		return text, SourceText, nil
	}
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", SourceFile, fmt.Errorf("read passage file: %w", err)
		}
		text := normalize(string(data))
		if text == "" {
			return "", SourceFile, fmt.Errorf("%s: %w", opts.File, ErrEmpty)
		}
		return text, SourceFile, nil
	}

	words, source, err := loadWords(opts)
	if err != nil {
		return "", source, err
	}
	text := gen.Passage(words, opts.Generate)
	if text == "" {
		return "", source, ErrEmpty
	}
	return text, source, nil
}

func loadWords(opts Options) ([]string, Source, error) {
	keep := wordlist.FilterForLang(opts.Lang)
	if opts.WordListPath != "" {
		words, err := wordlist.LoadWords(opts.WordListPath)
		switch {
		case err == nil:
			if filtered := wordlist.Filter(words, keep); len(filtered) > 0 {
				return filtered, SourceWordList, nil
			}
			return nil, SourceWordList, fmt.Errorf("%s: no usable words for %q: %w", opts.WordListPath, opts.Lang, wordlist.ErrEmpty)
		case !errors.Is(err, os.ErrNotExist):
			return nil, SourceWordList, fmt.Errorf("load word list: %w", err)
		}
	}
	if opts.Lang != "" && !strings.EqualFold(opts.Lang, "en") {
		return nil, SourceWordList, fmt.Errorf("no word list for language %q at %s", opts.Lang, opts.WordListPath)
	}
	return wordlist.Builtin(), SourceBuiltin, nil
}

// normalize collapses runs of whitespace, including newlines, to single spaces.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

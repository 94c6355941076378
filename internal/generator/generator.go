// Package generator builds random practice passages from a word list.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Options controls passage shape.
type Options struct {
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Passage picks opts.Words words uniformly from words, applies
// capitalization and punctuation, and joins them with single spaces.
func (g *Generator) Passage(words []string, opts Options) string {
	if len(words) == 0 || opts.Words <= 0 {
		return ""
	}
	out := make([]string, 0, opts.Words)
	for i := 0; i < opts.Words; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = g.applyCaps(word, opts.CapsPct)
		word = g.applyPunct(word, opts.PunctPct, opts.PunctSet)
		out = append(out, word)
	}
	return strings.Join(out, " ")
}

func (g *Generator) applyCaps(word string, capsPct float64) string {
	if capsPct <= 0 || g.rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (g *Generator) applyPunct(word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || g.rnd.Float64() > punctPct {
		return word
	}
	return word + string(punctSet[g.rnd.Intn(len(punctSet))])
}

// Package passage builds the target word sequence for a typing test.
package passage

import (
	"errors"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// DefaultSample is the passage used by fixed-text tests.
const DefaultSample = "The quick brown fox jumps over the lazy dog."

var (
	// ErrEmptyPrompt is returned for custom prompts without any words.
	ErrEmptyPrompt = errors.New("prompt has no words")
	// ErrNoWords is returned when a passage ends up empty.
	ErrNoWords = errors.New("passage has no words")
)

// Request describes the passage to build. When Words is empty the passage
// is Text split into words; otherwise Count words are drawn from Words.
type Request struct {
	Text        string
	Words       []string
	Count       int
	Punctuation bool
	CapsPct     float64
	PunctPct    float64
	PunctSet    []rune
}

// Fixed splits a fixed sample into words.
func Fixed(text string) []string {
	return strings.Fields(text)
}

// Custom splits a user-entered prompt into words.
func Custom(prompt string) ([]string, error) {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return nil, ErrEmptyPrompt
	}
	return words, nil
}

// Prepare finalizes words for a session. With punctuation disabled commas
// are removed from every word. Trailing punctuation on the last word is
// always removed, and words left empty are dropped.
func Prepare(words []string, punctuation bool) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if !punctuation {
			word = strings.ReplaceAll(word, ",", "")
		}
		if word != "" {
			out = append(out, word)
		}
	}
	for len(out) > 0 {
		last := strings.TrimRightFunc(out[len(out)-1], unicode.IsPunct)
		if last != "" {
			out[len(out)-1] = last
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

// Generator produces randomized passages from a word list.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Build resolves a request into target words.
func (g *Generator) Build(req Request) ([]string, error) {
	var words []string
	if len(req.Words) == 0 {
		words = Fixed(req.Text)
	} else {
		words = g.Shuffle(req.Words, req.Count)
		punctPct := req.PunctPct
		if !req.Punctuation {
			punctPct = 0
		}
		words = g.Decorate(words, req.CapsPct, punctPct, req.PunctSet)
	}
	words = Prepare(words, req.Punctuation)
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// Shuffle picks count words from words. Words do not repeat until the list
// is exhausted, after which a fresh shuffle is appended.
func (g *Generator) Shuffle(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for len(result) < count {
		for _, idx := range g.rnd.Perm(len(words)) {
			if len(result) == count {
				break
			}
			result = append(result, words[idx])
		}
	}
	return result
}

// Decorate applies random capitalization and trailing punctuation.
func (g *Generator) Decorate(words []string, capsPct, punctPct float64, punctSet []rune) []string {
	result := make([]string, 0, len(words))
	for _, word := range words {
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

// Package index provides the lexical similarity index over corpus questions.
package index

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
)

// ErrEmptyCorpus indicates an index build over zero questions.
var ErrEmptyCorpus = errors.New("cannot build index over empty corpus")

// Candidate is one ranked corpus question.
type Candidate struct {
	Index int
	Score float64
}

// Index is a TF-IDF similarity index over a fixed question set. The
// vocabulary is frozen at build time; rebuilding over the same corpus is
// deterministic. Safe for concurrent queries once built.
type Index struct {
	vocab   map[string]int
	idf     []float64
	vectors []map[int]float64 // unit-length sparse vectors, one per question
}

// Build tokenizes every corpus question, computes term-frequency times
// smoothed inverse-document-frequency weights, and normalizes each question
// vector to unit length.
func Build(c *corpus.Corpus) (*Index, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCorpus
	}

	questions := c.Questions()
	docs := make([][]string, len(questions))
	vocab := make(map[string]int)
	df := make([]int, 0)

	for i, q := range questions {
		docs[i] = Tokenize(q)
		seen := make(map[string]bool, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
				df = append(df, 0)
			}
			if !seen[tok] {
				seen[tok] = true
				df[vocab[tok]]++
			}
		}
	}

	n := float64(len(questions))
	idf := make([]float64, len(df))
	for t, count := range df {
		// Smoothed IDF so no term weight is ever zero or negative.
		idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}

	idx := &Index{
		vocab:   vocab,
		idf:     idf,
		vectors: make([]map[int]float64, len(docs)),
	}
	for i, toks := range docs {
		idx.vectors[i] = idx.vectorize(toks)
	}

	return idx, nil
}

// Query vectorizes text against the frozen vocabulary (unseen terms are
// dropped) and returns every corpus question ranked by cosine similarity,
// descending, ties broken to the earlier corpus position. A query with no
// vocabulary overlap scores exactly 0 against everything.
func (x *Index) Query(text string) []Candidate {
	qv := x.vectorize(Tokenize(text))

	out := make([]Candidate, len(x.vectors))
	for i, dv := range x.vectors {
		out[i] = Candidate{Index: i, Score: dot(qv, dv)}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})

	return out
}

// Best returns the top candidate, or false for an empty index.
func (x *Index) Best(text string) (Candidate, bool) {
	ranked := x.Query(text)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}

// VocabSize returns the number of distinct terms in the index.
func (x *Index) VocabSize() int {
	return len(x.vocab)
}

// vectorize builds a unit-length sparse TF-IDF vector over the frozen
// vocabulary. Terms outside the vocabulary are dropped, not added.
func (x *Index) vectorize(tokens []string) map[int]float64 {
	tf := make(map[int]float64)
	for _, tok := range tokens {
		if t, ok := x.vocab[tok]; ok {
			tf[t]++
		}
	}

	var norm float64
	for t, count := range tf {
		w := count * x.idf[t]
		tf[t] = w
		norm += w * w
	}
	if norm == 0 {
		return tf
	}

	norm = math.Sqrt(norm)
	for t := range tf {
		tf[t] /= norm
	}
	return tf
}

// dot computes the inner product of two unit vectors, which is their cosine
// similarity. Either vector being empty yields 0.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}

// Tokenize case-folds text and splits it into word-like tokens, keeping
// only tokens of at least two runes.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

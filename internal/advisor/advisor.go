// Package advisor orchestrates retrieval and dialogue management: it resolves
// card references, queries the similarity index, formats answers per intent,
// and records each turn in the session state.
package advisor

import (
	"context"
	"math/rand"
	"strings"
	"unicode"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
	"github.com/hdbank-ai/card-advisor/internal/dialogue"
	"github.com/hdbank-ai/card-advisor/internal/index"
	"github.com/hdbank-ai/card-advisor/internal/intent"
	"github.com/hdbank-ai/card-advisor/internal/observability"
)

// DefaultThreshold is the minimum similarity score for a retrieved candidate
// to be accepted as the answer.
const DefaultThreshold = 0.3

// Classifier labels an utterance with an intent.
type Classifier interface {
	Classify(ctx context.Context, text string) (intent.Label, error)
}

// Config holds engine tuning knobs.
type Config struct {
	// Threshold is the similarity-acceptance threshold; 0 means DefaultThreshold.
	Threshold float64
	// Pick selects a pool index in [0, n); nil means the shared PRNG. Inject
	// a seeded source to make response selection deterministic in tests.
	Pick func(n int) int
}

// Engine answers utterances against the fixed corpus. The corpus, catalog,
// and index are shared read-only across sessions; per-session state is
// serialized by the caller holding the session lock.
type Engine struct {
	logger     *observability.Logger
	corpus     *corpus.Corpus
	catalog    *corpus.Catalog
	index      *index.Index
	classifier Classifier
	threshold  float64
	pick       func(n int) int
}

// New builds the engine, constructing the similarity index over the corpus.
// Fails when the corpus is empty.
func New(logger *observability.Logger, c *corpus.Corpus, catalog *corpus.Catalog, classifier Classifier, cfg Config) (*Engine, error) {
	idx, err := index.Build(c)
	if err != nil {
		return nil, err
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	pick := cfg.Pick
	if pick == nil {
		pick = rand.Intn
	}

	return &Engine{
		logger:     logger,
		corpus:     c,
		catalog:    catalog,
		index:      idx,
		classifier: classifier,
		threshold:  threshold,
		pick:       pick,
	}, nil
}

// Catalog returns the card catalog the engine serves.
func (e *Engine) Catalog() *corpus.Catalog {
	return e.catalog
}

// Answer produces the response for one utterance and records the turn in
// state. It always returns a printable string; an out-of-corpus question is
// a normal fallback, and classification failures are converted to a generic
// error message here rather than propagating.
func (e *Engine) Answer(ctx context.Context, state *dialogue.State, userText string) string {
	text := Normalize(userText)

	label, err := e.classifier.Classify(ctx, text)
	if err != nil {
		e.logger.Error().Err(err).Str("text", userText).Msg("Intent classification failed")
		return internalErrorResponse
	}

	// Support requests get the card menu unless a card is already named.
	if containsSupportPhrase(text) {
		if _, mentioned := e.catalog.FindMention(text); !mentioned {
			menu := cardMenu(e.catalog.Cards())
			state.RecordTurn(userText, menu, label, "")
			return menu
		}
	}

	// Numeric menu selection bypasses similarity search entirely.
	if _, ok := dialogue.LeadingNumber(text); ok {
		return e.answerByNumber(state, userText, text, label)
	}

	res := state.ResolveCardReference(text, e.catalog)
	mentionedCard := res.Card

	// Retrieval runs over the original user text, not the normalized form.
	best, ok := e.index.Best(userText)
	if !ok || best.Score < e.threshold {
		e.logger.Debug().
			Float64("score", best.Score).
			Float64("threshold", e.threshold).
			Msg("No corpus match above threshold")
		state.RecordTurn(userText, fallbackResponse, label, mentionedCard)
		return fallbackResponse
	}

	entry := e.corpus.Entries[best.Index]
	answer := e.format(entry.Answer, label)

	e.logger.Debug().
		Str("intent", string(label)).
		Str("matched_question", entry.Question).
		Float64("score", best.Score).
		Str("card", mentionedCard).
		Msg("Answered from corpus")

	state.RecordTurn(userText, answer, label, mentionedCard)
	return answer
}

// answerByNumber handles an utterance that starts with a numeric token:
// a valid selection returns that card's description entry directly.
func (e *Engine) answerByNumber(state *dialogue.State, userText, text string, label intent.Label) string {
	res := state.ResolveCardReference(text, e.catalog)
	if res.Invalid {
		msg := invalidNumber(e.catalog.Len())
		state.RecordTurn(userText, msg, label, "")
		return msg
	}

	var answer string
	if entry, ok := e.corpus.CardDescription(res.Card); ok {
		answer = cardInfo(res.Card, entry.Answer)
	} else {
		answer = cardNotFound(res.Card)
	}

	state.RecordTurn(userText, answer, label, res.Card)
	return answer
}

// format applies per-intent formatting: greeting and farewell discard the
// retrieved answer in favor of a random pick from the fixed pool; every other
// intent passes the answer through unchanged.
func (e *Engine) format(answer string, label intent.Label) string {
	if pool, ok := responsePools[label]; ok {
		return pool[e.pick(len(pool))]
	}
	return answer
}

func containsSupportPhrase(text string) bool {
	for _, phrase := range supportPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// Normalize case-folds and trims the utterance and strips characters outside
// word and basic punctuation classes.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '.' || r == ',' || r == '!' || r == '?' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

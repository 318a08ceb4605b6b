package intent

import (
	"context"
	"fmt"
	"strings"
)

// Scorer computes semantic similarity between two texts.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Classifier runs a two-stage intent pipeline: a deterministic
// substring-match stage over the taxonomy's trigger phrases, then a
// semantic-scoring stage when the first stage is ambiguous or empty.
type Classifier struct {
	taxonomy *Taxonomy
	scorer   Scorer
}

// NewClassifier creates a classifier over the given taxonomy.
func NewClassifier(taxonomy *Taxonomy, scorer Scorer) *Classifier {
	if taxonomy == nil {
		taxonomy = Default()
	}
	return &Classifier{taxonomy: taxonomy, scorer: scorer}
}

// Classify returns the intent label for text. Substring triggers give high
// precision for common phrasings; when more than one intent triggers and a
// declared combination is fully contained, the utterance is multi_intent
// (first combination in declaration order wins). Everything else falls back
// to per-phrase semantic scoring, defaulting to general_query.
func (c *Classifier) Classify(ctx context.Context, text string) (Label, error) {
	lowered := strings.ToLower(text)

	found := make(map[Label]bool)
	for _, ip := range c.taxonomy.Intents {
		for _, pattern := range ip.Patterns {
			if strings.Contains(lowered, pattern) {
				found[ip.Label] = true
				break
			}
		}
	}

	if len(found) > 1 {
		for _, combo := range c.taxonomy.Combinations {
			all := true
			for _, label := range combo {
				if !found[label] {
					all = false
					break
				}
			}
			if all {
				return MultiIntent, nil
			}
		}
	}

	return c.classifySemantic(ctx, lowered)
}

// classifySemantic scores the text against every trigger phrase and returns
// the intent owning the single highest-scoring phrase. general_query wins
// unless some phrase scores strictly above zero.
func (c *Classifier) classifySemantic(ctx context.Context, text string) (Label, error) {
	best := GeneralQuery
	maxScore := 0.0

	for _, ip := range c.taxonomy.Intents {
		for _, pattern := range ip.Patterns {
			score, err := c.scorer.Score(ctx, text, pattern)
			if err != nil {
				return GeneralQuery, fmt.Errorf("score intent %s pattern %q: %w", ip.Label, pattern, err)
			}
			if score > maxScore {
				maxScore = score
				best = ip.Label
			}
		}
	}

	return best, nil
}

package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// containsScorer scores high when the pattern occurs in the text, giving the
// semantic stage a deterministic stand-in.
type containsScorer struct{}

func (containsScorer) Score(_ context.Context, text, pattern string) (float64, error) {
	if strings.Contains(text, pattern) {
		return 0.9, nil
	}
	return 0.1, nil
}

type failingScorer struct{}

func (failingScorer) Score(_ context.Context, _, _ string) (float64, error) {
	return 0, errors.New("embedding backend down")
}

func TestClassify_SingleIntentViaSemanticStage(t *testing.T) {
	c := NewClassifier(Default(), containsScorer{})

	tests := []struct {
		text string
		want Label
	}{
		{"xin chào", Greeting},
		{"tạm biệt nhé", Farewell},
		{"điều kiện cần gì", Requirements},
	}
	for _, tt := range tests {
		got, err := c.Classify(context.Background(), tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestClassify_MultiIntentCombination(t *testing.T) {
	c := NewClassifier(Default(), containsScorer{})

	// benefits + fees is a declared combination.
	got, err := c.Classify(context.Background(), "ưu đãi và phí của thẻ này")
	require.NoError(t, err)
	assert.Equal(t, MultiIntent, got)

	// card_info + fees as well.
	got, err = c.Classify(context.Background(), "thẻ này phí bao nhiêu")
	require.NoError(t, err)
	assert.Equal(t, MultiIntent, got)
}

func TestClassify_MultipleFoundWithoutCombination(t *testing.T) {
	c := NewClassifier(Default(), containsScorer{})

	// greeting + farewell trigger together but form no declared combination,
	// so the semantic stage decides.
	got, err := c.Classify(context.Background(), "chào và cảm ơn")
	require.NoError(t, err)
	assert.NotEqual(t, MultiIntent, got)
}

func TestClassify_DefaultsToGeneralQuery(t *testing.T) {
	// A scorer that never exceeds zero leaves the default label standing.
	zero := scorerFunc(func(_, _ string) (float64, error) { return 0, nil })
	c := NewClassifier(Default(), zero)

	got, err := c.Classify(context.Background(), "nội dung không liên quan")
	require.NoError(t, err)
	assert.Equal(t, GeneralQuery, got)
}

func TestClassify_HighestPhraseWins(t *testing.T) {
	// Only the exact phrase "hoàn tiền" scores high: benefits must win even
	// though it is declared after greeting.
	s := scorerFunc(func(text, pattern string) (float64, error) {
		if pattern == "hoàn tiền" {
			return 0.95, nil
		}
		return 0.2, nil
	})
	c := NewClassifier(Default(), s)

	got, err := c.Classify(context.Background(), "cashback")
	require.NoError(t, err)
	assert.Equal(t, Benefits, got)
}

func TestClassify_ScorerErrorPropagates(t *testing.T) {
	c := NewClassifier(Default(), failingScorer{})

	got, err := c.Classify(context.Background(), "nội dung không khớp mẫu nào")
	require.Error(t, err)
	assert.Equal(t, GeneralQuery, got)
}

func TestClassify_MultiIntentSkipsScorer(t *testing.T) {
	// A matched combination must never reach the semantic stage.
	c := NewClassifier(Default(), failingScorer{})

	got, err := c.Classify(context.Background(), "ưu đãi và phí")
	require.NoError(t, err)
	assert.Equal(t, MultiIntent, got)
}

type scorerFunc func(a, b string) (float64, error)

func (f scorerFunc) Score(_ context.Context, a, b string) (float64, error) {
	return f(a, b)
}

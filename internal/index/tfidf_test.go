package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
)

func testCorpus(t *testing.T, questions ...string) *corpus.Corpus {
	t.Helper()
	entries := make([]corpus.QAEntry, len(questions))
	for i, q := range questions {
		entries[i] = corpus.QAEntry{Question: q, Answer: "answer", Context: "card_faqs"}
	}
	return &corpus.Corpus{Entries: entries}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, err := Build(&corpus.Corpus{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Build(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestQuery_SelfSimilarityIsOne(t *testing.T) {
	c := testCorpus(t,
		"Phí thẻ HDBank Visa Gold là bao nhiêu?",
		"Điều kiện mở thẻ HDBank Vietjet Classic là gì?",
		"Có những ưu đãi gì khi dùng thẻ HDBank JCB Ultimate?",
	)
	idx, err := Build(c)
	require.NoError(t, err)

	for i, q := range c.Questions() {
		ranked := idx.Query(q)
		require.NotEmpty(t, ranked)
		assert.Equal(t, i, ranked[0].Index, "verbatim question must rank itself first")
		assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	}
}

func TestQuery_ScoresNonIncreasing(t *testing.T) {
	c := testCorpus(t,
		"Phí thẻ Visa Gold là bao nhiêu?",
		"Quyền lợi thẻ Visa Gold là gì?",
		"Điều kiện mở thẻ Mastercard World?",
		"Thẻ JCB Ultimate có ưu đãi gì?",
	)
	idx, err := Build(c)
	require.NoError(t, err)

	ranked := idx.Query("phí thẻ visa gold")
	require.Len(t, ranked, 4)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestQuery_TiesBreakToEarlierEntry(t *testing.T) {
	c := testCorpus(t,
		"thẻ tín dụng",
		"thẻ tín dụng",
		"hoàn toàn khác biệt nội dung",
	)
	idx, err := Build(c)
	require.NoError(t, err)

	ranked := idx.Query("thẻ tín dụng")
	require.Len(t, ranked, 3)
	assert.Equal(t, 0, ranked[0].Index)
	assert.Equal(t, 1, ranked[1].Index)
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-12)
}

func TestQuery_NoVocabularyOverlapScoresZero(t *testing.T) {
	c := testCorpus(t, "Phí thẻ Visa Gold là bao nhiêu?")
	idx, err := Build(c)
	require.NoError(t, err)

	ranked := idx.Query("completely unrelated english words")
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].Score)
	assert.False(t, ranked[0].Score != ranked[0].Score, "score must not be NaN")
}

func TestQuery_UnseenTermsDropped(t *testing.T) {
	c := testCorpus(t, "phí thẻ visa")
	idx, err := Build(c)
	require.NoError(t, err)

	withNoise := idx.Query("phí thẻ visa zzzz qqqq")
	clean := idx.Query("phí thẻ visa")
	assert.InDelta(t, clean[0].Score, withNoise[0].Score, 1e-9,
		"terms outside the frozen vocabulary must not affect scoring")
}

func TestBuild_Deterministic(t *testing.T) {
	c := testCorpus(t,
		"Phí thẻ Visa Gold là bao nhiêu?",
		"Quyền lợi thẻ Visa Gold là gì?",
	)
	a, err := Build(c)
	require.NoError(t, err)
	b, err := Build(c)
	require.NoError(t, err)

	q := "phí visa gold"
	ra, rb := a.Query(q), b.Query(q)
	require.Equal(t, len(ra), len(rb))
	for i := range ra {
		assert.Equal(t, ra[i].Index, rb[i].Index)
		assert.InDelta(t, ra[i].Score, rb[i].Score, 1e-15)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Phí thẻ HDBank Visa Gold, là bao-nhiêu?!")
	assert.Equal(t, []string{"phí", "thẻ", "hdbank", "visa", "gold", "là", "bao", "nhiêu"}, tokens)

	assert.Empty(t, Tokenize("! ? ."))
	assert.Empty(t, Tokenize("a b c"), "single-rune tokens are dropped")
}

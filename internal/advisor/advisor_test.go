package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
	"github.com/hdbank-ai/card-advisor/internal/dialogue"
	"github.com/hdbank-ai/card-advisor/internal/intent"
	"github.com/hdbank-ai/card-advisor/internal/observability"
)

// ruleClassifier labels by simple substring rules, standing in for the
// semantic classifier so answers are deterministic.
type ruleClassifier struct{}

func (ruleClassifier) Classify(_ context.Context, text string) (intent.Label, error) {
	switch {
	case strings.Contains(text, "chào"):
		return intent.Greeting, nil
	case strings.Contains(text, "tạm biệt"):
		return intent.Farewell, nil
	case strings.Contains(text, "phí"):
		return intent.Fees, nil
	case strings.Contains(text, "hỗ trợ"), strings.Contains(text, "tư vấn"):
		return intent.Support, nil
	default:
		return intent.GeneralQuery, nil
	}
}

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string) (intent.Label, error) {
	return intent.GeneralQuery, errors.New("embedding service unavailable")
}

const visaGoldFees = "Phí thường niên: 500.000đ/năm"

func testCorpus() *corpus.Corpus {
	return &corpus.Corpus{Entries: []corpus.QAEntry{
		{
			Question: "xin chào",
			Answer:   "chào bạn",
			Context:  "greeting",
		},
		{
			Question: "tạm biệt",
			Answer:   "hẹn gặp lại",
			Context:  "farewell",
		},
		{
			Question: "phí thường niên thẻ hdbank visa gold là bao nhiêu",
			Answer:   visaGoldFees,
			Context:  "HDBank Visa Gold - fees",
			Metadata: map[string]string{"card_name": "HDBank Visa Gold"},
		},
		{
			Question: "thẻ hdbank petrolimex 4in1 là gì",
			Answer:   "Thẻ tích hợp 4 tính năng trên một thẻ duy nhất.",
			Context:  "HDBank Petrolimex 4in1 - card_description",
			Metadata: map[string]string{"card_name": "HDBank Petrolimex 4in1"},
		},
	}}
}

func newTestEngine(t *testing.T, classifier Classifier) *Engine {
	t.Helper()
	engine, err := New(
		observability.Nop(),
		testCorpus(),
		corpus.NewCatalog(corpus.DefaultCards),
		classifier,
		Config{Pick: func(int) int { return 0 }},
	)
	require.NoError(t, err)
	return engine
}

func TestAnswer_GreetingUsesPool(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "Xin chào!")
	assert.Equal(t, responsePools[intent.Greeting][0], got)

	require.Len(t, state.History, 1)
	assert.Equal(t, intent.Greeting, state.LastIntent)
}

func TestAnswer_FarewellUsesPool(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "Tạm biệt nhé")
	assert.Equal(t, responsePools[intent.Farewell][0], got)
}

func TestAnswer_FeesQuestionSetsCard(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "Phí thường niên thẻ HDBank Visa Gold là bao nhiêu?")
	assert.Equal(t, visaGoldFees, got)
	assert.Equal(t, "HDBank Visa Gold", state.CurrentCard)

	require.Len(t, state.History, 1)
	assert.Equal(t, "HDBank Visa Gold", state.History[0].Card)
	assert.Equal(t, intent.Fees, state.History[0].Intent)
}

func TestAnswer_SupportShowsCardMenu(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "Tôi cần hỗ trợ")
	assert.Contains(t, got, "1. Thẻ HDBank Vietjet Platinum")
	assert.Contains(t, got, "11. Thẻ HDBank Mastercard World")
	assert.Empty(t, state.CurrentCard)
	require.Len(t, state.History, 1)
}

func TestAnswer_SupportWithCardSkipsMenu(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "Tư vấn phí thẻ HDBank Visa Gold")
	assert.NotContains(t, got, "1. Thẻ")
	assert.Equal(t, "HDBank Visa Gold", state.CurrentCard)
}

func TestAnswer_NumericSelection(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "2")
	assert.Equal(t, "Thông tin về HDBank Petrolimex 4in1:\nThẻ tích hợp 4 tính năng trên một thẻ duy nhất.", got)
	assert.Equal(t, "HDBank Petrolimex 4in1", state.CurrentCard)

	// Selecting the same number again yields the same answer.
	again := engine.Answer(context.Background(), state, "2")
	assert.Equal(t, got, again)
	assert.Equal(t, "HDBank Petrolimex 4in1", state.CurrentCard)
}

func TestAnswer_NumericSelectionWithoutDescription(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	// Card 1 has no description entry in the test corpus.
	got := engine.Answer(context.Background(), state, "1")
	assert.Equal(t, "Xin lỗi, tôi không tìm thấy thông tin về thẻ HDBank Vietjet Platinum", got)
	assert.Equal(t, "HDBank Vietjet Platinum", state.CurrentCard)
}

func TestAnswer_NumericOutOfRange(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()
	state.CurrentCard = "HDBank Visa Gold"

	got := engine.Answer(context.Background(), state, "12")
	assert.Equal(t, "Số thứ tự không hợp lệ. Vui lòng chọn số từ 1 đến 11", got)
	assert.Equal(t, "HDBank Visa Gold", state.CurrentCard)
}

func TestAnswer_BelowThresholdFallsBack(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "thời tiết hôm nay ra sao")
	assert.Equal(t, fallbackResponse, got)

	require.Len(t, state.History, 1)
	assert.Equal(t, fallbackResponse, state.History[0].Bot)
}

func TestAnswer_FallbackCarriesCurrentCard(t *testing.T) {
	engine := newTestEngine(t, ruleClassifier{})
	state := dialogue.NewState()

	engine.Answer(context.Background(), state, "Phí thường niên thẻ HDBank Visa Gold là bao nhiêu?")
	require.Equal(t, "HDBank Visa Gold", state.CurrentCard)

	got := engine.Answer(context.Background(), state, "còn điều kiện thì sao")
	assert.Equal(t, fallbackResponse, got)
	require.Len(t, state.History, 2)
	assert.Equal(t, "HDBank Visa Gold", state.History[1].Card)
}

func TestAnswer_ClassifierErrorRecordsNothing(t *testing.T) {
	engine := newTestEngine(t, failingClassifier{})
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "xin chào")
	assert.Equal(t, internalErrorResponse, got)
	assert.Empty(t, state.History)
	assert.Empty(t, state.QuestionsAsked)
}

func TestAnswer_PickSelectsPoolEntry(t *testing.T) {
	engine, err := New(
		observability.Nop(),
		testCorpus(),
		corpus.NewCatalog(corpus.DefaultCards),
		ruleClassifier{},
		Config{Pick: func(n int) int { return n - 1 }},
	)
	require.NoError(t, err)
	state := dialogue.NewState()

	got := engine.Answer(context.Background(), state, "xin chào")
	pool := responsePools[intent.Greeting]
	assert.Equal(t, pool[len(pool)-1], got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "xin chào!", Normalize("  Xin Chào!  "))
	assert.Equal(t, "phí thẻ visa gold?", Normalize("Phí thẻ Visa Gold?"))
	assert.Equal(t, "ab", Normalize("a@#$%b"))
}

// Package ingest turns scraped card data into the question/answer corpus the
// advisor serves. It is an offline batch step; the engine treats its output
// as an opaque artifact.
package ingest

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
)

// CardData is one scraped card product.
type CardData struct {
	Description string `json:"description"`
	Features    struct {
		Benefits   []string `json:"benefits"`
		Gifts      []string `json:"gifts"`
		Privileges []string `json:"privileges"`
	} `json:"features"`
	TermsAndConditions struct {
		Conditions string `json:"conditions"`
		Fees       string `json:"fees"`
		Documents  string `json:"documents"`
	} `json:"terms_and_conditions"`
	FAQs     map[string]string `json:"faqs"`
	Metadata struct {
		CardName string `json:"card_name"`
		CardType string `json:"card_type"`
	} `json:"metadata"`
}

// SourceFile is the scraped-data artifact consumed by the generator.
type SourceFile struct {
	CardsData []CardData `json:"cards_data"`
}

// Generator expands card data into QA pairs with paraphrase variations and
// embellished answers. Randomness is injectable so output is reproducible.
type Generator struct {
	pick func(n int) int
}

// NewGenerator creates a generator. Pass nil to use the shared PRNG.
func NewGenerator(pick func(n int) int) *Generator {
	if pick == nil {
		pick = rand.Intn
	}
	return &Generator{pick: pick}
}

// greetingResponses seed the corpus so greeting turns retrieve well even
// before intent formatting kicks in.
var greetingResponses = map[string][]string{
	"greeting": {
		"Xin chào! Tôi là trợ lý HDBank, rất vui được giúp đỡ bạn.",
		"Chào bạn! Tôi có thể tư vấn gì về sản phẩm thẻ HDBank?",
		"Xin chào quý khách! Tôi có thể giúp gì cho bạn?",
		"Chào mừng bạn đến với HDBank! Bạn cần tư vấn về sản phẩm nào?",
	},
	"farewell": {
		"Cảm ơn bạn đã quan tâm đến sản phẩm của HDBank. Chúc bạn một ngày tốt lành!",
		"Rất vui được tư vấn cho bạn. Hẹn gặp lại bạn lần sau!",
		"Cảm ơn bạn đã chat với tôi. Nếu cần hỗ trợ thêm, hãy quay lại nhé!",
		"Tạm biệt và chúc bạn một ngày vui vẻ!",
	},
}

var greetingPatterns = []string{
	"xin chào", "chào", "hi", "hello", "hey",
	"chào buổi sáng", "chào buổi chiều", "chào buổi tối",
}

var farewellPatterns = []string{
	"tạm biệt", "goodbye", "bye", "bái bai",
	"cảm ơn", "thanks", "thank you",
}

// GreetingPairs generates greeting and farewell seed entries.
func (g *Generator) GreetingPairs() []corpus.QAEntry {
	var pairs []corpus.QAEntry

	for _, pattern := range greetingPatterns {
		pool := greetingResponses["greeting"]
		pairs = append(pairs, corpus.QAEntry{
			Question: pattern,
			Answer:   pool[g.pick(len(pool))],
			Context:  "greeting",
			Metadata: map[string]string{"type": "greeting"},
		})
	}

	for _, pattern := range farewellPatterns {
		pool := greetingResponses["farewell"]
		pairs = append(pairs, corpus.QAEntry{
			Question: pattern,
			Answer:   pool[g.pick(len(pool))],
			Context:  "farewell",
			Metadata: map[string]string{"type": "farewell"},
		})
	}

	return pairs
}

// CardPairs generates the base QA pairs for one card.
func (g *Generator) CardPairs(card CardData) []corpus.QAEntry {
	name := card.Metadata.CardName
	meta := map[string]string{
		"card_type": card.Metadata.CardType,
		"card_name": name,
	}

	pairs := []corpus.QAEntry{
		{
			Question: fmt.Sprintf("Thẻ %s là gì?", name),
			Answer:   card.Description,
			Context:  "card_description",
			Metadata: meta,
		},
		{
			Question: fmt.Sprintf("Có những ưu đãi gì khi dùng thẻ %s?", name),
			Answer:   strings.Join(card.Features.Gifts, " "),
			Context:  "card_benefits",
			Metadata: meta,
		},
	}

	if len(card.Features.Benefits) > 0 {
		lines := make([]string, len(card.Features.Benefits))
		for i, b := range card.Features.Benefits {
			lines[i] = "- " + b
		}
		pairs = append(pairs, corpus.QAEntry{
			Question: fmt.Sprintf("Quyền lợi và tính năng của thẻ %s là gì?", name),
			Answer:   strings.Join(lines, "\n"),
			Context:  "card_features",
			Metadata: meta,
		})
	}

	if card.TermsAndConditions.Conditions != "" {
		pairs = append(pairs, corpus.QAEntry{
			Question: fmt.Sprintf("Điều kiện mở thẻ %s là gì?", name),
			Answer:   card.TermsAndConditions.Conditions,
			Context:  "card_conditions",
			Metadata: meta,
		})
	}

	if card.TermsAndConditions.Fees != "" {
		pairs = append(pairs, corpus.QAEntry{
			Question: fmt.Sprintf("Phí và lãi suất của thẻ %s là bao nhiêu?", name),
			Answer:   card.TermsAndConditions.Fees,
			Context:  "card_fees",
			Metadata: meta,
		})
	}

	faqQuestions := make([]string, 0, len(card.FAQs))
	for q := range card.FAQs {
		faqQuestions = append(faqQuestions, q)
	}
	sort.Strings(faqQuestions)
	for _, q := range faqQuestions {
		pairs = append(pairs, corpus.QAEntry{
			Question: q,
			Answer:   card.FAQs[q],
			Context:  "card_faqs",
			Metadata: meta,
		})
	}

	return pairs
}

// answerPrefixes embellish answers per context tag.
var answerPrefixes = map[string][]string{
	"card_description": {
		"Để giải thích về thẻ này, ",
		"Tôi xin được chia sẻ rằng ",
		"Thẻ này có đặc điểm là ",
	},
	"card_benefits": {
		"Khi sử dụng thẻ này, bạn sẽ được ",
		"Thẻ mang đến cho bạn những ưu đãi sau: ",
		"Quyền lợi của chủ thẻ bao gồm ",
	},
	"card_conditions": {
		"Để đăng ký thẻ này, bạn cần đáp ứng: ",
		"Điều kiện phát hành thẻ bao gồm: ",
		"Yêu cầu cần có để mở thẻ là ",
	},
	"card_fees": {
		"Về phí và lãi suất, ",
		"Chi phí sử dụng thẻ bao gồm: ",
		"Thông tin về phí như sau: ",
	},
}

// EnhanceAnswer prepends a natural-language prefix for contexts that have one.
func (g *Generator) EnhanceAnswer(answer, context string) string {
	prefixes, ok := answerPrefixes[context]
	if !ok {
		return answer
	}
	return prefixes[g.pick(len(prefixes))] + answer
}

// questionReplacements paraphrase common question stems.
var questionReplacements = []struct {
	old  string
	news []string
}{
	{"là gì", []string{"như thế nào", "ra sao", "là như thế nào", "có thể giới thiệu về"}},
	{"có những", []string{"có các", "có những loại", "có các loại", "bao gồm những"}},
	{"bao nhiêu", []string{"là bao nhiêu", "là mấy", "mấy", "khoảng bao nhiêu"}},
	{"điều kiện", []string{"yêu cầu", "cần những gì", "cần đáp ứng điều kiện gì"}},
	{"cho tôi biết", []string{"vui lòng cho biết", "xin hỏi", "làm ơn cho biết"}},
	{"muốn hỏi", []string{"có thể cho tôi biết", "tôi muốn tìm hiểu về"}},
}

var politePrefixes = []string{"xin hỏi", "làm ơn cho", "vui lòng", "cho tôi hỏi"}

// Variations generates paraphrases of a question: stem replacements plus
// politeness prefixes, de-duplicated. The original question is always first.
func (g *Generator) Variations(question string) []string {
	variations := []string{question}
	lowered := strings.ToLower(question)

	for _, r := range questionReplacements {
		if strings.Contains(lowered, r.old) {
			for _, repl := range r.news {
				variations = append(variations, strings.ReplaceAll(lowered, r.old, repl))
			}
		}
	}

	base := append([]string(nil), variations...)
	for _, variant := range base {
		alreadyPolite := false
		for _, p := range politePrefixes {
			if strings.Contains(strings.ToLower(variant), p) {
				alreadyPolite = true
				break
			}
		}
		if alreadyPolite {
			continue
		}
		for _, prefix := range politePrefixes {
			variations = append(variations, prefix+" "+variant)
		}
	}

	seen := make(map[string]bool, len(variations))
	out := variations[:0]
	for _, v := range variations {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Expand produces the full corpus entry list for one card: base pairs with
// enhanced answers, fanned out over question variations.
func (g *Generator) Expand(card CardData) []corpus.QAEntry {
	var out []corpus.QAEntry
	for _, qa := range g.CardPairs(card) {
		enhanced := g.EnhanceAnswer(qa.Answer, qa.Context)
		for _, variant := range g.Variations(qa.Question) {
			out = append(out, corpus.QAEntry{
				Question: variant,
				Answer:   enhanced,
				Context:  qa.Context,
				Metadata: qa.Metadata,
			})
		}
	}
	return out
}

// BuildResult reports what a corpus build produced.
type BuildResult struct {
	Cards   int
	QAPairs int
}

// Build reads scraped card data, expands it into the QA corpus, and writes
// the corpus artifact. progress, if non-nil, is called once per card.
func (g *Generator) Build(sourcePath, outPath string, progress func()) (*BuildResult, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read card data: %w", err)
	}

	var src SourceFile
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse card data: %w", err)
	}

	all := g.GreetingPairs()
	for _, card := range src.CardsData {
		all = append(all, g.Expand(card)...)
		if progress != nil {
			progress()
		}
	}

	doc := struct {
		DatasetInfo corpus.DatasetInfo `json:"dataset_info"`
		QAPairs     []corpus.QAEntry   `json:"qa_pairs"`
	}{
		DatasetInfo: corpus.DatasetInfo{
			Name:         "HDBank Cards QA Dataset",
			Version:      "1.0",
			Description:  "Question-Answer pairs about HDBank credit cards",
			Language:     "vi",
			TotalQAPairs: len(all),
		},
		QAPairs: all,
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal corpus: %w", err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	return &BuildResult{Cards: len(src.CardsData), QAPairs: len(all)}, nil
}

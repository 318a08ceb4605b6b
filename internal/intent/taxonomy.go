// Package intent classifies utterance intent using trigger-phrase rules with
// a semantic-similarity fallback.
package intent

// Label is a coarse category describing the purpose of an utterance.
type Label string

const (
	Greeting     Label = "greeting"
	Farewell     Label = "farewell"
	CardInfo     Label = "card_info"
	Benefits     Label = "benefits"
	Requirements Label = "requirements"
	Fees         Label = "fees"
	Support      Label = "support"
	GeneralQuery Label = "general_query"
	MultiIntent  Label = "multi_intent"
)

// Taxonomy maps intent labels to trigger phrases and declares which intent
// combinations collapse to multi_intent. Declaration order is significant:
// it fixes the tie-break both for combination matching and phrase scoring.
type Taxonomy struct {
	Intents      []IntentPatterns
	Combinations [][]Label
}

// IntentPatterns is one intent with its trigger phrases.
type IntentPatterns struct {
	Label    Label
	Patterns []string
}

// Default returns the fixed card-advisor taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		Intents: []IntentPatterns{
			{Greeting, []string{
				"xin chào", "chào", "hi", "hello", "hey", "chào bạn",
			}},
			{Farewell, []string{
				"tạm biệt", "goodbye", "bye", "cảm ơn", "hẹn gặp lại",
			}},
			{CardInfo, []string{
				"thẻ", "hdbank", "visa", "jcb", "mastercard",
				"thông tin", "loại thẻ", "sản phẩm",
			}},
			{Benefits, []string{
				"lợi ích", "ưu đãi", "quyền lợi", "tính năng",
				"được gì", "có những gì", "điểm thưởng", "hoàn tiền",
				"miễn phí", "chiết khấu",
			}},
			{Requirements, []string{
				"yêu cầu", "điều kiện", "cần gì", "thủ tục",
				"giấy tờ", "duyệt", "mở thẻ", "đăng ký", "làm thẻ",
				"thời gian", "bao lâu",
			}},
			{Fees, []string{
				"phí", "lãi suất", "chi phí", "trả góp", "phạt",
				"thường niên", "phí phạt", "trả chậm", "trễ hạn",
				"bao nhiêu",
			}},
			{Support, []string{
				"giúp đỡ", "hỗ trợ", "tư vấn", "hướng dẫn",
				"cần hỗ trợ", "muốn biết",
			}},
		},
		Combinations: [][]Label{
			{Benefits, Fees},
			{Requirements, Benefits},
			{CardInfo, Benefits},
			{CardInfo, Fees},
		},
	}
}

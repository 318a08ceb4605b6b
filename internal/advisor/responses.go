package advisor

import (
	"fmt"
	"strings"

	"github.com/hdbank-ai/card-advisor/internal/intent"
)

// Fixed user-visible strings. Everything shown to the user is natural
// Vietnamese; no internal identifiers leak out.
const (
	fallbackResponse      = "Xin lỗi, tôi không hiểu câu hỏi của bạn."
	internalErrorResponse = "Xin lỗi, hệ thống đang gặp sự cố. Vui lòng thử lại sau."
	askCardResponse       = "Bạn muốn tìm hiểu về thẻ nào? Vui lòng chọn số thứ tự hoặc tên thẻ."
)

// responsePools holds the fixed per-intent response pools. Greeting and
// farewell answers replace the retrieved answer entirely.
var responsePools = map[intent.Label][]string{
	intent.Greeting: {
		"Xin chào! Tôi là trợ lý HDBank, rất vui được giúp đỡ bạn.",
		"Chào bạn! Tôi có thể tư vấn gì về sản phẩm thẻ HDBank?",
		"Xin chào quý khách! Tôi có thể giúp gì cho bạn?",
		"Chào mừng bạn đến với HDBank! Bạn cần tư vấn về sản phẩm nào?",
	},
	intent.Farewell: {
		"Cảm ơn bạn đã quan tâm đến sản phẩm của HDBank. Chúc bạn một ngày tốt lành!",
		"Rất vui được tư vấn cho bạn. Hẹn gặp lại bạn lần sau!",
		"Cảm ơn bạn đã chat với tôi. Nếu cần hỗ trợ thêm, hãy quay lại nhé!",
		"Tạm biệt và chúc bạn một ngày vui vẻ!",
	},
}

// supportPhrases short-circuit to the card menu when no card is named.
var supportPhrases = []string{"cần hỗ trợ", "tư vấn", "giúp đỡ"}

// cardMenu renders the fixed multi-line menu listing every catalog card.
func cardMenu(cards []string) string {
	var b strings.Builder
	b.WriteString("Xin chào! Tôi có thể tư vấn cho bạn về các loại thẻ sau:\n")
	for i, card := range cards {
		fmt.Fprintf(&b, "%d. Thẻ %s\n", i+1, card)
	}
	b.WriteString("\nBạn có thể chọn số thứ tự thẻ hoặc hỏi trực tiếp về thẻ bạn quan tâm.")
	return b.String()
}

// invalidNumber formats the out-of-range selection message.
func invalidNumber(catalogSize int) string {
	return fmt.Sprintf("Số thứ tự không hợp lệ. Vui lòng chọn số từ 1 đến %d", catalogSize)
}

// cardInfo formats a direct card-description answer.
func cardInfo(cardName, description string) string {
	return fmt.Sprintf("Thông tin về %s:\n%s", cardName, description)
}

// cardNotFound is returned when a valid selection has no description entry.
func cardNotFound(cardName string) string {
	return fmt.Sprintf("Xin lỗi, tôi không tìm thấy thông tin về thẻ %s", cardName)
}

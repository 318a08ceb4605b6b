package corpus

import "strings"

// Catalog is the ordered list of known card names. Order is fixed and
// defines the numeric menu mapping 1..N.
type Catalog struct {
	cards []string
	lower []string
}

// DefaultCards is the HDBank card lineup served by the advisor.
var DefaultCards = []string{
	"HDBank Vietjet Platinum",
	"HDBank Petrolimex 4in1",
	"HDBank Vietjet Classic",
	"HDBank Priority Visa Signature",
	"HDBank JCB Ultimate",
	"HDBank Best Friend Forever",
	"HDBank Visa Gold",
	"HDBank Visa Classic",
	"HDBank Mastercard Standard",
	"HDBank Mastercard Platinum",
	"HDBank Mastercard World",
}

// NewCatalog creates a catalog from an ordered card-name list.
func NewCatalog(cards []string) *Catalog {
	lower := make([]string, len(cards))
	for i, c := range cards {
		lower[i] = strings.ToLower(c)
	}
	return &Catalog{cards: append([]string(nil), cards...), lower: lower}
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Cards returns the card names in catalog order.
func (c *Catalog) Cards() []string {
	return append([]string(nil), c.cards...)
}

// ByNumber returns the card at 1-based position n, or false if out of range.
func (c *Catalog) ByNumber(n int) (string, bool) {
	if n < 1 || n > len(c.cards) {
		return "", false
	}
	return c.cards[n-1], true
}

// FindMention returns the first catalog card whose name occurs as a
// case-insensitive substring of text, in catalog order.
func (c *Catalog) FindMention(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for i, name := range c.lower {
		if strings.Contains(lowered, name) {
			return c.cards[i], true
		}
	}
	return "", false
}

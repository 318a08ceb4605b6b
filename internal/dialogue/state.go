// Package dialogue tracks per-session conversation state.
package dialogue

import (
	"strconv"
	"strings"
	"time"

	"github.com/hdbank-ai/card-advisor/internal/corpus"
	"github.com/hdbank-ai/card-advisor/internal/intent"
)

// MaxHistory bounds the turn history kept per session.
const MaxHistory = 5

// Turn is one recorded user/bot exchange.
type Turn struct {
	User      string
	Bot       string
	Intent    intent.Label
	Card      string
	Timestamp time.Time
}

// State is the mutable memory of one conversation. It must only be mutated
// by one turn at a time; the session manager serializes access.
type State struct {
	CurrentCard    string
	LastIntent     intent.Label
	QuestionsAsked []string
	History        []Turn

	now func() time.Time
}

// NewState creates an empty dialogue state.
func NewState() *State {
	return &State{now: time.Now}
}

// Resolution is the outcome of resolving a card reference.
type Resolution struct {
	Card     string
	ByNumber bool
	// Invalid is set when a leading number fell outside the catalog range.
	Invalid bool
}

// ResolveCardReference resolves which card an utterance refers to. A leading
// integer token selects by catalog position; otherwise the first catalog name
// occurring as a case-insensitive substring wins; otherwise the current card
// carries over from the prior turn without mutation.
func (s *State) ResolveCardReference(text string, catalog *corpus.Catalog) Resolution {
	if n, ok := LeadingNumber(text); ok {
		card, valid := catalog.ByNumber(n)
		if !valid {
			return Resolution{Invalid: true}
		}
		s.CurrentCard = card
		return Resolution{Card: card, ByNumber: true}
	}

	if card, ok := catalog.FindMention(text); ok {
		s.CurrentCard = card
		return Resolution{Card: card}
	}

	return Resolution{Card: s.CurrentCard}
}

// RecordTurn appends a turn, evicting the oldest once history exceeds
// MaxHistory. FIFO eviction, plain queue semantics.
func (s *State) RecordTurn(userText, botText string, label intent.Label, card string) {
	s.History = append(s.History, Turn{
		User:      userText,
		Bot:       botText,
		Intent:    label,
		Card:      card,
		Timestamp: s.now(),
	})
	if len(s.History) > MaxHistory {
		s.History = s.History[1:]
	}

	s.LastIntent = label
	s.QuestionsAsked = append(s.QuestionsAsked, userText)
}

// LeadingNumber parses a leading integer token from text, e.g. "2" or
// "3 thẻ đó". Returns false when the first token is not an integer.
func LeadingNumber(text string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

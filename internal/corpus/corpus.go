// Package corpus loads the question/answer corpus and the card catalog.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyCorpus indicates the corpus file contained no QA entries.
var ErrEmptyCorpus = errors.New("corpus has no entries")

// QAEntry is one question/answer pair with its context tag and metadata.
// Entries are immutable after load; identity is the position in the corpus.
type QAEntry struct {
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Context  string            `json:"context"`
	Metadata map[string]string `json:"metadata"`
}

// CardName returns the card name from metadata, or "" if absent.
func (e QAEntry) CardName() string {
	return e.Metadata["card_name"]
}

// DatasetInfo describes the corpus artifact.
type DatasetInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	TotalQAPairs int    `json:"total_qa_pairs"`
}

// Corpus is the ordered, read-only set of QA entries shared by all sessions.
type Corpus struct {
	Info    DatasetInfo
	Entries []QAEntry
}

// Load reads and validates a corpus JSON file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates corpus JSON.
func Parse(data []byte) (*Corpus, error) {
	var doc struct {
		DatasetInfo DatasetInfo `json:"dataset_info"`
		QAPairs     []QAEntry   `json:"qa_pairs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus file: %w", err)
	}

	if len(doc.QAPairs) == 0 {
		return nil, ErrEmptyCorpus
	}

	for i, qa := range doc.QAPairs {
		if strings.TrimSpace(qa.Question) == "" {
			return nil, fmt.Errorf("corpus entry %d: empty question", i)
		}
		if strings.TrimSpace(qa.Answer) == "" {
			return nil, fmt.Errorf("corpus entry %d: empty answer", i)
		}
	}

	return &Corpus{Info: doc.DatasetInfo, Entries: doc.QAPairs}, nil
}

// Questions returns all corpus questions in corpus order.
func (c *Corpus) Questions() []string {
	qs := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		qs[i] = e.Question
	}
	return qs
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.Entries)
}

// CardDescription finds the description entry for a card: the first entry
// whose metadata card_name matches and whose context tag indicates a
// description. Returns false when no such entry exists.
func (c *Corpus) CardDescription(cardName string) (QAEntry, bool) {
	for _, e := range c.Entries {
		if e.CardName() == cardName && strings.Contains(e.Context, "description") {
			return e, true
		}
	}
	return QAEntry{}, false
}

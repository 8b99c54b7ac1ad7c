package chatbot

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed kb.yaml
var defaultKnowledgeBase []byte

// KnowledgeBase is the static Q&A table. It is not modified after load.
type KnowledgeBase struct {
	records []QARecord
}

func NewKnowledgeBase(records []QARecord) *KnowledgeBase {
	cp := make([]QARecord, len(records))
	copy(cp, records)
	return &KnowledgeBase{records: cp}
}

func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var records []QARecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return NewKnowledgeBase(records), nil
}

func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := ParseKnowledgeBase(defaultKnowledgeBase)
	if err != nil {
		panic(err)
	}
	return kb
}

// LoadKnowledgeBase reads the table at path, or the embedded default when path is empty.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultKnowledgeBase(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return ParseKnowledgeBase(data)
}

func (kb *KnowledgeBase) Records() []QARecord {
	out := make([]QARecord, len(kb.records))
	copy(out, kb.records)
	return out
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.records)
}

func (kb *KnowledgeBase) Classify(utterance string) Match {
	return Classify(utterance, kb.records)
}

// Lint reports records the matcher can never pick or will pick poorly.
func (kb *KnowledgeBase) Lint() []string {
	var problems []string
	seen := make(map[string]int)
	for i, rec := range kb.records {
		q := normalize(rec.Question)
		if q == "" {
			problems = append(problems, fmt.Sprintf("record %d: empty question", i))
		}
		if strings.TrimSpace(rec.Answer) == "" {
			problems = append(problems, fmt.Sprintf("record %d: empty answer", i))
		}
		if len(rec.Keywords) == 0 {
			problems = append(problems, fmt.Sprintf("record %d: no keywords", i))
		}
		if q == "" {
			continue
		}
		if first, dup := seen[q]; dup {
			problems = append(problems, fmt.Sprintf("record %d: duplicate question of record %d", i, first))
			continue
		}
		seen[q] = i
	}
	return problems
}

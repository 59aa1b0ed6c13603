package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceItem is one question/answer pair from the source corpus
type SourceItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Document is a knowledge record ready for embedding
type Document struct {
	Category string
	Content  string
}

const utf8BOM = "\ufeff"

// ParseSourceDocument decodes one source file into knowledge documents.
// A file holds either a single object or an array of objects; items
// missing a question or an answer are skipped. An empty file yields no
// documents and no error.
func ParseSourceDocument(data []byte, category string) ([]Document, error) {
	text := strings.TrimPrefix(string(data), utf8BOM)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var items []SourceItem
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, fmt.Errorf("failed to parse source document: %w", err)
		}
	} else {
		var item SourceItem
		if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
			return nil, fmt.Errorf("failed to parse source document: %w", err)
		}
		items = []SourceItem{item}
	}

	var docs []Document
	for _, item := range items {
		if item.Question == "" || item.Answer == "" {
			continue
		}
		docs = append(docs, Document{
			Category: category,
			Content:  BuildContent(item.Question, item.Answer),
		})
	}

	return docs, nil
}

// BuildContent joins a question and answer into the stored knowledge text
func BuildContent(question, answer string) string {
	return fmt.Sprintf("[질문]\n%s\n\n[답변]\n%s", question, answer)
}

// GuessCategory derives the medical department from a source key.
// Source corpora are organized in department folders; anything
// unrecognized falls back to general medicine.
func GuessCategory(key string) string {
	switch {
	case strings.Contains(key, "내과"):
		return "내과"
	case strings.Contains(key, "신경"):
		return "신경과"
	case strings.Contains(key, "외과"):
		return "외과"
	case strings.Contains(key, "피부"):
		return "피부과"
	default:
		return "일반의학"
	}
}

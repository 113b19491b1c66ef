package generation

import (
	"fmt"
	"strings"

	"github.com/kk7188048/Rag-NewsArticles/pkg/store"
)

const answerPromptTemplate = `You are a helpful and friendly news assistant.
Your main job is to answer user questions using the provided news articles.
At the same time, be conversational and interactive:
- If the user greets you (e.g., "hello", "hi"), greet them back warmly.
- If the user says "thanks" or similar, respond politely.
- If the user asks casual small talk (like "how are you?"), give a short friendly reply.
- For news-related questions, answer using only the provided articles.

Context from news articles:
%s

User Question: %s

Instructions:
- Use only information from the provided news articles for answering news-related questions.
- If the information isn't in the articles, say so clearly and diplomatically.
- Be concise but informative.
- Mention relevant sources when appropriate.
- If multiple perspectives exist, present them fairly.
- Always keep a friendly and professional tone.

Answer:
`

// BuildContextBlock tags every retrieved snippet with its source so the
// model can attribute statements. Order follows retrieval rank.
func BuildContextBlock(docs []*store.RetrievedDocument) string {
	if len(docs) == 0 {
		return "(no relevant articles found)"
	}

	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("Source %d (%s): %s", i+1, doc.Metadata.Source, doc.Document)
	}
	return strings.Join(blocks, "\n\n")
}

// BuildAnswerPrompt assembles the grounded prompt for one query.
func BuildAnswerPrompt(query string, docs []*store.RetrievedDocument) string {
	return fmt.Sprintf(answerPromptTemplate, BuildContextBlock(docs), query)
}

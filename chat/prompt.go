package chat

import "strings"

// systemPrompt carries the bot persona and the grounding instruction.
const systemPrompt = "You are YC Bot, an assistant answering questions about Y Combinator. " +
	"Use the following pieces of retrieved context to answer the question. " +
	"If the context does not contain the answer, say that you don't know. " +
	"Keep the answer concise, three sentences maximum."

// BuildPrompt assembles the completion prompt: the persona instruction, the
// retrieved chunk texts in retrieval order, the optional labeled transcript
// and the question itself.
func BuildPrompt(question string, chunks []ChunkResult, history []string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)

	if len(chunks) > 0 {
		sb.WriteString("\n\nContext:\n")
		for i, chunk := range chunks {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(chunk.Content)
		}
	}

	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		sb.WriteString(strings.Join(history, "\n"))
	}

	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}

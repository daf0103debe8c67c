package llm

import (
	"fmt"
	"strings"

	"inkwell/internal/domain/models"
)

// Prompt rendering is deterministic and pure: the same persona and
// context always produce the same string.

const globalSystemRules = `### GLOBAL SYSTEM RULES (APPLY TO ALL AGENTS)
1. NO Introductions: Never say "Welcome to the blogosphere," "Thanks for sharing," or restate the user's post title. Just start talking.
2. NO Summaries: Do not summarize what the user just wrote. They know what they wrote.
3. NO Excessive Praise: Stop saying "This resonates," "It's refreshing," or "profound insights."
4. Vary Sentence Length: Do not write paragraphs of equal length.
5. NO Unsolicited Advice: Do not try to "fix" the user's life or offer solutions unless they specifically ask for advice. Instead, relate to them, share a similar experience, or offer a perspective/observation.
6. Be Natural: Write like a real internet comment. It's okay to just react to one specific part.`

// RenderCommentPrompt builds the system prompt for a persona commenting
// on a freshly published post.
func RenderCommentPrompt(persona *models.Persona) string {
	var b strings.Builder

	writeIdentity(&b, persona)
	b.WriteString("\n\n")
	writeStyleGuide(&b, persona)
	b.WriteString("\n\n")
	b.WriteString(globalSystemRules)
	b.WriteString("\n\n")
	writeOneShotExample(&b, persona)
	b.WriteString("\n\n---\n\n")
	b.WriteString(`### TASK
Write a natural, engaging blog comment responding to the post below.
- You are a reader, not a mentor or coach.
- Do not force keywords.
- React to the content as your persona would.
- Do not use markdown formatting (no bold/italic) - write plain text only.`)

	return b.String()
}

// RenderReplyPrompt builds the system prompt for a persona replying
// inside an existing thread. The prior turns replace the one-shot
// example as conversational grounding.
func RenderReplyPrompt(persona *models.Persona, post *models.Post, thread []models.Comment) string {
	var b strings.Builder

	writeIdentity(&b, persona)
	b.WriteString("\n\n")
	writeStyleGuide(&b, persona)
	b.WriteString("\n\n")
	b.WriteString(globalSystemRules)
	b.WriteString("\n\n### CONVERSATION SO FAR\n")
	fmt.Fprintf(&b, "Blog Post Title: %s\n\n", post.Title)

	for _, comment := range thread {
		fmt.Fprintf(&b, "%s: %s\n\n", speakerLabel(persona, &comment), comment.Content)
	}

	b.WriteString("---\n\n")
	b.WriteString(`### TASK
The blog author just replied to you. Write your reply to their last message.
- Stay in character and keep the thread's tone.
- Reply to what they actually said, not to the original post again.
- Keep it short - a reply, not an essay.
- Do not use markdown formatting (no bold/italic) - write plain text only.`)

	return b.String()
}

// RenderPostContent formats the post as the user message of a comment
// generation call.
func RenderPostContent(post *models.Post) string {
	return fmt.Sprintf("Blog Post Title: %s\n\n%s", post.Title, post.Body)
}

func writeIdentity(b *strings.Builder, persona *models.Persona) {
	b.WriteString("### ROLE & IDENTITY\n")
	fmt.Fprintf(b, "Name: %s\n", persona.Name)
	fmt.Fprintf(b, "Backstory: %s", persona.Backstory)
	if persona.WritingStyle != nil && persona.WritingStyle.RoleplayInstruction != "" {
		fmt.Fprintf(b, "\nPrimary Instruction: %s", persona.WritingStyle.RoleplayInstruction)
	}
}

func writeStyleGuide(b *strings.Builder, persona *models.Persona) {
	style := persona.WritingStyle
	if style == nil {
		return
	}

	b.WriteString("### WRITING STYLE GUIDE\n")
	fmt.Fprintf(b, "Voice Attributes: %s\n", style.Voice)
	fmt.Fprintf(b, "Keyword Palette (use 0-2 of these max, and ONLY if natural): %s\n", strings.Join(style.Keywords, ", "))
	fmt.Fprintf(b, "Sentence Structure: %s\n", style.SentenceStructure)
	fmt.Fprintf(b, "Topic Focus: %s\n\n", style.FocusTopics)
	b.WriteString("### NEGATIVE CONSTRAINTS (DO NOT DO THIS)\n")
	b.WriteString(style.NegativeConstraints)
}

func writeOneShotExample(b *strings.Builder, persona *models.Persona) {
	if persona.WritingStyle == nil || persona.WritingStyle.ExampleResponse == "" {
		return
	}

	b.WriteString("### ONE-SHOT EXAMPLE (COPY THIS STYLE)\n")
	b.WriteString(`User Post: "I feel lost after quitting my job."` + "\n")
	fmt.Fprintf(b, "Your Response: %q", persona.WritingStyle.ExampleResponse)
}

// speakerLabel names a thread participant for the conversation
// transcript. The persona's own past comments are labeled with its name
// so the model recognizes its turns; everything else is the author.
func speakerLabel(persona *models.Persona, comment *models.Comment) string {
	author := comment.Author
	if author.IsAgent() && author.ID == persona.Ref {
		return persona.Name + " (you)"
	}
	if author.IsAgent() {
		return "Another reader"
	}
	return "Blog author"
}

package llm

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"strings"

	"resume-parser/internal/profile"
)

var (
	//go:embed prompts/extract_system.txt
	extractSystemPrompt string
	//go:embed prompts/repair.txt
	repairPrompt string
)

// Message is a provider-neutral chat message.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt returns the extraction instructions followed by the profile
// JSON Schema document.
func SystemPrompt() string {
	return strings.TrimSpace(extractSystemPrompt) + "\n\nJSON schema:\n" + string(profile.JSONSchema())
}

// UserPrompt embeds the resume text verbatim after the field outline.
func UserPrompt(resumeText string) string {
	return "Extract the following fields: " + profile.FieldOutline() + "\n\nRESUME:\n" + resumeText
}

// BuildMessages returns the conversation for one extraction call. A repair
// call replays the previous answer and asks for a corrected one.
func BuildMessages(input ExtractInput) []Message {
	messages := []Message{
		{Role: RoleSystem, Content: SystemPrompt()},
		{Role: RoleUser, Content: UserPrompt(input.ResumeText)},
	}
	if !input.Repairing() {
		return messages
	}
	reason := strings.TrimSpace(input.RepairReason)
	if reason == "" {
		reason = "unknown"
	}
	return append(messages,
		Message{Role: RoleAssistant, Content: input.RepairRaw},
		Message{Role: RoleUser, Content: strings.TrimSpace(strings.ReplaceAll(repairPrompt, "{{REASON}}", reason))},
	)
}

// PromptHash identifies a rendered conversation in logs without exposing the
// resume text.
func PromptHash(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

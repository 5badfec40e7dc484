package llm

import (
	"strings"
	"testing"
)

func TestSystemPromptIncludesRulesAndSchema(t *testing.T) {
	system := SystemPrompt()
	for _, want := range []string{
		"You are a resume information extraction engine.",
		"Return ONLY valid JSON that matches the provided JSON schema.",
		"Never invent employment or degrees",
		"JSON schema:",
		`"$schema": "http://json-schema.org/draft-07/schema#"`,
	} {
		if !strings.Contains(system, want) {
			t.Fatalf("expected %q in system prompt", want)
		}
	}
}

func TestUserPrompt(t *testing.T) {
	text := "  Jane Doe\n\tStaff Engineer  "
	got := UserPrompt(text)
	want := "Extract the following fields: basics{firstName,lastName,email,phone,address,linkedin,github,website}, " +
		"education[{school,degree,start,end}], experience[{company,title,start,end,bullets[]}], " +
		"projects[{name,description,skills[]}], skills[]\n\nRESUME:\n" + text
	if got != want {
		t.Fatalf("unexpected user prompt:\n got %q\nwant %q", got, want)
	}
}

func TestBuildMessages(t *testing.T) {
	plain := BuildMessages(ExtractInput{ResumeText: "resume"})
	if len(plain) != 2 || plain[0].Role != RoleSystem || plain[1].Role != RoleUser {
		t.Fatalf("unexpected messages %+v", plain)
	}

	repair := BuildMessages(ExtractInput{ResumeText: "resume", RepairRaw: `{"a":1}`})
	if len(repair) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(repair))
	}
	if repair[2].Role != RoleAssistant || repair[2].Content != `{"a":1}` {
		t.Fatalf("unexpected replayed answer %+v", repair[2])
	}
	if strings.Contains(repair[3].Content, "{{REASON}}") || !strings.Contains(repair[3].Content, "Problems: unknown") {
		t.Fatalf("expected reason placeholder to be filled, got %q", repair[3].Content)
	}
}

func TestPromptHashDeterministic(t *testing.T) {
	hash1 := PromptHash(BuildMessages(ExtractInput{ResumeText: "resume text"}))
	hash2 := PromptHash(BuildMessages(ExtractInput{ResumeText: "resume text"}))
	if hash1 != hash2 {
		t.Fatalf("expected deterministic prompt hash, got %q and %q", hash1, hash2)
	}
	if hash1 == PromptHash(BuildMessages(ExtractInput{ResumeText: "other text"})) {
		t.Fatalf("expected prompt hash to change when input changes")
	}
}

package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yashp/portfolio-assistant/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(
		"what does yash build",
		[]string{"Yash builds web apps.", "He prefers Go backends."},
		[]model.ChatMessage{
			{Role: model.RoleUser, Content: "hi"},
			{Role: model.RoleAssistant, Content: "hello!"},
		},
	)
	require.Contains(t, prompt, "CONTEXT:")
	require.Contains(t, prompt, "- Yash builds web apps.")
	require.Contains(t, prompt, "- He prefers Go backends.")
	require.Contains(t, prompt, "CONVERSATION:")
	require.Contains(t, prompt, "user: hi")
	require.Contains(t, prompt, "assistant: hello!")
	require.True(t, strings.HasSuffix(prompt, "VISITOR: what does yash build"))
}

func TestBuildPromptEmptyContextAndHistory(t *testing.T) {
	prompt := BuildPrompt("anything", nil, nil)
	require.Contains(t, prompt, "(none)")
	require.NotContains(t, prompt, "CONVERSATION:")
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCompletionClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeCompletionClient) Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGatekeeperClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     Verdict
	}{
		{"affirmative", "YES", nil, VerdictPresentation},
		{"affirmative lowercase", "yes", nil, VerdictPresentation},
		{"affirmative with whitespace", "  YES\n", nil, VerdictPresentation},
		{"negative", "NO", nil, VerdictNotPresentation},
		{"negative lowercase", "no\n", nil, VerdictNotPresentation},
		{"verbose answer fails open", "YES, this is a presentation.", nil, VerdictInconclusive},
		{"garbage fails open", "maybe?", nil, VerdictInconclusive},
		{"model error fails open", "", errors.New("rate limited"), VerdictInconclusive},
		{"timeout fails open", "", context.DeadlineExceeded, VerdictInconclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeCompletionClient{response: tt.response, err: tt.err}
			gk := NewGatekeeper(llm, NewPromptBuilder(), 2000)

			verdict := gk.Classify(context.Background(), "slide deck content")
			assert.Equal(t, tt.want, verdict)
		})
	}
}

func TestGatekeeperTruncatesPrompt(t *testing.T) {
	llm := &fakeCompletionClient{response: "YES"}
	gk := NewGatekeeper(llm, NewPromptBuilder(), 50)

	long := strings.Repeat("a", 500)
	gk.Classify(context.Background(), long)

	assert.Contains(t, llm.lastPrompt, strings.Repeat("a", 50))
	assert.NotContains(t, llm.lastPrompt, strings.Repeat("a", 51))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abcdef", 2))
	assert.Equal(t, "hé", truncateRunes("héllo", 2), "limit counts runes, not bytes")
}

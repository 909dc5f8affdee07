package cmd

import (
	"testing"
)

func resetSummarizeFlags() {
	summarizeInput = ""
	summarizeModel = ""
	summarizeHost = ""
	summarizeMaxTokens = 0
}

func TestSummarizeCommand_MissingDocument(t *testing.T) {
	isolateConfig(t)
	t.Cleanup(resetSummarizeFlags)

	_, err := runCommand(t, "summarize", "--out", t.TempDir())
	if err == nil {
		t.Fatal("summarize without a fetched document should error")
	}
}

func TestSummarizeCommand_InvalidHost(t *testing.T) {
	isolateConfig(t)
	t.Cleanup(resetSummarizeFlags)

	dir := t.TempDir()
	input := writeTestDocument(t, dir)

	// Nothing listens here, so every project group fails and the command
	// reports the total failure while still writing the summary document.
	_, err := runCommand(t, "summarize",
		"-i", input, "--out", dir, "--host", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("summarize with unreachable host should error when all groups fail")
	}
}

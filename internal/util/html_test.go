package util

import (
	"strings"
	"testing"
)

func TestStripHTML_Basic(t *testing.T) {
	text, err := StripHTML("<html><body><p>Hello</p><p>world</p></body></html>")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Hello") || !strings.Contains(text, "world") {
		t.Errorf("expected both paragraphs, got %q", text)
	}
}

func TestStripHTML_SkipsNonContent(t *testing.T) {
	input := `<html><body>
		<p>Visible text.</p>
		<script>var hidden = 1;</script>
		<style>.hidden { display: none; }</style>
		<noscript>Enable JavaScript</noscript>
		<iframe src="https://example.com"></iframe>
	</body></html>`

	text, err := StripHTML(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Visible text.") {
		t.Errorf("expected visible text, got %q", text)
	}
	for _, hidden := range []string{"var hidden", "display: none", "Enable JavaScript"} {
		if strings.Contains(text, hidden) {
			t.Errorf("non-content %q leaked into %q", hidden, text)
		}
	}
}

func TestStripHTML_PlainText(t *testing.T) {
	text, err := StripHTML("Just plain text without markup")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(text, "Just plain text without markup") {
		t.Errorf("expected text preserved, got %q", text)
	}
}

func TestStripHTML_Empty(t *testing.T) {
	text, err := StripHTML("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.TrimSpace(text) != "" {
		t.Errorf("expected empty output, got %q", text)
	}
}

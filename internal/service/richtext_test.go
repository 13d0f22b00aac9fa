package service

import (
	"strings"
	"testing"
)

func TestSanitizeHTMLStripsScripts(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">Hello<script>alert(1)</script></p>`)
	if strings.Contains(out, "script") || strings.Contains(out, "onclick") {
		t.Fatalf("expected unsafe markup removed, got %q", out)
	}
	if !strings.Contains(out, "Hello") {
		t.Fatalf("expected text kept, got %q", out)
	}
}

func TestSanitizeHTMLKeepsVideoEmbeds(t *testing.T) {
	out := SanitizeHTML(`<iframe src="https://www.youtube.com/embed/abc"></iframe><iframe src="https://evil.example/x"></iframe>`)
	if !strings.Contains(out, "youtube.com/embed/abc") {
		t.Fatalf("expected youtube embed kept, got %q", out)
	}
	if strings.Contains(out, "evil.example") {
		t.Fatalf("expected foreign iframe src dropped, got %q", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Title\n\nSome **bold** text <script>x</script>")
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("unexpected markdown output %q", out)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("expected script removed, got %q", out)
	}
	if RenderMarkdown("   ") != "" {
		t.Fatalf("expected empty output for blank input")
	}
}

func TestSanitizeHTMLRestrictsInlineStyles(t *testing.T) {
	out := SanitizeHTML(`<p style="position:fixed;top:0;left:0;width:100%;height:100%;background:url(https://evil.example/x.png)">hi</p>`)
	if strings.Contains(out, "position") || strings.Contains(out, "evil.example") || strings.Contains(out, "style") {
		t.Fatalf("expected layout styles stripped, got %q", out)
	}
	if !strings.Contains(out, "hi") {
		t.Fatalf("expected text kept, got %q", out)
	}

	out = SanitizeHTML(`<span style="color: red; position: absolute">note</span>`)
	if !strings.Contains(out, "color") || strings.Contains(out, "position") {
		t.Fatalf("expected only color kept, got %q", out)
	}
}

func TestSanitizeHTMLKeepsIframeSandbox(t *testing.T) {
	out := SanitizeHTML(`<iframe src="https://www.youtube.com/embed/abc" sandbox="allow-scripts"></iframe>`)
	if !strings.Contains(out, `sandbox="allow-scripts"`) {
		t.Fatalf("expected sandbox attribute kept, got %q", out)
	}
}

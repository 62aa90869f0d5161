package charts

import (
	"testing"

	"github.com/terraincognita07/paycharts/internal/models"
)

func TestSafeSourceURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   string
		linked bool
	}{
		{raw: "https://example.org/ons", want: "https://example.org/ons", linked: true},
		{raw: "  http://example.org/ons ", want: "http://example.org/ons", linked: true},
		{raw: "/reports/q3", want: "/reports/q3", linked: true},
		{raw: "reports/q3#table", want: "reports/q3#table", linked: true},
		{raw: "javascript:alert(1)"},
		{raw: "JavaScript:alert(1)"},
		{raw: "data:text/html,<script>alert(1)</script>"},
		{raw: "mailto:research@example.org"},
		{raw: "https:///missing-host"},
		{raw: "java\tscript:alert(1)"},
		{raw: ""},
	}

	for _, test := range tests {
		got, linked := safeSourceURL(test.raw)
		if got != test.want || linked != test.linked {
			t.Fatalf("safeSourceURL(%q) = %q, %v; want %q, %v", test.raw, got, linked, test.want, test.linked)
		}
	}
}

func TestRenderFooterDropsUnsafeSourceLink(t *testing.T) {
	t.Parallel()

	root := mustRender(t, models.ChartBar, models.ChartOptions{
		SourceText: "ONS",
		SourceURL:  "javascript:alert(document.cookie)",
	}, View{Width: desktopWidth})

	if root.First("chart-source-link") != nil {
		t.Fatal("did not expect a hyperlink for a javascript source url")
	}
	if got := root.First("chart-source-text").TextContent(); got != "Source: ONS" {
		t.Fatalf("expected plain source text, got %q", got)
	}
}

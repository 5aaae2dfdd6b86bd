package results

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pestel/pkg/analysis"
)

func TestFormat_EmptyState(t *testing.T) {
	cases := map[string]*analysis.Result{
		"nil":        nil,
		"empty":      {Summary: ""},
		"whitespace": {Summary: "  \n\n\t"},
	}
	for name, result := range cases {
		t.Run(name, func(t *testing.T) {
			blocks, ok := Format(result)
			if ok {
				t.Fatalf("expected empty state, got %v", blocks)
			}
			if blocks != nil {
				t.Fatalf("expected nil blocks, got %v", blocks)
			}
		})
	}
}

func TestFormat_DropsBlankLinesAndKeepsPartialMatchesAsBullets(t *testing.T) {
	result := &analysis.Result{Summary: "Summary\nGovernment Policies: strong\n\nTax Regulations: weak"}

	got, ok := Format(result)
	if !ok {
		t.Fatalf("expected blocks")
	}
	want := []Block{
		{Kind: BlockHeading, Text: "Summary"},
		{Kind: BlockBullet, Text: "Government Policies: strong"},
		{Kind: BlockBullet, Text: "Tax Regulations: weak"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_StripsMarkdownBeforeMatching(t *testing.T) {
	result := &analysis.Result{Summary: "# 1. Summary\n**Political Stability**"}

	got, _ := Format(result)
	want := []Block{
		{Kind: BlockHeading, Text: "1. Summary"},
		{Kind: BlockHeading, Text: "Political Stability"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_ColonVariantsAreHeadings(t *testing.T) {
	result := &analysis.Result{Summary: "### **2. Political Factor Analysis**\n**Tax Regulations:**\n- GST applies at 18%."}

	got, _ := Format(result)
	want := []Block{
		{Kind: BlockHeading, Text: "2. Political Factor Analysis"},
		{Kind: BlockHeading, Text: "Tax Regulations:"},
		{Kind: BlockBullet, Text: "- GST applies at 18%."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_UnlistedFactorIsNotAHeading(t *testing.T) {
	got, _ := Format(&analysis.Result{Summary: "Global Trade Agreements"})
	if len(got) != 1 || got[0].IsHeading() {
		t.Fatalf("expected a single bullet, got %v", got)
	}
}

func TestFormat_HandlesCRLF(t *testing.T) {
	got, _ := Format(&analysis.Result{Summary: "Summary\r\n\r\nLine one\r\n"})
	want := []Block{
		{Kind: BlockHeading, Text: "Summary"},
		{Kind: BlockBullet, Text: "Line one"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	result := &analysis.Result{Summary: "Political Analysis Summary\n* point one\n* point two"}

	first, _ := Format(result)
	second, _ := Format(result)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("format not idempotent (-first +second):\n%s", diff)
	}
	if result.Summary != "Political Analysis Summary\n* point one\n* point two" {
		t.Fatalf("format mutated its input")
	}
}

func TestClean(t *testing.T) {
	cases := map[string]string{
		"  ## Summary ## ": "Summary",
		"**bold** text":    "bold text",
		"plain":            "plain",
	}
	for in, want := range cases {
		if got := Clean(in); got != want {
			t.Fatalf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

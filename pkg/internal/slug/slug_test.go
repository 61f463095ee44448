package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "mixed case sentence",
			input: "The Quick Brown Fox Jumps Over the Lazy Dog",
			want:  "the-quick-brown-fox-jumps-over-the-lazy-dog",
		},
		{
			name:  "tech blog title",
			input: "How to Deploy Go Apps on Kubernetes (2026 Edition)",
			want:  "how-to-deploy-go-apps-on-kubernetes-2026-edition",
		},
		{
			name:  "colon separated title",
			input: "Go: The Complete Developer Guide",
			want:  "go-the-complete-developer-guide",
		},
		{
			name:  "exclamation marks",
			input: "Getting Started!!",
			want:  "getting-started",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand",
			input: "Technology & Innovation",
			want:  "technology-innovation",
		},
		{
			name:  "hash and dollar",
			input: "Issue #42 costs $100",
			want:  "issue-42-costs-100",
		},

		// --- Diacritics ---
		{
			name:  "accented latin characters",
			input: "café",
			want:  "cafe",
		},
		{
			name:  "french accents stripped",
			input: "Les Misérables à la carte",
			want:  "les-miserables-a-la-carte",
		},
		{
			name:  "german umlauts stripped",
			input: "Über die Brücke",
			want:  "uber-die-brucke",
		},

		// --- Whitespace handling ---
		{
			name:  "leading and trailing spaces",
			input: "  hello world  ",
			want:  "hello-world",
		},
		{
			name:  "multiple consecutive spaces collapsed",
			input: "hello    world",
			want:  "hello-world",
		},
		{
			name:  "tabs and newlines collapse to one hyphen",
			input: "hello\t \nworld",
			want:  "hello-world",
		},

		// --- Hyphen handling ---
		{
			name:  "multiple hyphens between words",
			input: "hello---world",
			want:  "hello-world",
		},
		{
			name:  "single hyphen preserved",
			input: "well-known fact",
			want:  "well-known-fact",
		},
		{
			name:  "leading and trailing hyphens trimmed",
			input: "--hello world--",
			want:  "hello-world",
		},

		// --- Empty results fall back ---
		{
			name:  "empty string",
			input: "",
			want:  "untitled",
		},
		{
			name:  "only spaces",
			input: "     ",
			want:  "untitled",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()",
			want:  "untitled",
		},
		{
			name:  "only hyphens",
			input: "-----",
			want:  "untitled",
		},

		// --- Numbers ---
		{
			name:  "date-like string",
			input: "2026-02-25",
			want:  "2026-02-25",
		},
		{
			name:  "mixed words and numbers",
			input: "Chapter 3 Section 14",
			want:  "chapter-3-section-14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies Generate(Generate(x)) == Generate(x),
// including inputs that normalize to nothing and hit the fallback.
func TestGenerate_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"hello-world",
		"Café au Lait!",
		"",
		"!!!",
		"   ",
		"a",
		"123",
		Fallback,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Generate(input)
			twice := Generate(once)
			if once != twice {
				t.Errorf("Generate(Generate(%q)) = %q, want %q", input, twice, once)
			}
		})
	}
}

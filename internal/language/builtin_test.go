package language

import (
	"regexp"
	"testing"
)

func TestBuiltinProfilesValidate(t *testing.T) {
	for _, profile := range []Profile{English(), Polish()} {
		if _, err := New(profile); err != nil {
			t.Errorf("built-in profile %q does not validate: %v", profile.Language, err)
		}
		if profile.Voice == "" {
			t.Errorf("built-in profile %q has no espeak voice", profile.Language)
		}
	}
}

func TestBuiltinLookup(t *testing.T) {
	tests := []struct {
		tag  string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"English", "en", true},
		{"pl", "pl", true},
		{"pol", "pl", true},
		{"de", "", false},
	}

	for _, tt := range tests {
		p, ok := Builtin(tt.tag)
		if ok != tt.ok {
			t.Errorf("Builtin(%q) ok = %v, want %v", tt.tag, ok, tt.ok)
			continue
		}
		if ok && p.Language != tt.want {
			t.Errorf("Builtin(%q).Language = %q, want %q", tt.tag, p.Language, tt.want)
		}
	}
}

func TestEnglishNotSymbol(t *testing.T) {
	re, err := regexp.Compile(English().NotSymbol)
	if err != nil {
		t.Fatalf("English NotSymbol does not compile: %v", err)
	}

	cleaned := re.ReplaceAllString("Cat! dog? 42", " ")
	if cleaned != "Cat  dog    " {
		t.Errorf("cleaned = %q, want %q", cleaned, "Cat  dog    ")
	}
}

func TestPolishNotSymbolKeepsDiacritics(t *testing.T) {
	re, err := regexp.Compile(Polish().NotSymbol)
	if err != nil {
		t.Fatalf("Polish NotSymbol does not compile: %v", err)
	}
	if got := re.ReplaceAllString("żółć!", " "); got != "żółć " {
		t.Errorf("cleaned = %q, want %q", got, "żółć ")
	}
}

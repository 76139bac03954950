package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		hint string
		want Language
	}{
		{"", "de"},
		{"   ", "de"},
		{"EN", "en"},
		{" fr ", "fr"},
		{"eng+deu", "eng+deu"},
	}
	for _, tt := range tests {
		if got := ParseLanguage(tt.hint, "de"); got != tt.want {
			t.Fatalf("ParseLanguage(%q) = %q, want %q", tt.hint, got, tt.want)
		}
	}
}

func TestLanguageAlpha3(t *testing.T) {
	tests := []struct {
		lang Language
		want []string
	}{
		{"en", []string{"eng"}},
		{"de", []string{"deu"}},
		{"ch", []string{"chi_sim"}},
		{"deu", []string{"deu"}},
		{"en+de", []string{"eng", "deu"}},
		{"en++", []string{"eng"}},
		{"xx", []string{"xx"}},
	}
	for _, tt := range tests {
		if got := tt.lang.Alpha3(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%q.Alpha3() = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestNormalizeStructured(t *testing.T) {
	got, err := Normalize(Structured([]string{"Hallo", "  ", " Welt "}, nil), 0)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"Hallo", "Welt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeStructuredScores(t *testing.T) {
	got, err := Normalize(Structured([]string{"a", "b", "c"}, []float64{0.9, 0.2, 0.5}), 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeLines(t *testing.T) {
	r := Lines(
		LineResult{Text: "first\n", Confidence: 0.95},
		LineResult{Text: "noise", Confidence: 0.1},
		LineResult{Text: "unscored", Confidence: -1},
	)
	got, err := Normalize(r, 0.3)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []string{"first", "unscored"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalizeEmptyIsNonNil(t *testing.T) {
	for _, r := range []EngineResult{EmptyResult(), Lines(), Structured(nil, nil), {}} {
		got, err := Normalize(r, 0)
		if err != nil {
			t.Fatalf("Normalize(%v) error = %v", r.Kind, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("Normalize(%v) = %#v, want empty non-nil slice", r.Kind, got)
		}
	}
}

func TestNormalizeMalformed(t *testing.T) {
	bad := []EngineResult{
		{Kind: ResultStructured},
		Structured([]string{"a", "b"}, []float64{0.1}),
		{Kind: ResultKind(42)},
	}
	for _, r := range bad {
		if _, err := Normalize(r, 0); !errors.Is(err, ErrMalformedResult) {
			t.Fatalf("Normalize(%+v) error = %v, want ErrMalformedResult", r, err)
		}
	}
}

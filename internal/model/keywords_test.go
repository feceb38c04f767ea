package model

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadKeywords_HeaderedCSV(t *testing.T) {
	in := "id,keyword\n1,CHIPS Act\n2,University\n3,CHIPS Act\n4,\n"
	got, err := ReadKeywords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CHIPS Act", "University"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadKeywords_PlainList(t *testing.T) {
	in := "CHIPS Act\nUniversity\nSemiconductors\n"
	got, err := ReadKeywords(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CHIPS Act", "University", "Semiconductors"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadKeywords_Empty(t *testing.T) {
	got, err := ReadKeywords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestKeywordUniverse(t *testing.T) {
	themes := []Theme{
		{Name: "A", Keywords: []string{"CHIPS Act", "Semiconductors"}},
		{Name: "B", Keywords: []string{"University", "CHIPS Act"}},
	}
	got := KeywordUniverse(themes)
	want := []string{"CHIPS Act", "Semiconductors", "University"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDefaultThemes(t *testing.T) {
	themes := DefaultThemes()
	if len(themes) != 4 {
		t.Fatalf("expected 4 built-in themes, got %d", len(themes))
	}
	for _, theme := range themes {
		if theme.Name == "" || len(theme.Keywords) == 0 {
			t.Errorf("theme missing name or keywords: %+v", theme)
		}
	}
}

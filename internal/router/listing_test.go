package router

import (
	"reflect"
	"testing"
)

func TestExtractNumberedItems_MarkdownLinks(t *testing.T) {
	text := "Here you go:\n1. [Breathwork Basics](https://example.com/a)\n2. [Sound Bath](https://example.com/b)"

	got := ExtractNumberedItems(text)

	want := []string{"Breathwork Basics", "Sound Bath"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractNumberedItems = %v, want %v", got, want)
	}
}

func TestExtractNumberedItems_BoldWithTrailingCopy(t *testing.T) {
	text := "1. **Breathwork Basics** - June 2 at 7pm\n2. **Sound Bath** - June 9 at 6pm"

	got := ExtractNumberedItems(text)

	want := []string{"Breathwork Basics", "Sound Bath"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractNumberedItems = %v, want %v", got, want)
	}
}

func TestExtractNumberedItems_BoldOnly(t *testing.T) {
	text := "1. **Breathwork Basics**\n2. **Sound Bath**"

	got := ExtractNumberedItems(text)

	want := []string{"Breathwork Basics", "Sound Bath"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractNumberedItems = %v, want %v", got, want)
	}
}

func TestExtractNumberedItems_PlainLines(t *testing.T) {
	text := "1) Breathwork Basics - an intro session\n2) Sound Bath - deep rest"

	got := ExtractNumberedItems(text)

	want := []string{"Breathwork Basics", "Sound Bath"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractNumberedItems = %v, want %v", got, want)
	}
}

func TestExtractNumberedItems_NoList(t *testing.T) {
	if got := ExtractNumberedItems("We have lots going on soon."); got != nil {
		t.Errorf("ExtractNumberedItems = %v, want nil", got)
	}
}

func TestNumberedItemAt(t *testing.T) {
	text := "1. **Breathwork Basics** - June 2\n2. **Sound Bath** - June 9"

	if got := NumberedItemAt(text, 1); got != "Sound Bath" {
		t.Errorf("NumberedItemAt(1) = %q", got)
	}
	if got := NumberedItemAt(text, 5); got != "" {
		t.Errorf("NumberedItemAt(5) = %q, want empty", got)
	}
	if got := NumberedItemAt(text, -1); got != "" {
		t.Errorf("NumberedItemAt(-1) = %q, want empty", got)
	}
}

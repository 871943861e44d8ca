package browser

import "testing"

func TestSearchURL(t *testing.T) {
	got := SearchURL("weather in São Paulo today")
	expected := "https://www.google.com/search?q=weather+in+S%C3%A3o+Paulo+today"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

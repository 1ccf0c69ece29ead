package qrcode

import (
	"bytes"
	"testing"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, code, want string
	}{
		{"http://localhost:8010", "ABC234", "http://localhost:8010/join/ABC234"},
		{"https://hexhaven.example/", "XY23AB", "https://hexhaven.example/join/XY23AB"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.code); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.code, got, tt.want)
		}
	}
}

func TestGeneratePNG(t *testing.T) {
	png, err := Generate("http://localhost:8010/join/ABC234", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG signature")
	}
}

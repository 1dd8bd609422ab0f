package ambre

import (
	"errors"
	"testing"
)

const alnumAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestCodecRoundTrip(t *testing.T) {
	c := newCodec(alnumAlphabet)
	cases := []string{"0A", "Hello", "z", "0", "00", "a0b0c0"}
	for _, item := range cases {
		compressed, err := c.compress(item)
		if err != nil {
			t.Fatalf("compress(%q) failed: %v", item, err)
		}
		got := c.decompress(compressed)
		if got != item {
			t.Errorf("round-trip(%q) = %q, want %q", item, got, item)
		}
	}
}

func TestCodecRejectsOutOfAlphabetChar(t *testing.T) {
	c := newCodec(alnumAlphabet)
	_, err := c.compress("Hello world!")
	if err == nil {
		t.Fatal("expected an error for a space and '!' outside the alphabet")
	}
	var invalidChar *InvalidItemCharError
	if !errors.As(err, &invalidChar) {
		t.Fatalf("expected *InvalidItemCharError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrInvalidItemChar) {
		t.Error("expected errors.Is(err, ErrInvalidItemChar) to hold")
	}
}

func TestCodecNilIsIdentity(t *testing.T) {
	var c *codec
	compressed, err := c.compress("anything goes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(compressed) != "anything goes" {
		t.Errorf("nil codec compress = %q, want identity", compressed)
	}
	if c.decompress(compressed) != "anything goes" {
		t.Error("nil codec decompress did not round-trip")
	}
}

func TestCodecEmptyItem(t *testing.T) {
	c := newCodec(alnumAlphabet)
	compressed, err := c.compress("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(compressed) != 0 {
		t.Errorf("compress(\"\") = %v, want empty", compressed)
	}
	if c.decompress(compressed) != "" {
		t.Error("decompress of empty item did not round-trip")
	}
}

func TestCodecDistinctItemsDoNotCollide(t *testing.T) {
	c := newCodec(alnumAlphabet)
	seen := map[string]string{}
	items := []string{"a", "aa", "0a", "a0", "00a", "Z9", "9Z"}
	for _, item := range items {
		compressed, err := c.compress(item)
		if err != nil {
			t.Fatalf("compress(%q): %v", item, err)
		}
		key := string(compressed)
		if other, ok := seen[key]; ok && other != item {
			t.Fatalf("collision: %q and %q both compress to %v", item, other, compressed)
		}
		seen[key] = item
	}
}

package chain

import (
	"strings"
	"testing"
)

func TestBuildMintPayload_Layout(t *testing.T) {
	payload, err := BuildMintPayload(0x2a, "deadbeef", "0xcafe")
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}

	if !strings.HasPrefix(payload, mintSelector) {
		t.Fatalf("payload must start with the method selector, got %s", payload[:10])
	}

	words := payload[len(mintSelector):]
	if len(words)%wordHexLen != 0 {
		t.Fatalf("payload body must be word aligned, got %d hex digits", len(words))
	}
	if got := len(words) / wordHexLen; got != 3 {
		t.Fatalf("expected 3 words (token, password, signature), got %d", got)
	}

	tokenWord := words[:wordHexLen]
	if !strings.HasSuffix(tokenWord, "2a") || strings.TrimLeft(tokenWord[:wordHexLen-2], "0") != "" {
		t.Fatalf("token word not left-padded 0x2a: %s", tokenWord)
	}

	passwordWord := words[wordHexLen : 2*wordHexLen]
	if !strings.HasSuffix(passwordWord, "deadbeef") {
		t.Fatalf("password word mismatch: %s", passwordWord)
	}

	signatureWord := words[2*wordHexLen:]
	if !strings.HasSuffix(signatureWord, "cafe") {
		t.Fatalf("signature word mismatch: %s", signatureWord)
	}
}

func TestBuildMintPayload_LongFragmentsSplitIntoWords(t *testing.T) {
	signature := strings.Repeat("ab", 48) // 96 hex digits, needs two words
	payload, err := BuildMintPayload(1, "ff", signature)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}

	words := (len(payload) - len(mintSelector)) / wordHexLen
	if words != 4 {
		t.Fatalf("expected 4 words for split signature, got %d", words)
	}
}

func TestPadValue_TailStaysContiguous(t *testing.T) {
	// 65 digits: one full word plus a single trailing digit. The tail
	// must be right-padded, not left-padded, or zeros land mid-value.
	value := strings.Repeat("a", wordHexLen) + "b"
	padded, err := padValue(value)
	if err != nil {
		t.Fatalf("pad value: %v", err)
	}
	if len(padded) != 2*wordHexLen {
		t.Fatalf("padded length: got %d, want %d", len(padded), 2*wordHexLen)
	}
	want := strings.Repeat("a", wordHexLen) + "b" + strings.Repeat("0", wordHexLen-1)
	if padded != want {
		t.Fatalf("tail word reordered the digits:\ngot  %s\nwant %s", padded, want)
	}

	// A value that fits a single word keeps the numeric left-padding.
	single, err := padValue("cafe")
	if err != nil {
		t.Fatalf("pad single word: %v", err)
	}
	if !strings.HasSuffix(single, "cafe") || len(single) != wordHexLen {
		t.Fatalf("single word must stay left-padded: %s", single)
	}
}

func TestBuildMintPayload_RejectsBadInput(t *testing.T) {
	if _, err := BuildMintPayload(-1, "ff", "aa"); err == nil {
		t.Fatal("negative token id must be rejected")
	}
	if _, err := BuildMintPayload(1, "not-hex", "aa"); err == nil {
		t.Fatal("non-hex password must be rejected")
	}
	if _, err := BuildMintPayload(1, "", "aa"); err != nil {
		t.Fatalf("empty password fragment is allowed to be absent: %v", err)
	}
}

func TestPadWord(t *testing.T) {
	word, err := padWord("0xABC")
	if err != nil {
		t.Fatalf("pad word: %v", err)
	}
	if len(word) != wordHexLen {
		t.Fatalf("padded word length: got %d, want %d", len(word), wordHexLen)
	}
	if !strings.HasSuffix(word, "abc") {
		t.Fatalf("padded word must keep lowercased digits at the end: %s", word)
	}

	if _, err := padWord(strings.Repeat("f", wordHexLen+1)); err == nil {
		t.Fatal("over-long fragment must be rejected")
	}
}

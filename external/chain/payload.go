package chain

import (
	"fmt"
	"strconv"
	"strings"
)

// The contract ABI expects calldata as the 4-byte method selector followed
// by 32-byte left-padded words. The console only concatenates the hex
// fragments; it never signs or decodes anything.
const (
	mintSelector = "0x42966c68"
	wordHexLen   = 64
)

func padWord(hexDigits string) (string, error) {
	hexDigits = strings.TrimPrefix(strings.TrimSpace(hexDigits), "0x")
	if hexDigits == "" {
		return "", fmt.Errorf("empty hex fragment")
	}
	if len(hexDigits) > wordHexLen {
		return "", fmt.Errorf("hex fragment longer than one word: %d digits", len(hexDigits))
	}
	for _, r := range hexDigits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("invalid hex digit %q", r)
		}
	}

	return strings.Repeat("0", wordHexLen-len(hexDigits)) + strings.ToLower(hexDigits), nil
}

func padTail(hexDigits string) (string, error) {
	hexDigits = strings.TrimPrefix(strings.TrimSpace(hexDigits), "0x")
	if _, err := padWord(hexDigits); err != nil {
		return "", err
	}
	// The tail of a multi-word value keeps its digits at the front;
	// left-padding here would insert zeros mid-value.
	return strings.ToLower(hexDigits) + strings.Repeat("0", wordHexLen-len(hexDigits)), nil
}

// BuildMintPayload assembles the opaque transaction data: selector, padded
// token id, then the padded one-time password fragments issued by the
// gateway, in order.
func BuildMintPayload(tokenID int64, password, signature string) (string, error) {
	if tokenID < 0 {
		return "", fmt.Errorf("token id must not be negative, got %d", tokenID)
	}

	tokenWord, err := padWord(strconv.FormatInt(tokenID, 16))
	if err != nil {
		return "", fmt.Errorf("pad token id: %w", err)
	}

	var b strings.Builder
	b.WriteString(mintSelector)
	b.WriteString(tokenWord)

	passwordWords, err := padValue(password)
	if err != nil {
		return "", fmt.Errorf("pad password: %w", err)
	}
	b.WriteString(passwordWords)

	signatureWords, err := padValue(signature)
	if err != nil {
		return "", fmt.Errorf("pad signature: %w", err)
	}
	b.WriteString(signatureWords)

	return b.String(), nil
}

// padValue pads a hex value into whole words. A value that fits one word
// is left-padded like a number; a longer value fills full words and its
// remainder is right-padded so the digits stay contiguous.
func padValue(hexDigits string) (string, error) {
	fragments := splitWords(hexDigits)
	if len(fragments) == 0 {
		return "", nil
	}
	if len(fragments) == 1 {
		return padWord(fragments[0])
	}

	var b strings.Builder
	for _, fragment := range fragments[:len(fragments)-1] {
		word, err := padWord(fragment)
		if err != nil {
			return "", err
		}
		b.WriteString(word)
	}
	tail, err := padTail(fragments[len(fragments)-1])
	if err != nil {
		return "", err
	}
	b.WriteString(tail)
	return b.String(), nil
}

// splitWords chops a long hex string into word-sized fragments so each
// can be padded independently. Short strings stay a single fragment.
func splitWords(hexDigits string) []string {
	hexDigits = strings.TrimPrefix(strings.TrimSpace(hexDigits), "0x")
	if hexDigits == "" {
		return nil
	}

	var fragments []string
	for len(hexDigits) > wordHexLen {
		fragments = append(fragments, hexDigits[:wordHexLen])
		hexDigits = hexDigits[wordHexLen:]
	}
	return append(fragments, hexDigits)
}

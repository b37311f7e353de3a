package discord

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStripLevelSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no suffix", input: "Alice", expected: "Alice"},
		{name: "single digit level", input: "Alice [Lvl 3]", expected: "Alice"},
		{name: "multi digit level", input: "Alice [Lvl 42]", expected: "Alice"},
		{name: "brackets mid-name untouched", input: "[Lvl 3] Alice", expected: "[Lvl 3] Alice"},
		{name: "unrelated brackets kept", input: "Alice [AFK]", expected: "Alice [AFK]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripLevelSuffix(tt.input))
		})
	}
}

func TestComposeNickname(t *testing.T) {
	assert.Equal(t, "Alice [Lvl 5]", composeNickname("Alice", 5))
	assert.Equal(t, "Alice [Lvl 12]", composeNickname("  Alice  ", 12))
}

func TestComposeNicknameTruncatesLongBase(t *testing.T) {
	base := "AVeryLongNicknameThatGoesOnForever"
	got := composeNickname(base, 7)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), maxNicknameLen)
	assert.Contains(t, got, "[Lvl 7]")
}

func TestComposeNicknameTruncatesMultiByteBase(t *testing.T) {
	// 30 characters, 88 bytes. The cut must land on rune boundaries and
	// count characters against the limit, not bytes.
	base := "x" + strings.Repeat("あ", 29)
	got := composeNickname(base, 5)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), maxNicknameLen)
	assert.Equal(t, "x"+strings.Repeat("あ", 23)+" [Lvl 5]", got)
}

func TestComposeNicknameKeepsShortMultiByteBase(t *testing.T) {
	base := strings.Repeat("あ", 20)
	got := composeNickname(base, 3)

	assert.Equal(t, base+" [Lvl 3]", got)
}

func TestComposeNicknameStripThenCompose(t *testing.T) {
	// Re-leveling the same member replaces the tag instead of stacking.
	current := "Alice [Lvl 4]"
	got := composeNickname(stripLevelSuffix(current), 5)
	assert.Equal(t, "Alice [Lvl 5]", got)
}

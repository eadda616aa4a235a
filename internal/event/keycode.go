package event

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// KeyCode identifies what a key does. When the key inserts a character the
// code is that character's code point; otherwise it is one of the negative
// control codes below.
type KeyCode int32

// Code points the input logic treats specially.
const (
	CodeTab    KeyCode = '\t'
	CodeEnter  KeyCode = '\n'
	CodeSpace  KeyCode = ' '
	CodePeriod KeyCode = '.'
	CodeComma  KeyCode = ','
)

// Control codes for keys that do not insert a character.
const (
	CodeShift             KeyCode = -1
	CodeCapsLock          KeyCode = -2
	CodeSwitchAlphaSymbol KeyCode = -3
	CodeOutputText        KeyCode = -4
	CodeDelete            KeyCode = -5
	CodeSettings          KeyCode = -6
	CodeShortcut          KeyCode = -7
	CodeActionNext        KeyCode = -8
	CodeActionPrevious    KeyCode = -9
	CodeLanguageSwitch    KeyCode = -10
	CodeEmoji             KeyCode = -11
	CodeShiftEnter        KeyCode = -12
	CodeSymbolShift       KeyCode = -13
	CodeAlphaFromEmoji    KeyCode = -14
	CodeUnspecified       KeyCode = -15
)

var controlCodeNames = map[KeyCode]string{
	CodeShift:             "shift",
	CodeCapsLock:          "caps_lock",
	CodeSwitchAlphaSymbol: "switch_alpha_symbol",
	CodeOutputText:        "output_text",
	CodeDelete:            "delete",
	CodeSettings:          "settings",
	CodeShortcut:          "shortcut",
	CodeActionNext:        "action_next",
	CodeActionPrevious:    "action_previous",
	CodeLanguageSwitch:    "language_switch",
	CodeEmoji:             "emoji",
	CodeShiftEnter:        "shift_enter",
	CodeSymbolShift:       "symbol_shift",
	CodeAlphaFromEmoji:    "alpha_from_emoji",
	CodeUnspecified:       "unspecified",
}

// IsCodePoint reports whether the key inserts a character.
func (k KeyCode) IsCodePoint() bool {
	return k > 0 && k <= unicode.MaxRune
}

// Rune returns the inserted character, or 0 for a control code.
func (k KeyCode) Rune() rune {
	if !k.IsCodePoint() {
		return 0
	}
	return rune(k)
}

func (k KeyCode) String() string {
	if name, ok := controlCodeNames[k]; ok {
		return name
	}
	if k.IsCodePoint() {
		return strconv.QuoteRune(rune(k))
	}
	return fmt.Sprintf("KeyCode(%d)", int32(k))
}

// ParseKeyCode accepts a control code name ("delete"), a single character
// ("a"), a U+ code point ("U+0041") or an integer ("-5", "0x41").
func ParseKeyCode(s string) (KeyCode, error) {
	if s == "" {
		return 0, fmt.Errorf("empty key code")
	}
	lower := strings.ToLower(s)
	for code, name := range controlCodeNames {
		if name == lower {
			return code, nil
		}
	}
	if r := []rune(s); len(r) == 1 {
		return KeyCode(r[0]), nil
	}
	if strings.HasPrefix(lower, "u+") {
		n, err := strconv.ParseInt(lower[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse code point %q: %w", s, err)
		}
		return KeyCode(n), nil
	}
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("parse key code %q: %w", s, err)
	}
	return KeyCode(n), nil
}

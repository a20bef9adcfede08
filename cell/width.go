package cell

import "github.com/mattn/go-runewidth"

// RuneWidth returns the terminal display width of r: 0 for combining
// marks and most control codes, 1 for ordinary text, 2 for East-Asian
// wide and emoji codepoints. Grounded on terminal/handler.go:runesWidth
// in the teacher, which builds one runewidth.Condition per call; here it
// is built once at package init since the settings never change at
// runtime.
func RuneWidth(r rune) int {
	// Fast path: printable Latin-1 is always width 1, and this is the
	// overwhelming majority of terminal traffic.
	if (r >= 0x20 && r < 0x7f) || (r >= 0xa0 && r < 0xfe) {
		return 1
	}
	return widthCond.RuneWidth(r)
}

var widthCond = newWidthCondition()

func newWidthCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.StrictEmojiNeutral = false
	c.EastAsianWidth = true
	return c
}

// StringWidth sums RuneWidth over every rune in s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

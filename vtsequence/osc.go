package vtsequence

import "strconv"

// OscMessage is an OSC payload split into its leading numeric code and the
// remaining `;`-joined text, e.g. "8;id=1;http://x" -> {8, "id=1;http://x"}.
type OscMessage struct {
	Code int
	Text string
}

// ParseOsc splits a raw OSC payload (as collected between OscStart and
// OscEnd) into its numeric code and trailing text, per spec.md §6's OSC
// code list (0/1/2 title, 4 color, 8 hyperlink, 10-19 dynamic colors, 50
// font, 52 clipboard, 60 fonts, 104/110-119 resets, 777 notify, 888 dump).
func ParseOsc(payload string) OscMessage {
	i := 0
	for i < len(payload) && payload[i] >= '0' && payload[i] <= '9' {
		i++
	}
	if i == 0 {
		return OscMessage{Code: -1, Text: payload}
	}
	code, err := strconv.Atoi(payload[:i])
	if err != nil {
		return OscMessage{Code: -1, Text: payload}
	}
	text := payload[i:]
	if len(text) > 0 && text[0] == ';' {
		text = text[1:]
	}
	return OscMessage{Code: code, Text: text}
}

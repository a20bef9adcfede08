package vtimage

import "github.com/christianparpart/libterminal/coord"

// SixelDecoder incrementally decodes a DECSIXEL (DCS q ... ST) payload
// into RGBA pixels. It is fed one byte at a time by the hookable DCS
// payload collector spec.md §4.3 describes ("DECSIXEL ... installs a
// payload collector that consumes put bytes until unhook"). Grounded on
// the state machine in original_source/src/vtbackend/SixelParser.cpp
// (raster attributes '"', color register definition '#', repeat count
// '!', carriage return '$', line feed '-', and the six-pixel-column data
// bytes 0x3F-0x7E), reimplemented as an idiomatic Go byte pump instead of
// a switch-per-character state machine class hierarchy.
type SixelDecoder struct {
	palette    map[int][3]byte
	curColor   int
	x, y       int
	maxX, maxY int
	pixels     map[[2]int][3]byte

	pendingParams []int
	numBuilder    int
	haveNum       bool
	mode          byte // '"', '#', '!' or 0 when idle
}

// NewSixelDecoder returns a decoder with the default 16-color VT340
// palette seeded, matching xterm/mlterm's default when no palette is
// defined by the stream itself.
func NewSixelDecoder() *SixelDecoder {
	d := &SixelDecoder{
		palette: defaultSixelPalette(),
		pixels:  make(map[[2]int][3]byte),
	}
	return d
}

// Put feeds one payload byte to the decoder.
func (d *SixelDecoder) Put(b byte) {
	switch {
	case b >= '?' && b <= '~': // sixel data byte, 6 rows packed in low 6 bits
		count := d.repeatCountOrOne()
		d.flushMode()
		bits := b - '?'
		color := d.palette[d.curColor]
		for i := 0; i < count; i++ {
			for row := 0; row < 6; row++ {
				if bits&(1<<uint(row)) != 0 {
					d.setPixel(d.x, d.y+row, color)
				}
			}
			d.x++
		}
		d.pendingParams = nil
	case b == '!': // repeat introducer: "!<count><sixel>"
		d.flushMode()
		d.mode = '!'
	case b == '"': // raster attributes: "Pan;Pad;Ph;Pv
		d.flushMode()
		d.mode = '"'
	case b == '#': // color introducer: #Pc;Pu;Px;Py;Pz
		d.flushMode()
		d.mode = '#'
	case b == '$': // graphics carriage return
		d.flushMode()
		d.x = 0
	case b == '-': // graphics new line
		d.flushMode()
		d.x = 0
		d.y += 6
	case b >= '0' && b <= '9':
		d.numBuilder = d.numBuilder*10 + int(b-'0')
		d.haveNum = true
	case b == ';':
		d.pendingParams = append(d.pendingParams, d.currentNum())
		d.numBuilder = 0
		d.haveNum = false
	default:
		// ignore anything else (whitespace, unknown introducers)
	}
}

func (d *SixelDecoder) currentNum() int {
	if !d.haveNum {
		return -1
	}
	return d.numBuilder
}

func (d *SixelDecoder) repeatCountOrOne() int {
	if d.mode == '!' && len(d.pendingParams) == 0 && d.haveNum {
		n := d.numBuilder
		if n < 1 {
			n = 1
		}
		return n
	}
	return 1
}

// flushMode finalizes whatever introducer is pending (raster attrs, color
// register, or repeat count) once a terminating byte is seen.
func (d *SixelDecoder) flushMode() {
	switch d.mode {
	case '"':
		params := append(d.pendingParams, d.currentNum())
		if len(params) >= 4 && params[2] > 0 && params[3] > 0 {
			d.maxX, d.maxY = params[2], params[3]
		}
	case '#':
		params := append(d.pendingParams, d.currentNum())
		if len(params) >= 1 && params[0] >= 0 {
			d.curColor = params[0]
		}
		if len(params) >= 5 && params[1] == 2 {
			// Pu=2: Px;Py;Pz are percentages of R;G;B.
			r := byte(params[2] * 255 / 100)
			g := byte(params[3] * 255 / 100)
			b := byte(params[4] * 255 / 100)
			d.palette[d.curColor] = [3]byte{r, g, b}
		}
	case '!':
		// consumed by the following data byte in Put.
		d.pendingParams = nil
		d.numBuilder = 0
		d.haveNum = false
		return
	}
	d.mode = 0
	d.pendingParams = nil
	d.numBuilder = 0
	d.haveNum = false
}

func (d *SixelDecoder) setPixel(x, y int, c [3]byte) {
	d.pixels[[2]int{x, y}] = c
	if x+1 > d.maxX {
		d.maxX = x + 1
	}
	if y+1 > d.maxY {
		d.maxY = y + 1
	}
}

// Finish renders the accumulated pixels into an RGBA buffer sized to the
// declared (or observed) raster bounds, and the grid-cell footprint it
// occupies given a cell pixel size of (cellW, cellH).
func (d *SixelDecoder) Finish(cellW, cellH int) ([]byte, coord.ImageSize, coord.PageSize) {
	w, h := d.maxX, d.maxY
	if w <= 0 || h <= 0 {
		return nil, coord.ImageSize{}, coord.PageSize{}
	}
	buf := make([]byte, w*h*4)
	for px, c := range d.pixels {
		idx := (px[1]*w + px[0]) * 4
		if idx < 0 || idx+4 > len(buf) {
			continue
		}
		buf[idx], buf[idx+1], buf[idx+2], buf[idx+3] = c[0], c[1], c[2], 0xff
	}
	size := coord.ImageSize{Width: w, Height: h}
	cells := coord.PageSize{
		Lines:   coord.LineCount((h + cellH - 1) / cellH),
		Columns: coord.ColumnCount((w + cellW - 1) / cellW),
	}
	return buf, size, cells
}

func defaultSixelPalette() map[int][3]byte {
	// The VT340 default 16-color sixel palette (register -> RGB).
	return map[int][3]byte{
		0: {0, 0, 0}, 1: {51, 51, 204}, 2: {204, 33, 33}, 3: {51, 204, 51},
		4: {204, 51, 204}, 5: {51, 204, 204}, 6: {204, 204, 51}, 7: {135, 135, 135},
		8: {66, 66, 66}, 9: {84, 84, 153}, 10: {153, 66, 66}, 11: {84, 153, 84},
		12: {153, 84, 153}, 13: {84, 153, 153}, 14: {153, 153, 84}, 15: {204, 204, 204},
	}
}

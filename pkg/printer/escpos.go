package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10
	FontTall   = 0x01
)

// codePagePC860 is the ESC t table number of PC860 (Portuguese)
const codePagePC860 = 3

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Text is encoded in PC860 so
// Portuguese accents print; runes outside the code page become '?'.
type Document struct {
	buf   bytes.Buffer
	width int
	enc   *encoding.Encoder
}

// NewDocument creates a document for a printer with charWidth columns.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{
		width: charWidth,
		enc:   encoding.ReplaceUnsupported(charmap.CodePage860.NewEncoder()),
	}
	d.Init()
	return d
}

// Init resets the printer and selects the Portuguese code page.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@', ESC, 't', codePagePC860})
	return d
}

func (d *Document) Width() int { return d.width }

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

func (d *Document) write(s string) {
	encoded, err := d.enc.String(s)
	if err != nil {
		encoded = s
	}
	d.buf.WriteString(encoded)
}

// Text writes a line, wrapping it at the paper width.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.write(line)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width line of char.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value right-aligned on the same line.
func (d *Document) KeyValue(key, value string) *Document {
	d.columns(key, value)
	return d
}

// ItemLine prints "3x Name" with the line total right-aligned. Names too
// long for the line continue on the next ones.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	lines := wrap(name, room)
	if len(lines) == 0 {
		lines = []string{""}
	}
	d.columns(prefix+lines[0], total)
	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	for _, rest := range lines[1:] {
		d.write(indent + rest)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) columns(left, right string) {
	spaces := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	d.write(left + strings.Repeat(" ", spaces) + right)
	d.buf.WriteByte(LF)
}

// Cut sends a full paper cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

// wrap splits s into lines of at most width runes, breaking on spaces when possible.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var current []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, string(current))
	}
	return lines
}

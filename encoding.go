package htmlprint

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding selects the character encoding content is serialized under.
// The zero value is UTF8.
type Encoding int

// Supported encodings.
const (
	UTF8 Encoding = iota
	ASCII
	UTF16
	UTF16BigEndian
	UTF16LittleEndian
	UTF32
	UTF32BigEndian
	UTF32LittleEndian
	ISOLatin1
	ISOLatin2
	WindowsCP1250
	WindowsCP1251
	WindowsCP1252
	WindowsCP1253
	WindowsCP1254
	MacOSRoman
	ShiftJIS
	EUCJP
	ISO2022JP
)

var encodingNames = map[Encoding]string{
	UTF8:              "utf-8",
	ASCII:             "us-ascii",
	UTF16:             "utf-16",
	UTF16BigEndian:    "utf-16be",
	UTF16LittleEndian: "utf-16le",
	UTF32:             "utf-32",
	UTF32BigEndian:    "utf-32be",
	UTF32LittleEndian: "utf-32le",
	ISOLatin1:         "iso-8859-1",
	ISOLatin2:         "iso-8859-2",
	WindowsCP1250:     "windows-1250",
	WindowsCP1251:     "windows-1251",
	WindowsCP1252:     "windows-1252",
	WindowsCP1253:     "windows-1253",
	WindowsCP1254:     "windows-1254",
	MacOSRoman:        "macintosh",
	ShiftJIS:          "shift_jis",
	EUCJP:             "euc-jp",
	ISO2022JP:         "iso-2022-jp",
}

// aliases accepted by ParseEncoding in addition to the canonical names.
var encodingAliases = map[string]Encoding{
	"utf8":      UTF8,
	"ascii":     ASCII,
	"utf16":     UTF16,
	"utf32":     UTF32,
	"latin1":    ISOLatin1,
	"latin2":    ISOLatin2,
	"cp1250":    WindowsCP1250,
	"cp1251":    WindowsCP1251,
	"cp1252":    WindowsCP1252,
	"cp1253":    WindowsCP1253,
	"cp1254":    WindowsCP1254,
	"mac-roman": MacOSRoman,
	"sjis":      ShiftJIS,
}

// String returns the IANA-style name of the encoding.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding looks up an encoding by name, case-insensitively.
func ParseEncoding(name string) (Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for e, canonical := range encodingNames {
		if n == canonical {
			return e, nil
		}
	}
	if e, ok := encodingAliases[n]; ok {
		return e, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case UTF8:
		return unicode.UTF8, nil
	case ASCII:
		// ASCII is checked separately; every ASCII string is valid UTF-8.
		return encoding.Nop, nil
	case UTF16:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case UTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case UTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case UTF32:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	case UTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), nil
	case UTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), nil
	case ISOLatin1:
		return charmap.ISO8859_1, nil
	case ISOLatin2:
		return charmap.ISO8859_2, nil
	case WindowsCP1250:
		return charmap.Windows1250, nil
	case WindowsCP1251:
		return charmap.Windows1251, nil
	case WindowsCP1252:
		return charmap.Windows1252, nil
	case WindowsCP1253:
		return charmap.Windows1253, nil
	case WindowsCP1254:
		return charmap.Windows1254, nil
	case MacOSRoman:
		return charmap.Macintosh, nil
	case ShiftJIS:
		return japanese.ShiftJIS, nil
	case EUCJP:
		return japanese.EUCJP, nil
	case ISO2022JP:
		return japanese.ISO2022JP, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEncoding, e)
}

// transcode passes s through enc and back, failing if any character of s
// cannot be represented in enc.
func (e Encoding) transcode(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	c, err := e.codec()
	if err != nil {
		return "", err
	}
	if e == ASCII {
		for i, r := range s {
			if r >= utf8.RuneSelf {
				return "", fmt.Errorf("htmlprint: %q at offset %d is not representable in %v", r, i, e)
			}
		}
		return s, nil
	}
	encoded, err := c.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("htmlprint: encoding as %v: %w", e, err)
	}
	decoded, err := c.NewDecoder().String(encoded)
	if err != nil {
		return "", fmt.Errorf("htmlprint: decoding %v: %w", e, err)
	}
	return decoded, nil
}

// Serialize renders content and returns its markup as it reads under enc.
// It fails if rendering fails or the markup cannot be represented in enc.
func Serialize(content HTML, enc Encoding) (string, error) {
	if content == nil {
		return serialize(func(io.Writer) error { return nil }, enc)
	}
	return serialize(content.Render, enc)
}

// SerializeDocument is [Serialize] for a full document.
func SerializeDocument(doc Document, enc Encoding) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("htmlprint: nil document")
	}
	return serialize(func(w io.Writer) error { return renderDocument(w, doc) }, enc)
}

func serialize(render func(io.Writer) error, enc Encoding) (string, error) {
	var b strings.Builder
	if err := render(&b); err != nil {
		return "", err
	}
	return enc.transcode(b.String())
}

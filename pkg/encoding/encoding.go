// Package encoding converts model text written in legacy code pages to UTF-8
// before it is tokenized.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for names Lookup does not know.
var ErrUnknownEncoding = errors.New("unknown text encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeName lowercases and drops separators so that "Windows-1252",
// "windows 1252" and "windows1252" compare equal.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// Lookup returns the decoder for a code page name. An empty name or UTF-8
// returns a nil encoding, meaning the text is used as-is.
func Lookup(name string) (encoding.Encoding, error) {
	n := normalizeName(name)
	switch n {
	case "", "utf8":
		return nil, nil
	case "euckr":
		return korean.EUCKR, nil
	}

	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok && normalizeName(cm.String()) == n {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Names lists the code page names accepted by Lookup besides UTF-8.
func Names() []string {
	names := []string{"EUC-KR"}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			names = append(names, cm.String())
		}
	}
	return names
}

// DecodeString converts data in the named encoding to a UTF-8 string.
// A leading UTF-8 byte order mark is dropped.
func DecodeString(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(result), nil
}

// Package resource reads string entries out of Android resource documents
// (res/values/strings.xml).
package resource

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Element is the resource element kind searched by Extract
const Element = "string"

var (
	// ErrFileNotFound is returned when the resource document does not exist
	ErrFileNotFound = errors.New("resource file not found")

	// ErrFieldNotFound is returned when no element carries the requested name
	ErrFieldNotFound = errors.New("resource field not found")
)

// ParseError reports a malformed or unreadable resource document
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract returns the text content of the first <string> element in the
// document at path whose name attribute equals field. The whole document is
// parsed, so a malformed document fails even when the match comes first.
// An empty element is a match and yields "".
func Extract(path, field string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return "", &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	value, found, err := find(f, field)
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}

	if !found {
		return "", fmt.Errorf("%w: %q in %s", ErrFieldNotFound, field, path)
	}

	return value, nil
}

// ExtractName is Extract with every failure collapsed into fallback
func ExtractName(path, field, fallback string) string {
	value, err := Extract(path, field)
	if err != nil {
		return fallback
	}

	return value
}

func find(r io.Reader, field string) (string, bool, error) {
	dec := xml.NewDecoder(r)

	var (
		text    strings.Builder
		value   string
		found   bool
		depth   int // nesting inside the matched element, 0 when not capturing
		matched bool
		seenDoc bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			seenDoc = true
			if matched {
				depth++
				continue
			}

			if !found && t.Name.Local == Element && attr(t, "name") == field {
				matched = true
				depth = 1
				text.Reset()
			}

		case xml.EndElement:
			if !matched {
				continue
			}

			depth--
			if depth == 0 {
				matched = false
				found = true
				value = text.String()
			}

		case xml.CharData:
			if matched {
				text.Write(t)
			}
		}
	}

	if !seenDoc {
		return "", false, errors.New("document has no root element")
	}

	return value, found, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}

	return ""
}

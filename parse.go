package aionxml

import (
	"encoding/xml"
	"github.com/pkg/errors"
	"io"
	"strings"
)

// Parse decodes a single-rooted document from r into root. Declarations, comments,
// processing instructions and whitespace-only text are skipped.
func Parse(r io.Reader, root *Element) error {
	if root == nil {
		panic(DetachedElementError)
	}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = asciiCharsetReader
	level := 0
	closed := false
	stack := make([]*Element, 0, 8)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return &MalformedDocumentError{Err: errors.WithStack(err)}
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if closed {
				return &MalformedDocumentError{Err: errors.Errorf("junk after document element: <%s>", tok.Name.Local)}
			}
			level += 1
			elem := root
			if level > 1 {
				elem = new(Element)
			}
			elem.Tag = tok.Name.Local
			elem.Children = nil
			elem.ClearText()
			elem.Attrs = make(Attrs, len(tok.Attr))
			for _, attr := range tok.Attr {
				elem.Attrs[attr.Name.Local] = attr.Value
			}
			if level > 1 {
				stack[len(stack)-1].Append(elem)
			}
			stack = append(stack, elem)
		case xml.CharData:
			if level == 0 {
				if len(strings.TrimSpace(string(tok))) != 0 {
					return &MalformedDocumentError{Err: errors.New("text outside of document element")}
				}
				continue
			}
			current := stack[len(stack)-1]
			current.Text += string(tok)
		case xml.EndElement:
			current := stack[len(stack)-1]
			normalizeText(current)
			stack = stack[:len(stack)-1]
			level -= 1
			if level == 0 {
				closed = true
			}
		}
	}
	if !closed {
		return &MalformedDocumentError{Err: errors.New("no document element")}
	}
	return nil
}

// ParseString is Parse over an in-memory document.
func ParseString(data string) (*Element, error) {
	root := new(Element)
	if err := Parse(strings.NewReader(data), root); err != nil {
		return nil, err
	}
	return root, nil
}

func normalizeText(elem *Element) {
	if len(strings.TrimSpace(elem.Text)) == 0 {
		elem.ClearText()
		return
	}
	if len(elem.Children) > 0 {
		elem.Text = strings.TrimSpace(elem.Text)
	}
	elem.HasText = true
}

func asciiCharsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "ascii", "us-ascii", "utf-8", "utf8":
		return input, nil
	}
	return nil, errors.Errorf("unsupported charset %q", charset)
}

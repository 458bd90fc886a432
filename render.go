package aionxml

import (
	"bytes"
	"encoding/xml"
	"github.com/pkg/errors"
	"io"
	"strconv"
	"unicode/utf8"
)

const PrettyIndent = "  "

type Renderer struct {
	Encoder *xml.Encoder
}

func (r *Renderer) Write(elem *Element, bodyCB func(*Element) error) error {
	if elem.Tag == "" {
		return errors.New("element without tag")
	}
	startElement := xml.StartElement{
		Name: xml.Name{Local: elem.Tag},
		Attr: attrsToXML(elem.Attrs),
	}
	if err := r.Encoder.EncodeToken(startElement); err != nil {
		return errors.WithStack(err)
	}
	if err := bodyCB(elem); err != nil {
		return err
	}
	if err := r.Encoder.EncodeToken(startElement.End()); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (r *Renderer) WriteCharData(elem *Element) error {
	if !elem.HasText || elem.Text == "" {
		return nil
	}
	return errors.WithStack(r.Encoder.EncodeToken(xml.CharData(elem.Text)))
}

func (r *Renderer) RenderElement(elem *Element) error {
	return r.Write(elem, func(elem *Element) error {
		if err := r.WriteCharData(elem); err != nil {
			return err
		}
		for _, child := range elem.Children {
			if err := r.RenderElement(child); err != nil {
				return err
			}
		}
		return nil
	})
}

// Render writes root to w. The whole document is rendered into memory first, so w
// receives nothing when rendering fails.
func Render(w io.Writer, root *Element, pretty bool) error {
	data, err := RenderBytes(root, pretty)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func RenderBytes(root *Element, pretty bool) ([]byte, error) {
	if root == nil {
		return nil, DetachedElementError
	}
	buf := &bytes.Buffer{}
	renderer := &Renderer{
		Encoder: xml.NewEncoder(buf),
	}
	if pretty {
		renderer.Encoder.Indent("", PrettyIndent)
	}
	if err := renderer.RenderElement(root); err != nil {
		return nil, err
	}
	if err := renderer.Encoder.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return toASCII(buf.Bytes()), nil
}

func RenderString(root *Element, pretty bool) (string, error) {
	data, err := RenderBytes(root, pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// toASCII rewrites every non-ASCII rune as a numeric character reference.
func toASCII(data []byte) []byte {
	idx := bytes.IndexFunc(data, func(r rune) bool { return r >= utf8.RuneSelf })
	if idx < 0 {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	out = append(out, data[:idx]...)
	for _, r := range string(data[idx:]) {
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		out = append(out, "&#"...)
		out = strconv.AppendInt(out, int64(r), 10)
		out = append(out, ';')
	}
	return out
}

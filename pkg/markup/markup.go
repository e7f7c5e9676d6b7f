// Package markup serializes render fragments to SVG text and checks the
// result against output constraints.
package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
)

// Write serializes f and its descendants as compact XML. Attribute and
// child order follow the fragment tree.
func Write(w io.Writer, f *render.Fragment) error {
	enc := xml.NewEncoder(w)
	if err := encode(enc, f); err != nil {
		return fmt.Errorf("markup: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("markup: %w", err)
	}
	return nil
}

func encode(enc *xml.Encoder, f *render.Fragment) error {
	start := xml.StartElement{Name: xml.Name{Local: f.Name}}
	for _, a := range f.Attributes() {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Key}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range f.Children {
		if err := encode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Bytes serializes f into a new buffer.
func Bytes(f *render.Fragment) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String serializes f.
func String(f *render.Fragment) (string, error) {
	b, err := Bytes(f)
	return string(b), err
}

package dondominio

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	OutputJSON       = "json"
	OutputJSONPretty = "json-pretty"
	OutputXML        = "xml"
	OutputTXT        = "txt"
	OutputYAML       = "yaml"
)

// OutputFormats lists the names Render understands.
var OutputFormats = []string{OutputJSON, OutputJSONPretty, OutputXML, OutputTXT, OutputYAML}

// Render writes data in the named format. Unknown formats return ErrUnknownFormat.
func Render(w io.Writer, format string, data any) error {
	switch strings.ToLower(format) {
	case OutputJSON:
		return json.NewEncoder(w).Encode(data)
	case OutputJSONPretty:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputXML:
		return renderXML(w, data)
	case OutputTXT:
		return renderTXT(w, data, 0)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(OutputFormats, ", "))
	}
}

// renderTXT writes one "key: value" line per scalar and a "[key]" header for
// nested values, indenting one space per level.
func renderTXT(w io.Writer, data any, depth int) error {
	pad := strings.Repeat(" ", depth)
	var err error
	each(data, func(key string, v any) {
		if err != nil {
			return
		}
		if isComposite(v) {
			if _, err = fmt.Fprintf(w, "%s[%s]\n", pad, key); err == nil {
				err = renderTXT(w, v, depth+1)
			}
			return
		}
		_, err = fmt.Fprintf(w, "%s%-12s: %s\n", pad, key, txtScalar(v))
	})
	return err
}

func renderXML(w io.Writer, data any) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root := xml.StartElement{Name: xml.Name{Local: "data"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := encodeXML(enc, data); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeXML(enc *xml.Encoder, data any) error {
	var err error
	each(data, func(key string, v any) {
		if err != nil {
			return
		}
		el := xml.StartElement{Name: xml.Name{Local: xmlName(key)}}
		if err = enc.EncodeToken(el); err != nil {
			return
		}
		if isComposite(v) {
			err = encodeXML(enc, v)
		} else if v != nil {
			err = enc.EncodeToken(xml.CharData(txtScalar(v)))
		}
		if err == nil {
			err = enc.EncodeToken(el.End())
		}
	})
	return err
}

// xmlName turns list indexes and other non-name keys into valid element names.
// Runs outside the XML name alphabet become underscores.
func xmlName(key string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, key)
	if r, _ := utf8.DecodeRuneInString(name); name == "" || !unicode.IsLetter(r) && r != '_' {
		return "item" + name
	}
	return name
}

// each visits maps in key order and slices by index.
func each(data any, fn func(key string, v any)) {
	switch x := data.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			fn(k, x[k])
		}
	case Params:
		each(map[string]any(x), fn)
	case []any:
		for i, v := range x {
			fn(strconv.Itoa(i), v)
		}
	case []string:
		for i, v := range x {
			fn(strconv.Itoa(i), v)
		}
	}
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, Params, []any, []string:
		return true
	}
	return false
}

func txtScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return scalarString(v)
}

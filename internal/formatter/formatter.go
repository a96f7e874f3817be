package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/eqdata/internal/config"
	"github.com/mcncl/eqdata/internal/errors"
	"github.com/mcncl/eqdata/internal/lexer"
	"github.com/mcncl/eqdata/internal/models"
	"gopkg.in/yaml.v3"
)

// Formatter renders a parsed value in one of the output formats
type Formatter struct {
	cfg config.OutputConfig
}

// NewFormatter creates a new Formatter for the given output settings
func NewFormatter(cfg config.OutputConfig) *Formatter {
	return &Formatter{cfg: cfg}
}

// Format renders v. The result has no trailing newline.
func (f *Formatter) Format(v models.Value) (string, error) {
	if v == nil {
		return "", errors.NewFormatError("nothing to render", nil)
	}

	switch f.cfg.Format {
	case config.FormatText, "":
		return v.String(), nil
	case config.FormatJSON:
		return f.formatJSON(f.rekey(v))
	case config.FormatYAML:
		return f.formatYAML(f.rekey(v))
	case config.FormatData:
		return f.formatData(v)
	default:
		return "", errors.NewFormatError(fmt.Sprintf("unknown output format %q", f.cfg.Format), errors.ErrInvalidOption)
	}
}

// rekey applies the configured key case. Names that collide after
// conversion keep the first position and the last value.
func (f *Formatter) rekey(v models.Value) models.Value {
	convert := keyConverter(f.cfg.KeyCase)
	if convert == nil {
		return v
	}
	return rekeyValue(v, convert)
}

func keyConverter(keyCase string) func(string) string {
	switch keyCase {
	case config.KeyCaseSnake:
		return strcase.ToSnake
	case config.KeyCaseCamel:
		return strcase.ToCamel
	case config.KeyCaseLowerCamel:
		return strcase.ToLowerCamel
	case config.KeyCaseKebab:
		return strcase.ToKebab
	default:
		return nil
	}
}

func rekeyValue(v models.Value, convert func(string) string) models.Value {
	switch x := v.(type) {
	case *models.Object:
		out := models.NewObject()
		for k, member := range x.All() {
			out.Set(convert(k), rekeyValue(member, convert))
		}
		return out
	case models.Array:
		out := make(models.Array, len(x))
		for i, item := range x {
			out[i] = rekeyValue(item, convert)
		}
		return out
	default:
		return v
	}
}

func (f *Formatter) formatJSON(v models.Value) (string, error) {
	var compact bytes.Buffer
	if err := f.writeJSON(&compact, v); err != nil {
		return "", err
	}
	if f.cfg.Indent == 0 {
		return compact.String(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", f.cfg.Indent)); err != nil {
		return "", errors.NewFormatError("failed to indent json", err)
	}
	return out.String(), nil
}

func (f *Formatter) writeJSON(buf *bytes.Buffer, v models.Value) error {
	switch x := v.(type) {
	case *models.Object:
		buf.WriteByte('{')
		i := 0
		for k, member := range x.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			key, err := json.Marshal(k)
			if err != nil {
				return errors.NewFormatError(fmt.Sprintf("failed to encode name %q", k), err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.writeJSON(buf, member); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case models.Array:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := f.writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case models.Number:
		if !f.cfg.JSONNumbers {
			text, err := json.Marshal(string(x))
			if err != nil {
				return errors.NewFormatError(fmt.Sprintf("failed to encode number %q", x), err)
			}
			buf.Write(text)
			return nil
		}
		d, err := x.Decimal()
		if err != nil {
			return errors.NewFormatError(fmt.Sprintf("number %q is not a decimal", x), err)
		}
		buf.WriteString(d.String())
	default:
		return errors.NewFormatError(fmt.Sprintf("unsupported value %T", v), nil)
	}
	return nil
}

func (f *Formatter) formatYAML(v models.Value) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(f.cfg.Indent)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return "", errors.NewFormatError("failed to encode yaml", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewFormatError("failed to encode yaml", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// yamlNode builds the node tree directly so member order survives.
func yamlNode(v models.Value) *yaml.Node {
	switch x := v.(type) {
	case *models.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, member := range x.All() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				yamlNode(member),
			)
		}
		return node
	case models.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: string(x.(models.Number))}
	}
}

// formatData renders v in its own source syntax, one member per line when
// an indent is set.
func (f *Formatter) formatData(v models.Value) (string, error) {
	var b strings.Builder
	if err := f.writeData(&b, v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (f *Formatter) writeData(b *strings.Builder, v models.Value, depth int) error {
	switch x := v.(type) {
	case *models.Object:
		if x.Len() == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteByte('{')
		i := 0
		for k, member := range x.All() {
			if !lexer.IsName(k) {
				return errors.NewFormatError(fmt.Sprintf("%q is not a valid name", k), nil)
			}
			f.separate(b, i, depth+1)
			i++
			b.WriteString(k)
			if f.cfg.Indent > 0 {
				b.WriteString(" = ")
			} else {
				b.WriteByte('=')
			}
			if err := f.writeData(b, member, depth+1); err != nil {
				return err
			}
		}
		f.closeLine(b, depth)
		b.WriteByte('}')
	case models.Array:
		if len(x) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteByte('[')
		for i, item := range x {
			f.separate(b, i, depth+1)
			if err := f.writeData(b, item, depth+1); err != nil {
				return err
			}
		}
		f.closeLine(b, depth)
		b.WriteByte(']')
	case models.Number:
		if !lexer.IsNumberLiteral(string(x)) {
			return errors.NewFormatError(fmt.Sprintf("%q is not a valid number", string(x)), nil)
		}
		b.WriteString(string(x))
	default:
		return errors.NewFormatError(fmt.Sprintf("unsupported value %T", v), nil)
	}
	return nil
}

func (f *Formatter) separate(b *strings.Builder, i, depth int) {
	if i > 0 {
		b.WriteByte(',')
	}
	if f.cfg.Indent == 0 {
		if i > 0 {
			b.WriteByte(' ')
		}
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", depth*f.cfg.Indent))
}

func (f *Formatter) closeLine(b *strings.Builder, depth int) {
	if f.cfg.Indent == 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", depth*f.cfg.Indent))
}

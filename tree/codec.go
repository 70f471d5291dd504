package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// RefKey is the only key of a reference object: {"ref": "styles.color.text"}.
const RefKey = "ref"

// From converts plain Go values into a Value. Unsupported types become null.
// Keys of Go maps are sorted since their iteration order is random.
func From(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Map:
		return Object(x)
	case bool:
		return Bool(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case float64:
		return Number(x)
	case string:
		return String(x)
	case []Value:
		return List(x...)
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, From(item))
		}
		return List(items...)
	case []string:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, String(item))
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, From(x[k]))
		}
		return asRef(m)
	}
	return Null()
}

// asRef turns {"ref": "path"} into a reference leaf.
func asRef(m *Map) Value {
	if m.Len() == 1 {
		if r, ok := m.Get(RefKey); ok {
			if path, ok := r.Str(); ok {
				return Ref(path)
			}
		}
	}
	return Object(m)
}

// DecodeJSON reads a single JSON value keeping object key order.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("unable to decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unable to decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("bad number %q: %w", t, err)
		}
		return Number(n), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		case '{':
			m := NewMap()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return asRef(m), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// MarshalJSON encodes value keeping map key order. References are written
// back in their object form.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encodeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		buf.WriteString(FormatNumber(v.n))
	case KindString:
		data, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindRef:
		data, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.WriteString(`{"` + RefKey + `":`)
		buf.Write(data)
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		i := 0
		for k, item := range v.m.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			data, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// EncodeJSON writes indented JSON.
func EncodeJSON(w io.Writer, v Value) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "\t"); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

// DecodeYAML reads the first YAML document from r keeping mapping key order.
func DecodeYAML(r io.Reader) (Value, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, fmt.Errorf("unable to decode yaml: %w", err)
	}
	v, err := fromNode(&node)
	if err != nil {
		return Value{}, fmt.Errorf("unable to decode yaml: %w", err)
	}
	return v, nil
}

// UnmarshalYAML allows Value to be used directly in yaml tagged structures.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	res, err := fromNode(node)
	if err != nil {
		return err
	}
	*v = res
	return nil
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, n := range node.Content {
			item, err := fromNode(n)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items...), nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return Value{}, fmt.Errorf("line %d: %w", node.Content[i].Line, err)
			}
			val, err := fromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, val)
		}
		return asRef(m), nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return Null(), nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return Value{}, err
			}
			return Bool(b), nil
		case "!!int", "!!float":
			var n float64
			if err := node.Decode(&n); err != nil {
				return Value{}, err
			}
			return Number(n), nil
		default:
			return String(node.Value), nil
		}
	}
	return Value{}, fmt.Errorf("line %d: unsupported yaml node", node.Line)
}

// MarshalYAML produces yaml node keeping map key order.
func (v Value) MarshalYAML() (any, error) {
	return v.toNode(), nil
}

func (v Value) toNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!float"
		if v.n == float64(int64(v.n)) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: FormatNumber(v.n)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindRef:
		return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: RefKey},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s},
		}}
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.list {
			n.Content = append(n.Content, item.toNode())
		}
		return n
	case KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for k, item := range v.m.All() {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, item.toNode())
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

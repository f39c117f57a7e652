package slotted

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tree node fields
const (
	treeFieldTag         = "tag"
	treeFieldAttrs       = "attrs"
	treeFieldSelfClosing = "self_closing"
	treeFieldText        = "text"
	treeFieldHTML        = "html"
	treeFieldTextSlot    = "text_slot"
	treeFieldSlot        = "slot"
	treeFieldDefault     = "default"
	treeFieldModule      = "module"
	treeFieldChildren    = "children"
	treeRootPath         = "root"
)

// Tree is a component tree described in YAML, together with the slot keys
// it declares. All tree slots hold strings.
//
//	tag: div
//	attrs:
//	  class: greeting
//	text: "Hello "
//	children:
//	  - slot: name
//	    default: World
type Tree struct {
	Root  Component
	keys  map[string]SlotKey[string]
	order []string
}

// ParseTree builds a component tree from YAML. A node is either a string,
// rendered as escaped text, or a mapping with these fields:
//
//	tag           element name; omitted for fragments and leaves
//	attrs         attribute mapping, kept in document order
//	self_closing  render as <tag ... />
//	text          escaped inner text
//	html          trusted inner HTML
//	text_slot     slot name bound as escaped inner text
//	slot          slot name; the node becomes a Slot
//	default       default value for slot or text_slot
//	module        build the children once as a Module
//	children      list of child nodes
func ParseTree(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewTreeError(ErrMsgTreeParseFailed, treeRootPath, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, NewTreeError(ErrMsgTreeEmptyNode, treeRootPath, nil)
	}

	t := &Tree{keys: make(map[string]SlotKey[string])}
	root, err := t.parseNode(doc.Content[0], treeRootPath)
	if err != nil {
		return nil, err
	}
	t.Root = root
	return t, nil
}

// SlotNames returns the declared slot names in document order.
func (t *Tree) SlotNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Key returns the key declared for name.
func (t *Tree) Key(name string) (SlotKey[string], bool) {
	k, ok := t.keys[name]
	return k, ok
}

// Bind stores data as live entries in rc. Non-string values are formatted
// with fmt.Sprint. Names the tree does not declare are stored as well.
func (t *Tree) Bind(rc *RenderContext, data map[string]any) *RenderContext {
	for name, v := range data {
		key, ok := t.keys[name]
		if !ok {
			key = NewSlotKey[string](name)
		}
		s, isString := v.(string)
		if !isString {
			s = fmt.Sprint(v)
		}
		Put(rc, key, s)
	}
	return rc
}

func (t *Tree) key(name string, def *yaml.Node) SlotKey[string] {
	if k, ok := t.keys[name]; ok {
		return k
	}
	var k SlotKey[string]
	if def != nil {
		k = NewSlotKeyWithDefault(name, def.Value)
	} else {
		k = NewSlotKey[string](name)
	}
	t.keys[name] = k
	t.order = append(t.order, name)
	return k
}

func (t *Tree) parseNode(n *yaml.Node, path string) (Component, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Text(n.Value), nil
	case yaml.MappingNode:
	default:
		return nil, NewTreeError(ErrMsgTreeInvalidNode, path, nil)
	}

	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		switch name {
		case treeFieldTag, treeFieldAttrs, treeFieldSelfClosing, treeFieldText, treeFieldHTML,
			treeFieldTextSlot, treeFieldSlot, treeFieldDefault, treeFieldModule, treeFieldChildren:
		default:
			return nil, NewTreeError(ErrMsgTreeUnknownField, path+"."+name, nil)
		}
		fields[name] = n.Content[i+1]
	}

	if slot, ok := fields[treeFieldSlot]; ok {
		return t.parseSlot(slot, fields, path)
	}

	content := 0
	for _, f := range []string{treeFieldText, treeFieldHTML, treeFieldTextSlot} {
		if _, ok := fields[f]; ok {
			content++
		}
	}
	if content > 1 {
		return nil, NewTreeError(ErrMsgTreeConflict, path, nil)
	}

	tagNode, hasTag := fields[treeFieldTag]
	_, hasChildren := fields[treeFieldChildren]
	if !hasTag && !hasChildren {
		// bare leaves
		if text, ok := fields[treeFieldText]; ok && len(fields) == 1 {
			return Text(text.Value), nil
		}
		if html, ok := fields[treeFieldHTML]; ok && len(fields) == 1 {
			return Raw(html.Value), nil
		}
		if content == 0 {
			return nil, NewTreeError(ErrMsgTreeEmptyNode, path, nil)
		}
	}

	var name string
	if hasTag {
		if tagNode.Kind != yaml.ScalarNode || tagNode.Value == "" {
			return nil, NewTreeError(ErrMsgTreeInvalidField, path+"."+treeFieldTag, nil)
		}
		name = tagNode.Value
	}

	tag := NewTag(name)
	if sc, ok := fields[treeFieldSelfClosing]; ok {
		var b bool
		if err := sc.Decode(&b); err != nil {
			return nil, NewTreeError(ErrMsgTreeInvalidField, path+"."+treeFieldSelfClosing, err)
		}
		tag.selfClosing = b
	}
	if tag.selfClosing && hasChildren {
		return nil, NewTreeError(ErrMsgTreeInvalidParent, path, nil)
	}
	if attrs, ok := fields[treeFieldAttrs]; ok {
		if err := parseAttrs(tag, attrs, path+"."+treeFieldAttrs); err != nil {
			return nil, err
		}
	}

	switch {
	case fields[treeFieldText] != nil:
		tag.WithInnerText(fields[treeFieldText].Value)
	case fields[treeFieldHTML] != nil:
		tag.WithUnsafeHTML(fields[treeFieldHTML].Value)
	case fields[treeFieldTextSlot] != nil:
		tag.WithTextSlot(t.key(fields[treeFieldTextSlot].Value, fields[treeFieldDefault]))
	}

	children, err := t.parseChildren(fields[treeFieldChildren], path)
	if err != nil {
		return nil, err
	}

	if mod, ok := fields[treeFieldModule]; ok {
		var isModule bool
		if err := mod.Decode(&isModule); err != nil {
			return nil, NewTreeError(ErrMsgTreeInvalidField, path+"."+treeFieldModule, err)
		}
		if isModule {
			return t.asModule(tag, children), nil
		}
	}

	return tag.WithChild(children...), nil
}

func (t *Tree) parseSlot(slot *yaml.Node, fields map[string]*yaml.Node, path string) (Component, error) {
	for name := range fields {
		if name != treeFieldSlot && name != treeFieldDefault {
			return nil, NewTreeError(ErrMsgTreeConflict, path+"."+name, nil)
		}
	}
	if slot.Kind != yaml.ScalarNode || slot.Value == "" {
		return nil, NewTreeError(ErrMsgTreeInvalidField, path+"."+treeFieldSlot, nil)
	}
	return NewSlot(t.key(slot.Value, fields[treeFieldDefault])), nil
}

func (t *Tree) parseChildren(n *yaml.Node, path string) ([]Component, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, NewTreeError(ErrMsgTreeInvalidField, path+"."+treeFieldChildren, nil)
	}
	children := make([]Component, 0, len(n.Content))
	for i, child := range n.Content {
		c, err := t.parseNode(child, fmt.Sprintf("%s.%s[%d]", path, treeFieldChildren, i))
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

// asModule moves the parsed tag's markup into a Module whose content is the
// parsed children.
func (t *Tree) asModule(tag *Tag, children []Component) *Module {
	m := NewModule(tag.name, func(m *Module) {
		m.WithChild(children...)
	})
	m.Tag.attrs = tag.attrs
	m.Tag.selfClosing = tag.selfClosing
	m.Tag.innerText = tag.innerText
	m.Tag.trusted = tag.trusted
	m.Tag.textSlot = tag.textSlot
	return m
}

func parseAttrs(tag *Tag, n *yaml.Node, path string) error {
	if n.Kind != yaml.MappingNode {
		return NewTreeError(ErrMsgTreeInvalidAttrs, path, nil)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return NewTreeError(ErrMsgTreeInvalidAttrs, path, nil)
		}
		if k.Value == AttrClass {
			tag.WithClass(v.Value)
			continue
		}
		tag.WithAttribute(k.Value, v.Value)
	}
	return nil
}

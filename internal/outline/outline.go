// Package outline lists the declarations of a source file using
// tree-sitter, for jumping to a symbol by name.
package outline

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Kind classifies an entry.
type Kind int

const (
	Func Kind = iota
	Method
	Type
	Struct
	Interface
	Field
	Const
	Var
)

func (k Kind) String() string {
	switch k {
	case Func:
		return "func"
	case Method:
		return "method"
	case Type:
		return "type"
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	case Field:
		return "field"
	case Const:
		return "const"
	case Var:
		return "var"
	}
	return "?"
}

// Entry is one declaration. Members of a type are named Owner.Name.
// Start and End are the byte offsets of the declared identifier.
type Entry struct {
	Name   string
	Kind   Kind
	Detail string
	Line   int // 1-indexed
	Start  int
	End    int
}

func language(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return golang.GetLanguage()
	}
	return nil
}

// Supported reports whether path has a grammar.
func Supported(path string) bool { return language(path) != nil }

// Parse returns the declarations of src in document order. Unsupported
// paths yield no entries.
func Parse(ctx context.Context, path, src string) ([]Entry, error) {
	lang := language(path)
	if lang == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	b := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, b)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := walker{src: b}
	w.file(tree.RootNode())
	return w.out, nil
}

type walker struct {
	src []byte
	out []Entry
}

func (w *walker) text(n *sitter.Node) string { return n.Content(w.src) }

func (w *walker) add(name *sitter.Node, label string, kind Kind, detail string) {
	w.out = append(w.out, Entry{
		Name:   label,
		Kind:   kind,
		Detail: detail,
		Line:   int(name.StartPoint().Row) + 1,
		Start:  int(name.StartByte()),
		End:    int(name.EndByte()),
	})
}

func (w *walker) file(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "function_declaration":
			w.function(n)
		case "method_declaration":
			w.method(n)
		case "type_declaration":
			w.typeDecl(n)
		case "const_declaration":
			w.specs(n, Const)
		case "var_declaration":
			w.specs(n, Var)
		}
	}
}

func (w *walker) function(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	w.add(name, w.text(name), Func, w.signature("", name, n))
}

func (w *walker) method(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	recv := receiverType(n.ChildByFieldName("receiver"), w.src)
	label := strings.TrimPrefix(recv, "*") + "." + w.text(name)
	if recv == "" {
		label = w.text(name)
	}
	w.add(name, label, Method, w.signature(recv, name, n))
}

func (w *walker) signature(recv string, name, n *sitter.Node) string {
	var b strings.Builder
	b.WriteString("func ")
	if recv != "" {
		b.WriteString("(" + recv + ") ")
	}
	b.WriteString(w.text(name))
	if p := n.ChildByFieldName("parameters"); p != nil {
		b.WriteString(w.text(p))
	}
	if r := n.ChildByFieldName("result"); r != nil {
		b.WriteString(" " + w.text(r))
	}
	return b.String()
}

// receiverType returns the type of a method receiver, such as *Server.
func receiverType(recv *sitter.Node, src []byte) string {
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		p := recv.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		if t := p.ChildByFieldName("type"); t != nil {
			return t.Content(src)
		}
	}
	return ""
}

func (w *walker) typeDecl(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		name := spec.ChildByFieldName("name")
		typ := spec.ChildByFieldName("type")
		if name == nil || typ == nil {
			continue
		}
		owner := w.text(name)
		switch typ.Type() {
		case "struct_type":
			w.add(name, owner, Struct, "struct")
			w.fields(owner, typ)
		case "interface_type":
			w.add(name, owner, Interface, "interface")
			w.methodElems(owner, typ)
		default:
			w.add(name, owner, Type, w.text(typ))
		}
	}
}

func (w *walker) fields(owner string, st *sitter.Node) {
	for i := 0; i < int(st.NamedChildCount()); i++ {
		list := st.NamedChild(i)
		if list.Type() != "field_declaration_list" {
			continue
		}
		for j := 0; j < int(list.NamedChildCount()); j++ {
			f := list.NamedChild(j)
			if f.Type() != "field_declaration" {
				continue
			}
			typ := f.ChildByFieldName("type")
			detail := ""
			if typ != nil {
				detail = w.text(typ)
			}
			named := false
			for k := 0; k < int(f.NamedChildCount()); k++ {
				id := f.NamedChild(k)
				if id.Type() != "field_identifier" {
					continue
				}
				named = true
				w.add(id, owner+"."+w.text(id), Field, detail)
			}
			// embedded field
			if !named && typ != nil {
				w.add(typ, owner+"."+strings.TrimPrefix(detail, "*"), Field, detail)
			}
		}
	}
}

func (w *walker) methodElems(owner string, it *sitter.Node) {
	for i := 0; i < int(it.NamedChildCount()); i++ {
		m := it.NamedChild(i)
		if m.Type() != "method_elem" && m.Type() != "method_spec" {
			continue
		}
		name := m.ChildByFieldName("name")
		if name == nil {
			continue
		}
		w.add(name, owner+"."+w.text(name), Method, w.text(m))
	}
}

// specs handles const and var declarations, grouped or not.
func (w *walker) specs(n *sitter.Node, kind Kind) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		switch spec.Type() {
		case "const_spec", "var_spec":
			detail := ""
			if t := spec.ChildByFieldName("type"); t != nil {
				detail = w.text(t)
			}
			for j := 0; j < int(spec.NamedChildCount()); j++ {
				id := spec.NamedChild(j)
				if id.Type() == "identifier" && id.Content(w.src) != "_" {
					w.add(id, w.text(id), kind, detail)
				}
			}
		case "var_spec_list", "const_spec_list":
			w.specs(spec, kind)
		}
	}
}

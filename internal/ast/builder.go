package ast

// Builder appends declarations to a Tree. Names and paths are given as text and
// interned on the way in.
type Builder struct {
	Tree *Tree
}

func NewBuilder(unit string) *Builder {
	return &Builder{Tree: NewTree(unit, 0)}
}

// Root returns the identity of the root container.
func (b *Builder) Root() NodeID { return b.Tree.Root }

func (b *Builder) push(parent NodeID, n Node) NodeID {
	id := b.Tree.Add(n)
	b.Tree.AppendChild(parent, id)
	return id
}

// Field builds a field or parameter; an empty typ gives an enum variant.
func (b *Builder) Field(name, typ string) Field {
	return Field{Name: b.Tree.Intern(name), Type: b.Path(typ)}
}

func (b *Builder) Path(text string) Path {
	return ParsePath(b.Tree.Strings, text)
}

func (b *Builder) paths(texts []string) []Path {
	if len(texts) == 0 {
		return nil
	}
	out := make([]Path, len(texts))
	for i, s := range texts {
		out[i] = b.Path(s)
	}
	return out
}

// Container adds a public container. attrs are attribute texts.
func (b *Builder) Container(parent NodeID, name string, attrs ...string) NodeID {
	n := Node{Kind: NodeContainer, Name: b.Tree.Intern(name), Vis: VisPublic}
	for _, a := range attrs {
		n.Attrs = append(n.Attrs, MustParseAttr(a))
	}
	return b.push(parent, n)
}

func (b *Builder) Struct(parent NodeID, name string, fields ...Field) NodeID {
	return b.push(parent, Node{Kind: NodeStruct, Name: b.Tree.Intern(name), Vis: VisPublic, Fields: fields})
}

func (b *Builder) Union(parent NodeID, name string, fields ...Field) NodeID {
	return b.push(parent, Node{Kind: NodeUnion, Name: b.Tree.Intern(name), Vis: VisPublic, Fields: fields})
}

func (b *Builder) Alias(parent NodeID, name, target string) NodeID {
	return b.push(parent, Node{Kind: NodeTypeAlias, Name: b.Tree.Intern(name), Vis: VisPublic, Type: b.Path(target)})
}

func (b *Builder) Fn(parent NodeID, name string, params []Field, result, body string, refs ...string) NodeID {
	return b.push(parent, Node{
		Kind:   NodeFn,
		Name:   b.Tree.Intern(name),
		Vis:    VisPublic,
		Fields: params,
		Type:   b.Path(result),
		Body:   body,
		Refs:   b.paths(refs),
	})
}

func (b *Builder) Const(parent NodeID, name, typ, value string) NodeID {
	return b.push(parent, Node{Kind: NodeConst, Name: b.Tree.Intern(name), Vis: VisPublic, Type: b.Path(typ), Body: value})
}

// ForeignBlock adds an empty `extern` block.
func (b *Builder) ForeignBlock(parent NodeID) NodeID {
	return b.push(parent, Node{Kind: NodeForeignBlock})
}

func (b *Builder) ForeignFn(block NodeID, name string, params []Field, result string) NodeID {
	return b.push(block, Node{Kind: NodeForeignFn, Name: b.Tree.Intern(name), Vis: VisPublic, Fields: params, Type: b.Path(result)})
}

func (b *Builder) ForeignStatic(block NodeID, name, typ string) NodeID {
	return b.push(block, Node{Kind: NodeForeignStatic, Name: b.Tree.Intern(name), Vis: VisPublic, Type: b.Path(typ)})
}

// Import adds `use <path>;`.
func (b *Builder) Import(parent NodeID, path string) NodeID {
	return b.push(parent, Node{Kind: NodeImport, Prefix: b.Path(path)})
}

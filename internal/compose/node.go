package compose

// Kind distinguishes layout nodes.
type Kind int

const (
	KindNone Kind = iota // empty tree: render nothing
	KindBox
	KindText
	KindIcon
)

// Direction is the main axis of a box.
type Direction int

const (
	Column Direction = iota
	Row
)

// Border selects the bottom border of a box.
type Border int

const (
	BorderNone Border = iota
	BorderDefault
	BorderThick
)

// Color is a semantic text color resolved by the renderer's theme.
type Color int

const (
	ColorDefault Color = iota
	ColorLight
)

// Weight is a semantic font weight.
type Weight int

const (
	WeightNormal Weight = iota
	WeightStrong
)

// Roles tag nodes so renderers can find the structural parts of the tree.
const (
	RoleRoot        = "root"
	RoleHeader      = "header"
	RoleHeading     = "heading"
	RoleDescription = "table-description"
	RoleList        = "field-list"
	RoleColumns     = "column-header"
	RoleFieldRow    = "field-row"
	RoleCell        = "cell"
	RoleFieldName   = "field-name"
	RoleFieldType   = "field-type"
	RoleFieldDesc   = "field-description"
)

// Style carries the presentational attributes of a node. WidthPercent of
// zero means the node takes its natural width.
type Style struct {
	WidthPercent       int
	Direction          Direction
	Padding            int
	PaddingY           int
	PaddingRight       int
	Margin             int
	MarginTop          int
	Border             Border
	Color              Color
	Weight             Weight
	Heading            bool
	PreserveWhitespace bool
}

// Node is one element of the layout tree handed to a renderer.
type Node struct {
	Kind     Kind
	Role     string
	Text     string
	Style    Style
	Children []Node
}

// Empty reports whether the tree renders nothing.
func (n Node) Empty() bool {
	return n.Kind == KindNone
}

// Find returns the nodes carrying role, in depth-first order.
func (n Node) Find(role string) []Node {
	var out []Node
	var walk func(Node)
	walk = func(node Node) {
		if node.Role == role {
			out = append(out, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// PlainText concatenates the text and icon content below n, joining siblings
// with a single space.
func (n Node) PlainText() string {
	switch n.Kind {
	case KindText, KindIcon:
		return n.Text
	case KindBox:
		out := ""
		for _, child := range n.Children {
			text := child.PlainText()
			if text == "" {
				continue
			}
			if out != "" {
				out += " "
			}
			out += text
		}
		return out
	default:
		return ""
	}
}

func box(role string, style Style, children ...Node) Node {
	return Node{Kind: KindBox, Role: role, Style: style, Children: children}
}

func text(role, value string, style Style) Node {
	return Node{Kind: KindText, Role: role, Text: value, Style: style}
}

func icon(glyph string) Node {
	return Node{Kind: KindIcon, Text: glyph, Style: Style{Color: ColorLight, PaddingRight: 1}}
}

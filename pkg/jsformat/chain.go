package jsformat

import (
	"github.com/yaklabco/quill/pkg/format"
	"github.com/yaklabco/quill/pkg/syntax"
)

// minChainCalls is the number of method calls from which a member chain
// breaks one call per line instead of inside the arguments.
const minChainCalls = 3

type linkKind uint8

const (
	linkMember linkKind = iota
	linkComputed
	linkCall
	linkNonNull
)

// chainLink is one postfix operation of a member chain.
type chainLink struct {
	kind linkKind
	doc  format.Element
}

// call prints a call expression, laying out long method chains as
//
//	head
//		.first()
//		.second()
func (f *formatter) call(n *syntax.Node) format.Element {
	head, nodes := flattenChain(n)
	if head == nil || methodCalls(nodes) < minChainCalls {
		return format.Concat(f.field(n, "callee"), f.field(n, "optional_chain"), f.field(n, "type_arguments"), f.field(n, "arguments"))
	}
	links := make([]chainLink, len(nodes))
	for i, node := range nodes {
		links[i] = f.chainLink(node)
	}

	headDoc := f.node(head)
	if len(links) > 0 && links[0].kind == linkMember && isInteger(head) {
		headDoc = format.Concat(headDoc, format.Space())
	}
	printed := []format.Element{headDoc}
	i := 0
	for i < len(links) && links[i].kind != linkMember {
		printed = append(printed, links[i].doc)
		i++
	}
	headCalls := i > 0

	var groups []format.Element
	for i < len(links) {
		group := []format.Element{links[i].doc}
		i++
		for i < len(links) && links[i].kind != linkMember {
			group = append(group, links[i].doc)
			i++
		}
		groups = append(groups, format.Concat(group...))
	}

	if !headCalls && len(groups) > 0 && f.shortHead(head) {
		printed = append(printed, groups[0])
		groups = groups[1:]
	}
	rest := make([]format.Element, 0, 2*len(groups))
	for _, group := range groups {
		rest = append(rest, format.SoftLineBreak(), group)
	}
	return format.Group(format.Concat(printed...), format.Indent(rest...))
}

// flattenChain splits n into the innermost object and the member accesses
// and calls applied to it, in source order.
func flattenChain(n *syntax.Node) (*syntax.Node, []*syntax.Node) {
	var links []*syntax.Node
	cur := n
	for cur != nil {
		var next *syntax.Node
		switch cur.Kind() {
		case syntax.NodeCallExpression:
			next = cur.FieldNode("callee")
		case syntax.NodeStaticMemberExpression, syntax.NodeComputedMemberExpression:
			next = cur.FieldNode("object")
		case syntax.NodeTsNonNullAssertionExpression:
			next = cur.FieldNode("expression")
		default:
			for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
				links[i], links[j] = links[j], links[i]
			}
			return cur, links
		}
		links = append(links, cur)
		cur = next
	}
	return nil, nil
}

// methodCalls counts the calls whose callee is a member access.
func methodCalls(links []*syntax.Node) int {
	count := 0
	for i := 1; i < len(links); i++ {
		if links[i].Kind() == syntax.NodeCallExpression && links[i-1].Kind() == syntax.NodeStaticMemberExpression {
			count++
		}
	}
	return count
}

func (f *formatter) chainLink(n *syntax.Node) chainLink {
	switch n.Kind() {
	case syntax.NodeCallExpression:
		return chainLink{
			kind: linkCall,
			doc:  format.Concat(f.field(n, "optional_chain"), f.field(n, "type_arguments"), f.field(n, "arguments")),
		}
	case syntax.NodeStaticMemberExpression:
		return chainLink{kind: linkMember, doc: f.memberSuffix(n)}
	case syntax.NodeComputedMemberExpression:
		return chainLink{kind: linkComputed, doc: f.memberSuffix(n)}
	}
	return chainLink{kind: linkNonNull, doc: f.field(n, "excl")}
}

// shortHead reports whether the first member access stays on the line of
// the chain head, as in `this.items` or `$.ajax`.
func (f *formatter) shortHead(head *syntax.Node) bool {
	switch head.Kind() {
	case syntax.NodeThisExpression:
		return true
	case syntax.NodeIdentifierExpression:
		return len(head.Text()) <= f.opts.IndentWidth
	}
	return false
}

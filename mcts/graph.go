package mcts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the subtree rooted at n as a Graphviz dot document, using
// n's own pointer identity as the node id — there is no arena index to
// format here, unlike the teacher this is adapted from (spec §8,
// supplemented feature not named in the distilled spec but present in the
// upstream engine's debug tooling). maxDepth bounds how far below n the
// walk descends; pass a negative value for the whole subtree.
func ToDot(n *Node, settings Settings, maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	g.SetDir(true)

	if err := addDotNode(g, n, settings, nil, 0, maxDepth); err != nil {
		return "", err
	}
	return g.String(), nil
}

func addDotNode(g *gographviz.Graph, n *Node, settings Settings, view *selectionView, depth, maxDepth int) error {
	id := fmt.Sprintf("n%p", n)

	var buf bytes.Buffer
	if err := dotTmpl.Execute(&buf, dotNodeData{Node: n, View: view}); err != nil {
		return err
	}
	attrs := map[string]string{
		"fontname": "Monaco",
		"shape":    "none",
		"label":    buf.String(),
	}
	if err := g.AddNode("G", id, attrs); err != nil {
		return err
	}

	if maxDepth >= 0 && depth >= maxDepth {
		return nil
	}

	for _, c := range sortedChildren(n, n.game.ActiveArmy()) {
		childID := fmt.Sprintf("n%p", c)
		v := childView(n, c, settings)
		if err := addDotNode(g, c, settings, &v, depth+1, maxDepth); err != nil {
			return err
		}
		if err := g.AddEdge(id, childID, true, nil); err != nil {
			return err
		}
	}
	return nil
}

type dotNodeData struct {
	Node *Node
	View *selectionView
}

func (d dotNodeData) Move() string {
	if d.Node.IsRoot() {
		return "root"
	}
	return fmt.Sprintf("%v", d.Node.game.LastMove())
}

func (d dotNodeData) Visits() uint32  { return d.Node.Visited() }
func (d dotNodeData) QValue() float32 { return d.Node.QValue() }
func (d dotNodeData) PValue() float32 { return d.Node.PValue() }

func (d dotNodeData) Score() float32 {
	if d.View == nil {
		return d.Node.QValue()
	}
	return d.View.WeightedExplorationScore()
}

const dotTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Q</TD><TD>{{printf "%.3f" .QValue}}</TD></TR>
<TR><TD>P</TD><TD>{{printf "%.3f" .PValue}}</TD></TR>
<TR><TD>Score</TD><TD>{{printf "%.3f" .Score}}</TD></TR>
</TABLE>
>
`

var dotTmpl *template.Template

func init() {
	dotTmpl = template.Must(template.New("node").Parse(dotTmplRaw))
}

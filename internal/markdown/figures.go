package markdown

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/opattison/figureimg/internal/figure"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

type WrongNodeError struct {
	Expected string
	Node     ast.Node
}

func (e WrongNodeError) Error() string {
	return fmt.Sprintf("node is not %s: %v", e.Expected, e.Node)
}

// figureRenderer renders Markdown images as figures. Relative destinations are
// served from the image host.
type figureRenderer struct {
	baseURL string
}

func (r *figureRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderFigure)
}

func (r *figureRenderer) renderFigure(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*ast.Image)
	if !ok {
		return ast.WalkStop, &WrongNodeError{Expected: "image", Node: node}
	}

	if !entering {
		return ast.WalkContinue, nil
	}

	var caption *string

	if n.Title != nil {
		c := string(util.EscapeHTML(n.Title))
		caption = &c
	}

	_, _ = w.WriteString(figure.Markup("", r.resolve(string(n.Destination)), string(n.Text(source)), caption))

	return ast.WalkSkipChildren, nil
}

func (r *figureRenderer) resolve(dest string) string {
	if strings.HasPrefix(dest, "/") {
		return dest
	}

	u, err := url.Parse(dest)
	if err != nil || u.IsAbs() {
		return dest
	}

	return figure.JoinURL(r.baseURL, dest)
}

package main

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teksel-io/teksel"
	"github.com/teksel-io/teksel/ast"
)

func (a *app) astCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ast [file]",
		Aliases: []string{"parse"},
		Short:   "Print the syntax tree of a program",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := getCode(cmd, args)
			if err != nil {
				return err
			}
			asJSON, err := a.jsonOutput()
			if err != nil {
				return err
			}
			program, err := teksel.Parse(cmd.Context(), code)
			if err != nil {
				return a.formatError(err, code)
			}
			if asJSON {
				return a.printJSON(cmd.OutOrStdout(), buildTree(program))
			}
			printTree(cmd.OutOrStdout(), program)
			return nil
		},
	}
	addCodeFlags(cmd)
	return cmd
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    string     `json:"value,omitempty"`
	Line     int        `json:"line"`
	Column   int        `json:"column"`
	Children []*ASTNode `json:"children,omitempty"`
}

// treeBuilder collects the nodes visited by ast.Walk into a tree.
type treeBuilder struct {
	root  *ASTNode
	stack []*ASTNode
}

func (b *treeBuilder) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		b.stack = b.stack[:len(b.stack)-1]
		return nil
	}
	pos := node.Pos()
	n := &ASTNode{Type: nodeType(node), Value: nodeValue(node), Line: pos.Line, Column: pos.Column}
	if len(b.stack) == 0 {
		b.root = n
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, n)
	}
	b.stack = append(b.stack, n)
	return b
}

func buildTree(node ast.Node) *ASTNode {
	b := &treeBuilder{}
	ast.Walk(b, node)
	return b.root
}

// treePrinter prints one line per node, indented by depth.
type treePrinter struct {
	w     io.Writer
	depth int
}

func (p *treePrinter) Visit(node ast.Node) ast.Visitor {
	if node == nil {
		p.depth--
		return nil
	}
	line := nodeType(node)
	if v := nodeValue(node); v != "" {
		line += " " + v
	}
	fmt.Fprintf(p.w, "%s%s  %s\n", strings.Repeat("  ", p.depth), line, node.Pos())
	p.depth++
	return p
}

func printTree(w io.Writer, node ast.Node) {
	ast.Walk(&treePrinter{w: w}, node)
}

func nodeType(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

func nodeValue(node ast.Node) string {
	switch n := node.(type) {
	case *ast.FuncDef:
		return n.Name.Name
	case *ast.Ident:
		return n.Name
	case *ast.Int:
		return n.Literal
	case *ast.Float:
		return n.Literal
	case *ast.String:
		return strconv.Quote(n.Value)
	case *ast.Cell:
		return n.Column + strconv.Itoa(n.Row)
	case *ast.Infix:
		return n.Op
	case *ast.Prefix:
		return n.Op
	case *ast.Attr:
		return string(n.Kind)
	case *ast.Call:
		return n.Fun.Name
	case *ast.Foreach:
		return n.Name.Name
	}
	return ""
}

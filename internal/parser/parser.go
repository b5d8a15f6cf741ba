// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parser turns source bytes into language-neutral component and
// import records using tree-sitter. One parser per language; all of them
// emit the same ParsedFile shape so everything downstream is
// language-agnostic.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rebelopsio/boundary/pkg/types"
)

// RawComponent is a component record before normalization: no canonical id,
// no layer.
type RawComponent struct {
	Name        string
	Kind        types.ComponentKind
	Location    types.Location
	Methods     []types.Method
	Fields      []types.Field
	Annotations []string
	// Implements lists names of abstract types this component declares it
	// implements (Rust impl Trait for X, TS implements, Java implements).
	Implements []string
}

// RawImport is one import statement tied to its syntactic location.
type RawImport struct {
	// Path is the imported package path or module specifier.
	Path string
	// Symbol is the specific imported symbol when the language resolves one
	// (Rust use leaf, Java class import, TS named import); empty otherwise.
	Symbol string
	// Init marks references found inside a Go init() body.
	Init     bool
	Location types.Location
}

// ParsedFile is the per-file output of a parser.
type ParsedFile struct {
	Path       string
	Language   types.Language
	Package    string
	Components []RawComponent
	Imports    []RawImport
}

// Parser is the per-language capability set.
type Parser interface {
	Language() types.Language
	Extensions() []string
	// Parse extracts components and imports from one file. path must be
	// project-root-relative with forward slashes. Stdlib imports are dropped
	// here, before anything downstream sees them.
	Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error)
	// IsStdlib reports whether an import path belongs to the language's
	// standard library.
	IsStdlib(importPath string) bool
}

// All returns the parsers for the requested language ids, or every supported
// parser when ids is empty.
func All(ids []string) ([]Parser, error) {
	available := []Parser{NewGo(), NewRust(), NewTypeScript(), NewJava()}
	if len(ids) == 0 {
		return available, nil
	}
	byID := make(map[types.Language]Parser, len(available))
	for _, p := range available {
		byID[p.Language()] = p
	}
	var out []Parser
	for _, id := range ids {
		p, ok := byID[types.Language(strings.ToLower(id))]
		if !ok {
			return nil, &UnknownLanguageError{ID: id}
		}
		out = append(out, p)
	}
	return out, nil
}

// UnknownLanguageError reports an unsupported language id in configuration.
type UnknownLanguageError struct{ ID string }

func (e *UnknownLanguageError) Error() string {
	return "unknown language: " + e.ID
}

// ForExtension maps a file extension (with dot) to its parser.
func ForExtension(parsers []Parser, ext string) (Parser, bool) {
	for _, p := range parsers {
		for _, e := range p.Extensions() {
			if e == ext {
				return p, true
			}
		}
	}
	return nil, false
}

// packagePath derives the organizational unit for a file: its directory,
// with forward slashes. Files at the project root map to ".".
func packagePath(path string) string {
	dir := filepath.ToSlash(filepath.Dir(path))
	if dir == "" {
		return "."
	}
	return dir
}

// parseTree parses source bytes into a tree-sitter root node.
func parseTree(ctx context.Context, src []byte, lang *sitter.Language) (*sitter.Node, error) {
	return sitter.ParseCtx(ctx, src, lang)
}

// runQuery executes a compiled query and calls fn for each match with the
// captures keyed by capture name.
func runQuery(q *sitter.Query, root *sitter.Node, src []byte, fn func(caps map[string]*sitter.Node)) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		caps := make(map[string]*sitter.Node, len(m.Captures))
		for _, c := range m.Captures {
			caps[q.CaptureNameForId(c.Index)] = c.Node
		}
		fn(caps)
	}
}

// mustQuery compiles a query pattern against a grammar. Patterns are
// package-level constants; a failure is a programming error.
func mustQuery(pattern string, lang *sitter.Language) *sitter.Query {
	q, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		panic("parser: bad query: " + err.Error())
	}
	return q
}

// nodeText returns the source text of a node.
func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// nodeLocation converts a node's start point to a 1-based location.
func nodeLocation(path string, n *sitter.Node) types.Location {
	return types.Location{
		File:   path,
		Line:   int(n.StartPoint().Row) + 1,
		Column: int(n.StartPoint().Column) + 1,
	}
}

// countNamedChildren counts named children of n whose type is in kinds; with
// no kinds it counts all named children.
func countNamedChildren(n *sitter.Node, kinds ...string) int {
	if n == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if len(kinds) == 0 {
			count++
			continue
		}
		for _, k := range kinds {
			if child.Type() == k {
				count++
				break
			}
		}
	}
	return count
}

// eachNamedChild visits the named children of n.
func eachNamedChild(n *sitter.Node, fn func(child *sitter.Node)) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		fn(n.NamedChild(i))
	}
}

// walk visits every node under root in depth-first order.
func walk(root *sitter.Node, fn func(n *sitter.Node)) {
	if root == nil {
		return
	}
	fn(root)
	for i := 0; i < int(root.ChildCount()); i++ {
		walk(root.Child(i), fn)
	}
}

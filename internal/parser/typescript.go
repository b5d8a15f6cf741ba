// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/rebelopsio/boundary/pkg/types"
)

// TypeScriptParser extracts interfaces, classes (including abstract ones),
// enums, functions, decorators, and import statements from TypeScript
// source. Declaration files (.d.ts) are skipped by discovery.
type TypeScriptParser struct {
	lang           *sitter.Language
	interfaceQuery *sitter.Query
	classQuery     *sitter.Query
	abstractQuery  *sitter.Query
	enumQuery      *sitter.Query
	fnQuery        *sitter.Query
	importQuery    *sitter.Query
}

// NewTypeScript builds the TypeScript parser with its queries compiled once.
func NewTypeScript() *TypeScriptParser {
	lang := typescript.GetLanguage()
	return &TypeScriptParser{
		lang: lang,
		interfaceQuery: mustQuery(`
			(interface_declaration
			  name: (type_identifier) @name
			  body: (_) @body)
		`, lang),
		classQuery: mustQuery(`
			(class_declaration
			  name: (type_identifier) @name
			  body: (class_body) @body) @item
		`, lang),
		abstractQuery: mustQuery(`
			(abstract_class_declaration
			  name: (type_identifier) @name
			  body: (class_body) @body) @item
		`, lang),
		enumQuery: mustQuery(`
			(enum_declaration name: (identifier) @name)
		`, lang),
		fnQuery: mustQuery(`
			(program
			  (function_declaration
			    name: (identifier) @name
			    parameters: (formal_parameters) @params))
		`, lang),
		importQuery: mustQuery(`
			(import_statement source: (string) @path) @import
		`, lang),
	}
}

func (p *TypeScriptParser) Language() types.Language { return types.LangTypeScript }

func (p *TypeScriptParser) Extensions() []string { return []string{".ts", ".tsx"} }

// IsStdlib treats node: specifiers and bare unscoped specifiers without a
// slash as runtime/stdlib imports; they never produce edges.
func (p *TypeScriptParser) IsStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, "node:") {
		return true
	}
	if strings.HasPrefix(importPath, "@") {
		return false
	}
	if strings.HasPrefix(importPath, ".") {
		return false
	}
	return !strings.Contains(importPath, "/")
}

func (p *TypeScriptParser) Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error) {
	root, err := parseTree(ctx, src, p.lang)
	if err != nil {
		return nil, err
	}

	file := &ParsedFile{
		Path:     path,
		Language: types.LangTypeScript,
		Package:  packagePath(path),
	}

	p.extractInterfaces(root, src, path, file)
	p.extractClasses(root, src, path, file)
	p.extractEnumsAndFunctions(root, src, path, file)
	p.extractImports(root, src, path, file)
	return file, nil
}

func (p *TypeScriptParser) extractInterfaces(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.interfaceQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		comp := RawComponent{
			Name:     name,
			Kind:     types.KindInterface,
			Location: nodeLocation(path, caps["name"]),
		}
		eachNamedChild(caps["body"], func(child *sitter.Node) {
			if child.Type() != "method_signature" {
				return
			}
			comp.Methods = append(comp.Methods, types.Method{
				Name:  nodeText(child.ChildByFieldName("name"), src),
				Arity: tsArity(child.ChildByFieldName("parameters")),
			})
		})
		file.Components = append(file.Components, comp)
	})
}

func (p *TypeScriptParser) extractClasses(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	extract := func(kind types.ComponentKind) func(caps map[string]*sitter.Node) {
		return func(caps map[string]*sitter.Node) {
			name := nodeText(caps["name"], src)
			if name == "" {
				return
			}
			comp := RawComponent{
				Name:        name,
				Kind:        kind,
				Location:    nodeLocation(path, caps["name"]),
				Annotations: tsDecorators(caps["item"], src),
				Implements:  tsImplements(caps["item"], src),
			}
			eachNamedChild(caps["body"], func(child *sitter.Node) {
				switch child.Type() {
				case "method_definition":
					comp.Methods = append(comp.Methods, types.Method{
						Name:  nodeText(child.ChildByFieldName("name"), src),
						Arity: tsArity(child.ChildByFieldName("parameters")),
					})
				case "public_field_definition", "field_definition":
					comp.Fields = append(comp.Fields, types.Field{
						Name: nodeText(child.ChildByFieldName("name"), src),
						Type: strings.TrimPrefix(nodeText(child.ChildByFieldName("type"), src), ": "),
						Tags: tsDecorators(child, src),
					})
				}
			})
			file.Components = append(file.Components, comp)
		}
	}

	runQuery(p.classQuery, root, src, extract(types.KindClass))
	runQuery(p.abstractQuery, root, src, extract(types.KindAbstractClass))
}

func (p *TypeScriptParser) extractEnumsAndFunctions(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.enumQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		file.Components = append(file.Components, RawComponent{
			Name:     name,
			Kind:     types.KindEnum,
			Location: nodeLocation(path, caps["name"]),
		})
	})

	runQuery(p.fnQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		file.Components = append(file.Components, RawComponent{
			Name:     name,
			Kind:     types.KindFunction,
			Location: nodeLocation(path, caps["name"]),
			Methods: []types.Method{{
				Name:  name,
				Arity: tsArity(caps["params"]),
			}},
		})
	})
}

// extractImports records one import per named specifier so the graph can
// target specific components, with a whole-module fallback.
func (p *TypeScriptParser) extractImports(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.importQuery, root, src, func(caps map[string]*sitter.Node) {
		spec := strings.Trim(nodeText(caps["path"], src), `"'`)
		if spec == "" || p.IsStdlib(spec) {
			return
		}
		loc := nodeLocation(path, caps["path"])

		var symbols []string
		walk(caps["import"], func(n *sitter.Node) {
			if n.Type() == "import_specifier" {
				if name := n.ChildByFieldName("name"); name != nil {
					symbols = append(symbols, nodeText(name, src))
				}
			}
		})

		if len(symbols) == 0 {
			file.Imports = append(file.Imports, RawImport{Path: spec, Location: loc})
			return
		}
		for _, sym := range symbols {
			file.Imports = append(file.Imports, RawImport{Path: spec, Symbol: sym, Location: loc})
		}
	})
}

// tsImplements collects interface names from an implements clause.
func tsImplements(item *sitter.Node, src []byte) []string {
	var out []string
	walk(item, func(n *sitter.Node) {
		if n.Type() != "implements_clause" {
			return
		}
		eachNamedChild(n, func(child *sitter.Node) {
			if child.Type() == "type_identifier" {
				out = append(out, nodeText(child, src))
			}
		})
	})
	return out
}

// tsDecorators collects decorator text attached to a node.
func tsDecorators(item *sitter.Node, src []byte) []string {
	if item == nil {
		return nil
	}
	var out []string
	eachNamedChild(item, func(child *sitter.Node) {
		if child.Type() == "decorator" {
			out = append(out, nodeText(child, src))
		}
	})
	for sib := item.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		if sib.Type() != "decorator" {
			break
		}
		out = append(out, nodeText(sib, src))
	}
	return out
}

func tsArity(params *sitter.Node) int {
	return countNamedChildren(params, "required_parameter", "optional_parameter")
}

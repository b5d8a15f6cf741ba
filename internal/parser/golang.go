// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/rebelopsio/boundary/pkg/types"
)

// GoParser extracts interfaces, structs, functions, methods, struct tags,
// imports, and init() references from Go source.
type GoParser struct {
	lang        *sitter.Language
	typeQuery   *sitter.Query
	methodQuery *sitter.Query
	funcQuery   *sitter.Query
	importQuery *sitter.Query
}

// NewGo builds the Go parser with its queries compiled once.
func NewGo() *GoParser {
	lang := golang.GetLanguage()
	return &GoParser{
		lang: lang,
		typeQuery: mustQuery(`
			(type_declaration
			  (type_spec
			    name: (type_identifier) @name
			    type: (_) @body))
		`, lang),
		methodQuery: mustQuery(`
			(method_declaration
			  receiver: (parameter_list
			    (parameter_declaration
			      type: [(pointer_type (type_identifier) @receiver)
			             (type_identifier) @receiver]))
			  name: (field_identifier) @method
			  parameters: (parameter_list) @params)
		`, lang),
		funcQuery: mustQuery(`
			(function_declaration
			  name: (identifier) @name
			  parameters: (parameter_list) @params) @func
		`, lang),
		importQuery: mustQuery(`
			(import_spec path: (interpreted_string_literal) @path)
		`, lang),
	}
}

func (p *GoParser) Language() types.Language { return types.LangGo }

func (p *GoParser) Extensions() []string { return []string{".go"} }

// IsStdlib reports stdlib imports: any path whose first segment has no dot.
func (p *GoParser) IsStdlib(importPath string) bool {
	first := importPath
	if i := strings.IndexByte(importPath, '/'); i >= 0 {
		first = importPath[:i]
	}
	return !strings.Contains(first, ".")
}

func (p *GoParser) Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error) {
	root, err := parseTree(ctx, src, p.lang)
	if err != nil {
		return nil, err
	}

	file := &ParsedFile{
		Path:     path,
		Language: types.LangGo,
		Package:  packagePath(path),
	}

	p.extractImports(root, src, path, file)
	p.extractTypes(root, src, path, file)
	p.extractFunctions(root, src, path, file)
	return file, nil
}

// extractTypes handles interface and struct declarations.
func (p *GoParser) extractTypes(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	methods := p.extractMethods(root, src)

	runQuery(p.typeQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		body := caps["body"]
		if name == "" || body == nil {
			return
		}

		comp := RawComponent{
			Name:     name,
			Location: nodeLocation(path, caps["name"]),
		}

		switch body.Type() {
		case "interface_type":
			comp.Kind = types.KindInterface
			comp.Methods = goInterfaceMethods(body, src)
		case "struct_type":
			comp.Kind = types.KindStruct
			comp.Fields = goStructFields(body, src)
			comp.Methods = methods[name]
		default:
			// Type aliases and defined basic types are value objects in
			// waiting; record them as structs with no fields.
			comp.Kind = types.KindStruct
			comp.Methods = methods[name]
		}

		file.Components = append(file.Components, comp)
	})
}

// goInterfaceMethods walks an interface body collecting method signatures.
// Handles both method_spec and method_elem grammar spellings.
func goInterfaceMethods(body *sitter.Node, src []byte) []types.Method {
	var out []types.Method
	eachNamedChild(body, func(child *sitter.Node) {
		t := child.Type()
		if t != "method_spec" && t != "method_elem" {
			return
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			return
		}
		out = append(out, types.Method{
			Name:  nodeText(name, src),
			Arity: countNamedChildren(child.ChildByFieldName("parameters"), "parameter_declaration", "variadic_parameter_declaration"),
		})
	})
	return out
}

// goStructFields walks a struct body collecting fields with their tags.
func goStructFields(body *sitter.Node, src []byte) []types.Field {
	var out []types.Field
	eachNamedChild(body, func(list *sitter.Node) {
		if list.Type() != "field_declaration_list" {
			return
		}
		eachNamedChild(list, func(decl *sitter.Node) {
			if decl.Type() != "field_declaration" {
				return
			}
			typeName := nodeText(decl.ChildByFieldName("type"), src)
			var tags []string
			if tag := decl.ChildByFieldName("tag"); tag != nil {
				tags = append(tags, strings.Trim(nodeText(tag, src), "`"))
			}
			named := false
			eachNamedChild(decl, func(part *sitter.Node) {
				if part.Type() == "field_identifier" {
					named = true
					out = append(out, types.Field{
						Name: nodeText(part, src),
						Type: typeName,
						Tags: tags,
					})
				}
			})
			if !named && typeName != "" {
				// Embedded field.
				out = append(out, types.Field{Name: typeName, Type: typeName, Tags: tags})
			}
		})
	})
	return out
}

// extractMethods groups method signatures by receiver type name.
func (p *GoParser) extractMethods(root *sitter.Node, src []byte) map[string][]types.Method {
	methods := make(map[string][]types.Method)
	runQuery(p.methodQuery, root, src, func(caps map[string]*sitter.Node) {
		receiver := nodeText(caps["receiver"], src)
		name := nodeText(caps["method"], src)
		if receiver == "" || name == "" {
			return
		}
		methods[receiver] = append(methods[receiver], types.Method{
			Name:  name,
			Arity: countNamedChildren(caps["params"], "parameter_declaration", "variadic_parameter_declaration"),
		})
	})
	return methods
}

// extractFunctions records top-level functions as components and collects
// qualified references inside init() bodies.
func (p *GoParser) extractFunctions(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.funcQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}

		if name == "init" {
			file.Imports = append(file.Imports, p.initReferences(caps["func"], src, path, file.Imports)...)
			return
		}

		file.Components = append(file.Components, RawComponent{
			Name:     name,
			Kind:     types.KindFunction,
			Location: nodeLocation(path, caps["name"]),
			Methods: []types.Method{{
				Name:  name,
				Arity: countNamedChildren(caps["params"], "parameter_declaration", "variadic_parameter_declaration"),
			}},
		})
	})
}

// initReferences walks an init() body for qualified calls (pkg.Function).
// The selector operand is resolved against the file's imports by matching
// the final path segment; unresolved operands (locals, stdlib) are dropped.
func (p *GoParser) initReferences(fn *sitter.Node, src []byte, path string, imports []RawImport) []RawImport {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	byAlias := make(map[string]string, len(imports))
	for _, imp := range imports {
		segs := strings.Split(imp.Path, "/")
		byAlias[segs[len(segs)-1]] = imp.Path
	}

	var refs []RawImport
	walk(body, func(n *sitter.Node) {
		if n.Type() != "call_expression" {
			return
		}
		callee := n.ChildByFieldName("function")
		if callee == nil || callee.Type() != "selector_expression" {
			return
		}
		operand := callee.ChildByFieldName("operand")
		if operand == nil || operand.Type() != "identifier" {
			return
		}
		importPath, ok := byAlias[nodeText(operand, src)]
		if !ok {
			return
		}
		refs = append(refs, RawImport{
			Path:     importPath,
			Init:     true,
			Location: nodeLocation(path, n),
		})
	})
	return refs
}

// extractImports records import declarations, dropping stdlib paths.
func (p *GoParser) extractImports(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.importQuery, root, src, func(caps map[string]*sitter.Node) {
		node := caps["path"]
		importPath := strings.Trim(nodeText(node, src), `"`)
		if importPath == "" || p.IsStdlib(importPath) {
			return
		}
		file.Imports = append(file.Imports, RawImport{
			Path:     importPath,
			Location: nodeLocation(path, node),
		})
	})
}

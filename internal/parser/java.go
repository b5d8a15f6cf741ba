// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/rebelopsio/boundary/pkg/types"
)

// JavaParser extracts interfaces, classes, enums, annotations, and
// fully-qualified imports from Java source.
type JavaParser struct {
	lang           *sitter.Language
	interfaceQuery *sitter.Query
	classQuery     *sitter.Query
	enumQuery      *sitter.Query
	importQuery    *sitter.Query
}

// NewJava builds the Java parser with its queries compiled once.
func NewJava() *JavaParser {
	lang := java.GetLanguage()
	return &JavaParser{
		lang: lang,
		interfaceQuery: mustQuery(`
			(interface_declaration
			  name: (identifier) @name
			  body: (interface_body) @body) @item
		`, lang),
		classQuery: mustQuery(`
			(class_declaration
			  name: (identifier) @name
			  body: (class_body) @body) @item
		`, lang),
		enumQuery: mustQuery(`
			(enum_declaration name: (identifier) @name)
		`, lang),
		importQuery: mustQuery(`
			(import_declaration (scoped_identifier) @path)
		`, lang),
	}
}

func (p *JavaParser) Language() types.Language { return types.LangJava }

func (p *JavaParser) Extensions() []string { return []string{".java"} }

// IsStdlib reports JDK imports.
func (p *JavaParser) IsStdlib(importPath string) bool {
	return strings.HasPrefix(importPath, "java.") ||
		strings.HasPrefix(importPath, "javax.") ||
		strings.HasPrefix(importPath, "jdk.")
}

func (p *JavaParser) Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error) {
	root, err := parseTree(ctx, src, p.lang)
	if err != nil {
		return nil, err
	}

	file := &ParsedFile{
		Path:     path,
		Language: types.LangJava,
		Package:  packagePath(path),
	}

	p.extractInterfaces(root, src, path, file)
	p.extractClasses(root, src, path, file)
	p.extractEnums(root, src, path, file)
	p.extractImports(root, src, path, file)
	return file, nil
}

func (p *JavaParser) extractInterfaces(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.interfaceQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		comp := RawComponent{
			Name:        name,
			Kind:        types.KindInterface,
			Location:    nodeLocation(path, caps["name"]),
			Annotations: javaAnnotations(caps["item"], src),
		}
		eachNamedChild(caps["body"], func(child *sitter.Node) {
			if child.Type() != "method_declaration" {
				return
			}
			comp.Methods = append(comp.Methods, types.Method{
				Name:  nodeText(child.ChildByFieldName("name"), src),
				Arity: countNamedChildren(child.ChildByFieldName("parameters"), "formal_parameter", "spread_parameter"),
			})
		})
		file.Components = append(file.Components, comp)
	})
}

func (p *JavaParser) extractClasses(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.classQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}

		kind := types.KindClass
		if javaIsAbstract(caps["item"], src) {
			kind = types.KindAbstractClass
		}

		comp := RawComponent{
			Name:        name,
			Kind:        kind,
			Location:    nodeLocation(path, caps["name"]),
			Annotations: javaAnnotations(caps["item"], src),
			Implements:  javaImplements(caps["item"], src),
		}

		eachNamedChild(caps["body"], func(child *sitter.Node) {
			switch child.Type() {
			case "method_declaration":
				comp.Methods = append(comp.Methods, types.Method{
					Name:  nodeText(child.ChildByFieldName("name"), src),
					Arity: countNamedChildren(child.ChildByFieldName("parameters"), "formal_parameter", "spread_parameter"),
				})
			case "field_declaration":
				typeName := nodeText(child.ChildByFieldName("type"), src)
				tags := javaAnnotations(child, src)
				eachNamedChild(child, func(part *sitter.Node) {
					if part.Type() != "variable_declarator" {
						return
					}
					comp.Fields = append(comp.Fields, types.Field{
						Name: nodeText(part.ChildByFieldName("name"), src),
						Type: typeName,
						Tags: tags,
					})
				})
			}
		})
		file.Components = append(file.Components, comp)
	})
}

func (p *JavaParser) extractEnums(root *sitter.Node, src []byte, path string, file *ParsedFile) {
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
}

// extractImports records fully-qualified imports. A trailing capitalized
// segment is the imported class; the rest is the package path.
func (p *JavaParser) extractImports(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.importQuery, root, src, func(caps map[string]*sitter.Node) {
		importPath := nodeText(caps["path"], src)
		if importPath == "" || p.IsStdlib(importPath) {
			return
		}
		imp := RawImport{Path: importPath, Location: nodeLocation(path, caps["path"])}
		if i := strings.LastIndex(importPath, "."); i >= 0 {
			leaf := importPath[i+1:]
			if leaf != "" && leaf[0] >= 'A' && leaf[0] <= 'Z' {
				imp.Symbol = leaf
				imp.Path = importPath[:i]
			}
		}
		file.Imports = append(file.Imports, imp)
	})
}

// javaIsAbstract reports an abstract modifier on a class declaration.
func javaIsAbstract(item *sitter.Node, src []byte) bool {
	abstract := false
	eachNamedChild(item, func(child *sitter.Node) {
		if child.Type() == "modifiers" && strings.Contains(nodeText(child, src), "abstract") {
			abstract = true
		}
	})
	return abstract
}

// javaImplements collects interface names from the super_interfaces clause.
func javaImplements(item *sitter.Node, src []byte) []string {
	var out []string
	eachNamedChild(item, func(n *sitter.Node) {
		if n.Type() != "super_interfaces" {
			return
		}
		walk(n, func(t *sitter.Node) {
			if t.Type() == "type_identifier" {
				out = append(out, nodeText(t, src))
			}
		})
	})
	return out
}

// javaAnnotations collects @Annotation tokens from a declaration's
// modifiers.
func javaAnnotations(item *sitter.Node, src []byte) []string {
	if item == nil {
		return nil
	}
	var out []string
	eachNamedChild(item, func(child *sitter.Node) {
		if child.Type() != "modifiers" {
			return
		}
		eachNamedChild(child, func(mod *sitter.Node) {
			switch mod.Type() {
			case "annotation", "marker_annotation":
				out = append(out, nodeText(mod, src))
			}
		})
	})
	return out
}

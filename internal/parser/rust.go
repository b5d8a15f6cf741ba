// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/rebelopsio/boundary/pkg/types"
)

// RustParser extracts traits, structs, enums, functions, impl blocks,
// derive attributes, and use declarations from Rust source.
type RustParser struct {
	lang        *sitter.Language
	traitQuery  *sitter.Query
	structQuery *sitter.Query
	enumQuery   *sitter.Query
	fnQuery     *sitter.Query
	implQuery   *sitter.Query
	useQuery    *sitter.Query
}

// NewRust builds the Rust parser with its queries compiled once.
func NewRust() *RustParser {
	lang := rust.GetLanguage()
	return &RustParser{
		lang: lang,
		traitQuery: mustQuery(`
			(trait_item
			  name: (type_identifier) @name
			  body: (declaration_list) @body) @item
		`, lang),
		structQuery: mustQuery(`
			(struct_item name: (type_identifier) @name) @item
		`, lang),
		enumQuery: mustQuery(`
			(enum_item name: (type_identifier) @name) @item
		`, lang),
		fnQuery: mustQuery(`
			(source_file
			  (function_item
			    name: (identifier) @name
			    parameters: (parameters) @params))
		`, lang),
		implQuery: mustQuery(`
			(impl_item
			  type: (type_identifier) @type
			  body: (declaration_list) @body) @item
		`, lang),
		useQuery: mustQuery(`
			(use_declaration argument: (_) @path) @use
		`, lang),
	}
}

func (p *RustParser) Language() types.Language { return types.LangRust }

func (p *RustParser) Extensions() []string { return []string{".rs"} }

// IsStdlib reports stdlib imports: paths rooted at std, core, or alloc.
func (p *RustParser) IsStdlib(importPath string) bool {
	first := importPath
	if i := strings.Index(importPath, "::"); i >= 0 {
		first = importPath[:i]
	}
	switch first {
	case "std", "core", "alloc":
		return true
	}
	return false
}

func (p *RustParser) Parse(ctx context.Context, path string, src []byte) (*ParsedFile, error) {
	root, err := parseTree(ctx, src, p.lang)
	if err != nil {
		return nil, err
	}

	file := &ParsedFile{
		Path:     path,
		Language: types.LangRust,
		Package:  packagePath(path),
	}

	p.extractTraits(root, src, path, file)
	p.extractStructs(root, src, path, file)
	p.extractEnums(root, src, path, file)
	p.extractFunctions(root, src, path, file)
	p.applyImpls(root, src, file)
	p.extractUses(root, src, path, file)
	return file, nil
}

func (p *RustParser) extractTraits(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.traitQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		comp := RawComponent{
			Name:        name,
			Kind:        types.KindTrait,
			Location:    nodeLocation(path, caps["name"]),
			Annotations: attributeTokens(caps["item"], src),
		}
		eachNamedChild(caps["body"], func(child *sitter.Node) {
			t := child.Type()
			if t != "function_signature_item" && t != "function_item" {
				return
			}
			comp.Methods = append(comp.Methods, types.Method{
				Name:  nodeText(child.ChildByFieldName("name"), src),
				Arity: rustArity(child.ChildByFieldName("parameters")),
			})
		})
		file.Components = append(file.Components, comp)
	})
}

func (p *RustParser) extractStructs(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.structQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		comp := RawComponent{
			Name:        name,
			Kind:        types.KindStruct,
			Location:    nodeLocation(path, caps["name"]),
			Annotations: attributeTokens(caps["item"], src),
		}
		if body := caps["item"].ChildByFieldName("body"); body != nil {
			eachNamedChild(body, func(field *sitter.Node) {
				if field.Type() != "field_declaration" {
					return
				}
				comp.Fields = append(comp.Fields, types.Field{
					Name: nodeText(field.ChildByFieldName("name"), src),
					Type: nodeText(field.ChildByFieldName("type"), src),
					Tags: attributeTokens(field, src),
				})
			})
		}
		file.Components = append(file.Components, comp)
	})
}

func (p *RustParser) extractEnums(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.enumQuery, root, src, func(caps map[string]*sitter.Node) {
		name := nodeText(caps["name"], src)
		if name == "" {
			return
		}
		file.Components = append(file.Components, RawComponent{
			Name:        name,
			Kind:        types.KindEnum,
			Location:    nodeLocation(path, caps["name"]),
			Annotations: attributeTokens(caps["item"], src),
		})
	})
}

func (p *RustParser) extractFunctions(root *sitter.Node, src []byte, path string, file *ParsedFile) {
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
				Arity: rustArity(caps["params"]),
			}},
		})
	})
}

// applyImpls attaches impl-block methods to their type and records trait
// implementations for adapter matching.
func (p *RustParser) applyImpls(root *sitter.Node, src []byte, file *ParsedFile) {
	byName := make(map[string]*RawComponent, len(file.Components))
	for i := range file.Components {
		byName[file.Components[i].Name] = &file.Components[i]
	}

	runQuery(p.implQuery, root, src, func(caps map[string]*sitter.Node) {
		comp, ok := byName[nodeText(caps["type"], src)]
		if !ok {
			return
		}
		if trait := caps["item"].ChildByFieldName("trait"); trait != nil {
			comp.Implements = append(comp.Implements, nodeText(trait, src))
		}
		eachNamedChild(caps["body"], func(child *sitter.Node) {
			if child.Type() != "function_item" {
				return
			}
			comp.Methods = append(comp.Methods, types.Method{
				Name:  nodeText(child.ChildByFieldName("name"), src),
				Arity: rustArity(child.ChildByFieldName("parameters")),
			})
		})
	})
}

func (p *RustParser) extractUses(root *sitter.Node, src []byte, path string, file *ParsedFile) {
	runQuery(p.useQuery, root, src, func(caps map[string]*sitter.Node) {
		raw := nodeText(caps["path"], src)
		if raw == "" {
			return
		}
		loc := nodeLocation(path, caps["path"])
		for _, usePath := range expandUsePath(raw) {
			if p.IsStdlib(usePath) {
				continue
			}
			imp := RawImport{Path: usePath, Location: loc}
			// A capitalized leaf is a specific imported symbol.
			if i := strings.LastIndex(usePath, "::"); i >= 0 {
				leaf := usePath[i+2:]
				if leaf != "" && leaf[0] >= 'A' && leaf[0] <= 'Z' {
					imp.Symbol = leaf
					imp.Path = usePath[:i]
				}
			}
			file.Imports = append(file.Imports, imp)
		}
	})
}

// expandUsePath flattens a use argument with a trailing group:
// "crate::domain::{user, order}" becomes two paths. Nested groups and
// renames keep their raw text; the normalizer treats them as unresolved.
func expandUsePath(raw string) []string {
	raw = strings.TrimSpace(raw)
	open := strings.Index(raw, "{")
	if open < 0 || !strings.HasSuffix(raw, "}") || strings.Count(raw, "{") > 1 {
		return []string{raw}
	}
	prefix := strings.TrimSuffix(raw[:open], "::")
	var out []string
	for _, part := range strings.Split(raw[open+1:len(raw)-1], ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "self" {
			if prefix != "" {
				out = append(out, prefix)
			}
			continue
		}
		out = append(out, prefix+"::"+part)
	}
	return out
}

// rustArity counts parameters, excluding the receiver.
func rustArity(params *sitter.Node) int {
	if params == nil {
		return 0
	}
	count := 0
	eachNamedChild(params, func(child *sitter.Node) {
		if child.Type() == "parameter" {
			count++
		}
	})
	return count
}

// attributeTokens collects the #[...] attributes preceding an item or
// attached to a field, for persistence-annotation detection.
func attributeTokens(item *sitter.Node, src []byte) []string {
	var tokens []string
	for sib := item.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		if sib.Type() != "attribute_item" {
			break
		}
		tokens = append(tokens, nodeText(sib, src))
	}
	eachNamedChild(item, func(child *sitter.Node) {
		if child.Type() == "attribute_item" {
			tokens = append(tokens, nodeText(child, src))
		}
	})
	return tokens
}

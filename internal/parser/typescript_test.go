// Copyright (c) 2026 RebelOps. All rights reserved.
// SPDX-License-Identifier: MIT

package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelopsio/boundary/pkg/types"
)

func TestTypeScriptInterfaceAndClass(t *testing.T) {
	src := []byte(`
export interface UserRepository {
  save(user: User): Promise<void>;
  findById(id: string): Promise<User | null>;
}

export class PostgresUserRepository implements UserRepository {
  private pool: Pool;

  async save(user: User): Promise<void> {}
  async findById(id: string): Promise<User | null> { return null; }
}
`)
	p := NewTypeScript()
	file, err := p.Parse(context.Background(), "src/infrastructure/postgres/repository.ts", src)
	require.NoError(t, err)
	assert.Equal(t, "src/infrastructure/postgres", file.Package)

	iface := findComponent(t, file, "UserRepository")
	assert.Equal(t, types.KindInterface, iface.Kind)
	require.Len(t, iface.Methods, 2)
	assert.Equal(t, types.Method{Name: "save", Arity: 1}, iface.Methods[0])

	class := findComponent(t, file, "PostgresUserRepository")
	assert.Equal(t, types.KindClass, class.Kind)
	assert.Equal(t, []string{"UserRepository"}, class.Implements)
	require.Len(t, class.Fields, 1)
	assert.Equal(t, "pool", class.Fields[0].Name)
}

func TestTypeScriptAbstractClass(t *testing.T) {
	src := []byte(`
export abstract class Notifier {
  abstract notify(message: string): void;
}
`)
	p := NewTypeScript()
	file, err := p.Parse(context.Background(), "src/domain/notifier.ts", src)
	require.NoError(t, err)

	notifier := findComponent(t, file, "Notifier")
	assert.Equal(t, types.KindAbstractClass, notifier.Kind)
	assert.True(t, notifier.Kind.Abstract())
}

func TestTypeScriptImports(t *testing.T) {
	src := []byte(`
import fs from 'fs';
import path from 'node:path';
import { User, Order } from '../domain/user';
import pg from 'pg';
import { Logger } from '@acme/logging';

export function boot(): void {}
`)
	p := NewTypeScript()
	file, err := p.Parse(context.Background(), "src/application/boot.ts", src)
	require.NoError(t, err)

	var got []RawImport
	for _, imp := range file.Imports {
		got = append(got, imp)
	}

	// fs, node:path, and the bare pg specifier are runtime imports and are
	// dropped; the relative and scoped imports survive.
	paths := map[string]bool{}
	for _, imp := range got {
		paths[imp.Path] = true
	}
	assert.False(t, paths["fs"])
	assert.False(t, paths["node:path"])
	assert.False(t, paths["pg"])
	assert.True(t, paths["../domain/user"])
	assert.True(t, paths["@acme/logging"])

	var symbols []string
	for _, imp := range got {
		if imp.Path == "../domain/user" {
			symbols = append(symbols, imp.Symbol)
		}
	}
	assert.ElementsMatch(t, []string{"User", "Order"}, symbols)
}

func TestTypeScriptDecorators(t *testing.T) {
	src := []byte(`
@Entity()
export class User {
  @PrimaryColumn()
  id: string;

  name: string;
}
`)
	p := NewTypeScript()
	file, err := p.Parse(context.Background(), "src/models/user.ts", src)
	require.NoError(t, err)

	user := findComponent(t, file, "User")
	require.NotEmpty(t, user.Annotations)
	assert.Contains(t, user.Annotations[0], "Entity")

	var idField types.Field
	for _, f := range user.Fields {
		if f.Name == "id" {
			idField = f
		}
	}
	require.NotEmpty(t, idField.Tags)
	assert.Contains(t, idField.Tags[0], "PrimaryColumn")
}

func TestTypeScriptIsStdlib(t *testing.T) {
	p := NewTypeScript()
	assert.True(t, p.IsStdlib("fs"))
	assert.True(t, p.IsStdlib("node:path"))
	assert.True(t, p.IsStdlib("react"))
	assert.False(t, p.IsStdlib("@scope/pkg"))
	assert.False(t, p.IsStdlib("./local"))
	assert.False(t, p.IsStdlib("../up/one"))
	assert.False(t, p.IsStdlib("lodash/merge"))
}

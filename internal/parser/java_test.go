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

func TestJavaInterfaceAndClass(t *testing.T) {
	src := []byte(`
package com.example.domain.user;

public interface UserRepository {
    void save(User user);
    User findById(String id);
}
`)
	p := NewJava()
	file, err := p.Parse(context.Background(), "src/main/java/com/example/domain/user/UserRepository.java", src)
	require.NoError(t, err)
	assert.Equal(t, "src/main/java/com/example/domain/user", file.Package)

	iface := findComponent(t, file, "UserRepository")
	assert.Equal(t, types.KindInterface, iface.Kind)
	require.Len(t, iface.Methods, 2)
	assert.Equal(t, types.Method{Name: "save", Arity: 1}, iface.Methods[0])
	assert.Equal(t, types.Method{Name: "findById", Arity: 1}, iface.Methods[1])
}

func TestJavaAbstractClassAndAnnotations(t *testing.T) {
	src := []byte(`
package com.example.models;

import jakarta.persistence.Entity;
import jakarta.persistence.Id;

@Entity
public class User {
    @Id
    private String id;

    private String name;

    public void rename(String name) {
        this.name = name;
    }
}

public abstract class BaseEntity {
    public abstract String key();
}
`)
	p := NewJava()
	file, err := p.Parse(context.Background(), "src/main/java/com/example/models/User.java", src)
	require.NoError(t, err)

	user := findComponent(t, file, "User")
	assert.Equal(t, types.KindClass, user.Kind)
	require.NotEmpty(t, user.Annotations)
	assert.Contains(t, user.Annotations[0], "Entity")
	require.Len(t, user.Fields, 2)
	assert.Contains(t, user.Fields[0].Tags[0], "@Id")

	base := findComponent(t, file, "BaseEntity")
	assert.Equal(t, types.KindAbstractClass, base.Kind)
}

func TestJavaImports(t *testing.T) {
	src := []byte(`
package com.example.application;

import java.util.List;
import javax.sql.DataSource;
import com.example.domain.user.UserRepository;
import com.example.domain.user.User;

public class UserService {
    private UserRepository repository;
}
`)
	p := NewJava()
	file, err := p.Parse(context.Background(), "src/main/java/com/example/application/UserService.java", src)
	require.NoError(t, err)

	require.Len(t, file.Imports, 2, "JDK imports are dropped")
	assert.Equal(t, "com.example.domain.user", file.Imports[0].Path)
	assert.Equal(t, "UserRepository", file.Imports[0].Symbol)
	assert.Equal(t, "User", file.Imports[1].Symbol)
}

func TestJavaImplements(t *testing.T) {
	src := []byte(`
package com.example.infrastructure.postgres;

public class PostgresUserRepository implements UserRepository {
    public void save(User user) {}
}
`)
	p := NewJava()
	file, err := p.Parse(context.Background(), "src/main/java/com/example/infrastructure/postgres/PostgresUserRepository.java", src)
	require.NoError(t, err)

	repo := findComponent(t, file, "PostgresUserRepository")
	assert.Equal(t, []string{"UserRepository"}, repo.Implements)
}

func TestJavaIsStdlib(t *testing.T) {
	p := NewJava()
	assert.True(t, p.IsStdlib("java.util.List"))
	assert.True(t, p.IsStdlib("javax.sql.DataSource"))
	assert.True(t, p.IsStdlib("jdk.internal.misc"))
	assert.False(t, p.IsStdlib("com.example.domain"))
	assert.False(t, p.IsStdlib("org.springframework.stereotype.Service"))
}

func TestForExtension(t *testing.T) {
	parsers, err := All(nil)
	require.NoError(t, err)

	p, ok := ForExtension(parsers, ".go")
	require.True(t, ok)
	assert.Equal(t, types.LangGo, p.Language())

	p, ok = ForExtension(parsers, ".rs")
	require.True(t, ok)
	assert.Equal(t, types.LangRust, p.Language())

	_, ok = ForExtension(parsers, ".py")
	assert.False(t, ok)
}

func TestAllRejectsUnknownLanguage(t *testing.T) {
	_, err := All([]string{"go", "cobol"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cobol")
}

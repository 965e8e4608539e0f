package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

func name(s string) *ast.CommandName { return &ast.CommandName{Name: s} }

func alias(parts ...string) *ast.AliasName { return &ast.AliasName{Parts: parts} }

func strParam(s string) *ast.Parameter { return &ast.Parameter{Name: s, Type: ast.ParamString} }

func literal(s string) *ast.StringOrParam { return &ast.StringOrParam{Value: s} }

func boolPtr(b bool) *bool { return &b }

func yield(names ...string) *ast.ShowOptions {
	y := &ast.YieldClause{}
	for _, n := range names {
		y.Items = append(y.Items, &ast.YieldItem{Variable: v(n)})
	}

	return &ast.ShowOptions{Yield: y}
}

func TestParseCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  ast.Statement
	}{
		// Roles
		{
			name:  "create role",
			input: "CREATE ROLE foo IF NOT EXISTS",
			want:  &ast.CreateRole{Name: name("foo"), IfNotExists: true},
		},
		{
			name:  "replace role as copy",
			input: "CREATE OR REPLACE ROLE $r AS COPY OF admin",
			want: &ast.CreateRole{
				Replace: true,
				Name:    &ast.CommandName{Param: strParam("r")},
				CopyOf:  name("admin"),
			},
		},
		{
			name:  "rename role",
			input: "RENAME ROLE a IF EXISTS TO b",
			want:  &ast.RenameRole{From: name("a"), IfExists: true, To: name("b")},
		},
		{
			name:  "grant roles",
			input: "GRANT ROLE admin, reader TO alice",
			want:  &ast.GrantRoles{Roles: []*ast.CommandName{name("admin"), name("reader")}, Users: []*ast.CommandName{name("alice")}},
		},
		{
			name:  "revoke roles",
			input: "REVOKE ROLES admin FROM bob",
			want:  &ast.RevokeRoles{Roles: []*ast.CommandName{name("admin")}, Users: []*ast.CommandName{name("bob")}},
		},
		{
			name:  "show roles with users",
			input: "SHOW POPULATED ROLES WITH USERS",
			want:  &ast.ShowRoles{Filter: ast.RolesPopulated, WithUsers: true},
		},

		// Users
		{
			name:  "create user",
			input: "CREATE USER alice IF NOT EXISTS SET PLAINTEXT PASSWORD 'secret' CHANGE NOT REQUIRED SET STATUS SUSPENDED SET HOME DATABASE db1",
			want: &ast.CreateUser{
				Name:        name("alice"),
				IfNotExists: true,
				Settings: []ast.UserSetting{
					&ast.SetPassword{Encryption: ast.PasswordPlaintext, Password: literal("secret"), ChangeRequired: boolPtr(false)},
					&ast.SetStatus{Suspended: true},
					&ast.SetHomeDatabase{Database: alias("db1")},
				},
			},
		},
		{
			name:  "alter user",
			input: "ALTER USER bob IF EXISTS SET PASSWORD $pw REMOVE HOME DATABASE",
			want: &ast.AlterUser{
				Name:     name("bob"),
				IfExists: true,
				Settings: []ast.UserSetting{
					&ast.SetPassword{Password: &ast.StringOrParam{Param: strParam("pw")}},
					&ast.RemoveHomeDatabase{},
				},
			},
		},
		{
			name:  "alter user password change",
			input: "ALTER USER bob SET PASSWORD CHANGE REQUIRED",
			want: &ast.AlterUser{
				Name:     name("bob"),
				Settings: []ast.UserSetting{&ast.SetPasswordChangeRequired{Required: true}},
			},
		},
		{
			name:  "alter current user",
			input: "ALTER CURRENT USER SET PASSWORD FROM 'a' TO 'b'",
			want:  &ast.AlterCurrentUser{Old: literal("a"), New: literal("b")},
		},
		{
			name:  "show users with auth",
			input: "SHOW USERS WITH AUTH",
			want:  &ast.ShowUsers{WithAuth: true},
		},
		{
			name:  "show current user",
			input: "SHOW CURRENT USER",
			want:  &ast.ShowCurrentUser{},
		},

		// Databases
		{
			name:  "create database",
			input: "CREATE DATABASE db1 IF NOT EXISTS TOPOLOGY 3 PRIMARIES 1 SECONDARY OPTIONS {a: 1} WAIT 5 SECONDS",
			want: &ast.CreateDatabase{
				Name:        alias("db1"),
				IfNotExists: true,
				Topology: &ast.Topology{
					Primaries:   &ast.IntOrParam{Value: 3},
					Secondaries: &ast.IntOrParam{Value: 1},
				},
				Options: &ast.MapOrParam{Map: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "a", Value: num("1")}}}},
				Wait:    &ast.WaitClause{Seconds: i64(5)},
			},
		},
		{
			name:  "drop composite database",
			input: "DROP COMPOSITE DATABASE $db IF EXISTS CASCADE ALIASES DUMP DATA NOWAIT",
			want: &ast.DropDatabase{
				Composite: true,
				Name:      &ast.AliasName{Param: strParam("db")},
				IfExists:  true,
				Aliases:   ast.AliasActionCascade,
				Data:      ast.DataActionDump,
				Wait:      &ast.WaitClause{NoWait: true},
			},
		},
		{
			name:  "alter database settings",
			input: "ALTER DATABASE db SET ACCESS READ ONLY SET OPTION txLogEnrichment 'FULL'",
			want: &ast.AlterDatabase{
				Name: alias("db"),
				Settings: []ast.DatabaseSetting{
					&ast.SetAccess{ReadOnly: true},
					&ast.SetOption{Key: "txLogEnrichment", Value: str("FULL")},
				},
			},
		},
		{
			name:  "alter database remove options",
			input: "ALTER DATABASE db REMOVE OPTION a REMOVE OPTION b WAIT",
			want: &ast.AlterDatabase{
				Name:          alias("db"),
				RemoveOptions: []string{"a", "b"},
				Wait:          &ast.WaitClause{},
			},
		},
		{
			name:  "start database",
			input: "START DATABASE db WAIT 10 SEC",
			want:  &ast.StartDatabase{Name: alias("db"), Wait: &ast.WaitClause{Seconds: i64(10)}},
		},
		{
			name:  "stop database",
			input: "STOP DATABASE db",
			want:  &ast.StopDatabase{Name: alias("db")},
		},
		{
			name:  "show database with yield",
			input: "SHOW DATABASE foo YIELD name",
			want:  &ast.ShowDatabases{Name: alias("foo"), Show: yield("name")},
		},
		{
			name:  "show default database",
			input: "SHOW DEFAULT DATABASE",
			want:  &ast.ShowDatabases{Scope: ast.DatabaseDefault},
		},

		// Aliases
		{
			name:  "create remote alias",
			input: "CREATE ALIAS remote.db FOR DATABASE target AT 'neo4j+s://x' USER u PASSWORD $p DRIVER {ssl: true} PROPERTIES {a: 1}",
			want: &ast.CreateAlias{
				Name:   alias("remote", "db"),
				Target: alias("target"),
				Remote: &ast.RemoteAlias{
					URL:      literal("neo4j+s://x"),
					User:     name("u"),
					Password: &ast.StringOrParam{Param: strParam("p")},
					Driver:   &ast.MapOrParam{Map: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "ssl", Value: &ast.BoolLit{Value: true}}}}},
				},
				Properties: &ast.MapOrParam{Map: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "a", Value: num("1")}}}},
			},
		},
		{
			name:  "alter alias",
			input: "ALTER ALIAS a SET DATABASE TARGET b AT 'url' USER u",
			want:  &ast.AlterAlias{Name: alias("a"), Target: alias("b"), URL: literal("url"), User: name("u")},
		},
		{
			name:  "drop alias",
			input: "DROP ALIAS a IF EXISTS FOR DATABASE",
			want:  &ast.DropAlias{Name: alias("a"), IfExists: true},
		},
		{
			name:  "show aliases",
			input: "SHOW ALIASES FOR DATABASES WHERE name = 'x'",
			want: &ast.ShowAliases{Show: &ast.ShowOptions{
				Where: &ast.Comparison{Op: ast.CmpEq, Left: v("name"), Right: str("x")},
			}},
		},

		// Servers
		{
			name:  "enable server",
			input: "ENABLE SERVER 'abc' OPTIONS {modeConstraint: 'PRIMARY'}",
			want: &ast.EnableServer{
				Name:    literal("abc"),
				Options: &ast.MapOrParam{Map: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "modeConstraint", Value: str("PRIMARY")}}}},
			},
		},
		{
			name:  "rename server",
			input: "RENAME SERVER 'a' TO 'b'",
			want:  &ast.RenameServer{From: literal("a"), To: literal("b")},
		},
		{
			name:  "dry run deallocate",
			input: "DRYRUN DEALLOCATE DATABASES FROM SERVERS 'a', $b",
			want: &ast.DeallocateDatabases{
				DryRun:  true,
				Servers: []*ast.StringOrParam{literal("a"), {Param: strParam("b")}},
			},
		},
		{
			name:  "reallocate",
			input: "REALLOCATE DATABASES",
			want:  &ast.ReallocateDatabases{},
		},

		// Indexes and constraints
		{
			name:  "create index",
			input: "CREATE INDEX idx IF NOT EXISTS FOR (n:Person) ON (n.name, n.age) OPTIONS {}",
			want: &ast.CreateIndex{
				Name:        name("idx"),
				IfNotExists: true,
				Entity:      &ast.EntityPattern{Variable: "n", Labels: []string{"Person"}},
				Properties: []*ast.PropertyRef{
					{Variable: "n", Property: "name"},
					{Variable: "n", Property: "age"},
				},
				Options: &ast.MapOrParam{Map: &ast.MapLit{}},
			},
		},
		{
			name:  "create text index on relationship",
			input: "CREATE TEXT INDEX FOR ()-[r:KNOWS]-() ON r.since",
			want: &ast.CreateIndex{
				Kind:       ast.IndexText,
				Entity:     &ast.EntityPattern{Relationship: true, Variable: "r", Labels: []string{"KNOWS"}, Direction: ast.DirectionNone},
				Properties: []*ast.PropertyRef{{Variable: "r", Property: "since"}},
			},
		},
		{
			name:  "create lookup index",
			input: "CREATE LOOKUP INDEX FOR (n) ON EACH labels(n)",
			want: &ast.CreateLookupIndex{
				Entity:   &ast.EntityPattern{Variable: "n"},
				Function: "labels",
				Argument: "n",
			},
		},
		{
			name:  "create fulltext index",
			input: "CREATE FULLTEXT INDEX ft FOR (n:A|B) ON EACH [n.title, n.body]",
			want: &ast.CreateFulltextIndex{
				Name:   name("ft"),
				Entity: &ast.EntityPattern{Variable: "n", Labels: []string{"A", "B"}},
				Properties: []*ast.PropertyRef{
					{Variable: "n", Property: "title"},
					{Variable: "n", Property: "body"},
				},
			},
		},
		{
			name:  "legacy create index",
			input: "CREATE INDEX ON :Person(name)",
			want:  &ast.CreateLegacyIndex{Label: "Person", Properties: []string{"name"}},
		},
		{
			name:  "legacy drop index",
			input: "DROP INDEX ON :Person(name, age)",
			want:  &ast.DropLegacyIndex{Label: "Person", Properties: []string{"name", "age"}},
		},
		{
			name:  "drop index",
			input: "DROP INDEX idx IF EXISTS",
			want:  &ast.DropIndex{Name: name("idx"), IfExists: true},
		},
		{
			name:  "unique constraint",
			input: "CREATE CONSTRAINT c FOR (n:Person) REQUIRE n.id IS UNIQUE",
			want: &ast.CreateConstraint{
				Name:       name("c"),
				Entity:     &ast.EntityPattern{Variable: "n", Labels: []string{"Person"}},
				Properties: []*ast.PropertyRef{{Variable: "n", Property: "id"}},
				Kind:       ast.ConstraintUnique,
			},
		},
		{
			name:  "relationship key constraint",
			input: "CREATE CONSTRAINT FOR ()-[r:R]-() REQUIRE (r.a, r.b) IS RELATIONSHIP KEY",
			want: &ast.CreateConstraint{
				Entity: &ast.EntityPattern{Relationship: true, Variable: "r", Labels: []string{"R"}},
				Properties: []*ast.PropertyRef{
					{Variable: "r", Property: "a"},
					{Variable: "r", Property: "b"},
				},
				Kind:       ast.ConstraintKey,
				EntityWord: "RELATIONSHIP",
			},
		},
		{
			name:  "legacy exists constraint",
			input: "CREATE CONSTRAINT ON (n:P) ASSERT EXISTS (n.name)",
			want: &ast.CreateConstraint{
				On:         true,
				Entity:     &ast.EntityPattern{Variable: "n", Labels: []string{"P"}},
				Assert:     true,
				Properties: []*ast.PropertyRef{{Variable: "n", Property: "name"}},
				Kind:       ast.ConstraintExists,
			},
		},
		{
			name:  "legacy drop constraint",
			input: "DROP CONSTRAINT ON (n:P) ASSERT n.id IS UNIQUE",
			want: &ast.DropLegacyConstraint{
				Entity:     &ast.EntityPattern{Variable: "n", Labels: []string{"P"}},
				Kind:       ast.ConstraintUnique,
				Properties: []*ast.PropertyRef{{Variable: "n", Property: "id"}},
			},
		},
		{
			name:  "show constraints filter",
			input: "SHOW NODE UNIQUE CONSTRAINTS VERBOSE OUTPUT",
			want:  &ast.ShowConstraints{Filter: "NODE UNIQUE", Verbosity: ast.VerbosityVerbose},
		},
		{
			name:  "show range indexes",
			input: "SHOW RANGE INDEXES YIELD *",
			want:  &ast.ShowIndexes{Type: "RANGE", Show: &ast.ShowOptions{Yield: &ast.YieldClause{Star: true}}},
		},

		// Transactions, settings, functions and procedures
		{
			name:  "show transactions by id",
			input: "SHOW TRANSACTIONS 'a', 'b' YIELD id",
			want:  &ast.ShowTransactions{IDs: []ast.Expr{str("a"), str("b")}, Show: yield("id")},
		},
		{
			name:  "terminate transaction by parameter",
			input: "TERMINATE TRANSACTION $ids",
			want:  &ast.TerminateTransactions{IDs: []ast.Expr{param("ids")}},
		},
		{
			name:  "show procedures executable",
			input: "SHOW PROCEDURES EXECUTABLE",
			want:  &ast.ShowProcedures{Executable: &ast.ExecutableBy{CurrentUser: true}},
		},
		{
			name:  "show user defined functions",
			input: "SHOW USER DEFINED FUNCTIONS EXECUTABLE BY alice",
			want: &ast.ShowFunctions{
				Filter:     ast.FunctionsUserDefined,
				Executable: &ast.ExecutableBy{User: "alice"},
			},
		},
		{
			name:  "show built in functions",
			input: "SHOW BUILT IN FUNCTIONS",
			want:  &ast.ShowFunctions{Filter: ast.FunctionsBuiltIn},
		},

		// Privilege listings
		{
			name:  "show user privileges as revoke commands",
			input: "SHOW USER alice PRIVILEGES AS REVOKE COMMANDS",
			want: &ast.ShowPrivileges{
				Scope:      ast.PrivilegesOfUsers,
				Names:      []*ast.CommandName{name("alice")},
				AsCommands: true,
				AsRevoke:   true,
			},
		},
		{
			name:  "show all privileges as commands",
			input: "SHOW ALL PRIVILEGES AS COMMANDS",
			want:  &ast.ShowPrivileges{ExplicitAll: true, AsCommands: true},
		},
		{
			name:  "show role privileges",
			input: "SHOW ROLES a, b PRIVILEGES",
			want: &ast.ShowPrivileges{
				Scope: ast.PrivilegesOfRoles,
				Names: []*ast.CommandName{name("a"), name("b")},
			},
		},
		{
			name:  "show supported privileges",
			input: "SHOW SUPPORTED PRIVILEGES",
			want:  &ast.ShowSupportedPrivileges{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustStatement(t, tt.input)
			if diff := cmp.Diff(tt.want, got, ignoreMeta); diff != "" {
				t.Errorf("%s: mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseConstraintType(t *testing.T) {
	t.Parallel()

	c, ok := mustStatement(t, "CREATE CONSTRAINT FOR (n:P) REQUIRE n.age IS :: INTEGER").(*ast.CreateConstraint)
	require.True(t, ok)
	assert.Equal(t, ast.ConstraintTyped, c.Kind)
	assert.Equal(t, ast.TypeSyntaxIsColons, c.TypeSyntax)
	require.NotNil(t, c.Type)
	require.Len(t, c.Type.Parts, 1)
	assert.Equal(t, "INTEGER", c.Type.Parts[0].Name)
}

func TestParsePrivileges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *ast.PrivilegeCommand
	}{
		{
			name:  "match on all graphs",
			input: "GRANT MATCH {*} ON GRAPH * TO role1, role2",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{
					Action:     "MATCH",
					Properties: &ast.PrivilegeResource{Star: true},
					Scope:      &ast.PrivilegeScope{Kind: ast.ScopeGraph, Star: true},
				},
				Roles: []*ast.CommandName{name("role1"), name("role2")},
			},
		},
		{
			name:  "revoke deny traverse with element qualifier",
			input: "REVOKE DENY TRAVERSE ON HOME GRAPH NODES A, B FROM r",
			want: &ast.PrivilegeCommand{
				Verb:   ast.VerbRevoke,
				Revoke: ast.RevokeDeny,
				Privilege: &ast.Privilege{
					Action:    "TRAVERSE",
					Scope:     &ast.PrivilegeScope{Kind: ast.ScopeHomeGraph},
					Qualifier: &ast.GraphQualifier{Kind: ast.QualifyNodes, Names: []string{"A", "B"}},
				},
				Roles: []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "read with pattern qualifier",
			input: "GRANT READ {name} ON GRAPH neo4j FOR (n:Person) WHERE n.secret = false TO r",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{
					Action:     "READ",
					Properties: &ast.PrivilegeResource{Names: []string{"name"}},
					Scope:      &ast.PrivilegeScope{Kind: ast.ScopeGraph, Names: []*ast.AliasName{alias("neo4j")}},
					Qualifier: &ast.GraphQualifier{
						Kind:     ast.QualifyPattern,
						Variable: "n",
						Labels:   []string{"Person"},
						Where:    &ast.Comparison{Op: ast.CmpEq, Left: prop(v("n"), "secret"), Right: &ast.BoolLit{Value: false}},
					},
				},
				Roles: []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "immutable deny on procedure globs",
			input: "DENY IMMUTABLE EXECUTE PROCEDURE apoc.*, db.? ON DBMS TO r",
			want: &ast.PrivilegeCommand{
				Verb:      ast.VerbDeny,
				Immutable: true,
				Privilege: &ast.Privilege{
					Action: "EXECUTE PROCEDURE",
					Globs: []*ast.Glob{
						{Parts: []*ast.GlobPart{{Kind: ast.GlobName, Text: "apoc"}, {Kind: ast.GlobDot}, {Kind: ast.GlobStar}}},
						{Parts: []*ast.GlobPart{{Kind: ast.GlobName, Text: "db"}, {Kind: ast.GlobDot}, {Kind: ast.GlobQuestion}}},
					},
					Scope: &ast.PrivilegeScope{Kind: ast.ScopeDBMS},
				},
				Roles: []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "role management is a privilege",
			input: "GRANT ROLE MANAGEMENT ON DBMS TO r",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{Action: "ROLE MANAGEMENT", Scope: &ast.PrivilegeScope{Kind: ast.ScopeDBMS}},
				Roles:     []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "load on url",
			input: "GRANT LOAD ON URL 'https://x' TO r",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{Action: "LOAD", Scope: &ast.PrivilegeScope{Kind: ast.ScopeURL, Value: literal("https://x")}},
				Roles:     []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "show transaction for users",
			input: "GRANT SHOW TRANSACTION (alice, bob) ON DATABASES * TO r",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{
					Action: "SHOW TRANSACTION",
					Users:  &ast.UserQualifier{Users: []*ast.CommandName{name("alice"), name("bob")}},
					Scope:  &ast.PrivilegeScope{Kind: ast.ScopeDatabase, Star: true},
				},
				Roles: []*ast.CommandName{name("r")},
			},
		},
		{
			name:  "create new labels",
			input: "GRANT CREATE NEW NODE LABELS ON DATABASE db TO r",
			want: &ast.PrivilegeCommand{
				Privilege: &ast.Privilege{
					Action: "CREATE NEW NODE LABELS",
					Scope:  &ast.PrivilegeScope{Kind: ast.ScopeDatabase, Names: []*ast.AliasName{alias("db")}},
				},
				Roles: []*ast.CommandName{name("r")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustStatement(t, tt.input)
			if diff := cmp.Diff(tt.want, got, ignoreMeta); diff != "" {
				t.Errorf("%s: mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseCompositeCommands(t *testing.T) {
	t.Parallel()

	t.Run("chained show commands", func(t *testing.T) {
		t.Parallel()

		cc, ok := mustStatement(t, "SHOW TRANSACTIONS YIELD id SHOW SETTINGS 'x'").(*ast.CompositeCommand)
		require.True(t, ok)
		assert.Nil(t, cc.Use)

		want := []ast.Command{
			&ast.ShowTransactions{Show: yield("id")},
			&ast.ShowSettings{Names: []ast.Expr{str("x")}},
		}
		if diff := cmp.Diff(want, cc.Commands, ignoreMeta); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("use before a command", func(t *testing.T) {
		t.Parallel()

		cc, ok := mustStatement(t, "USE system SHOW USERS").(*ast.CompositeCommand)
		require.True(t, ok)
		require.NotNil(t, cc.Use)
		assert.Equal(t, []string{"system"}, cc.Use.Target.Parts)
		require.Len(t, cc.Commands, 1)
		assert.IsType(t, &ast.ShowUsers{}, cc.Commands[0])
	})

	t.Run("single command stays bare", func(t *testing.T) {
		t.Parallel()

		assert.IsType(t, &ast.ShowTransactions{}, mustStatement(t, "SHOW TRANSACTIONS"))
	})
}

func TestParseCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "user without settings", input: "CREATE USER bob"},
		{name: "traverse on dbms", input: "GRANT TRAVERSE ON DBMS TO r"},
		{name: "alias without change", input: "ALTER ALIAS a SET DATABASE"},
		{name: "repeated topology count", input: "CREATE DATABASE d TOPOLOGY 1 PRIMARY 2 PRIMARIES"},
		{name: "detached glob segment", input: "GRANT EXECUTE PROCEDURE apoc. * ON DBMS TO r"},
		{name: "non composable chain", input: "SHOW TRANSACTIONS SHOW USERS"},
		{name: "composite database topology", input: "CREATE COMPOSITE DATABASE d TOPOLOGY 1 PRIMARY"},
		{name: "show all users", input: "SHOW ALL USERS"},
		{name: "legacy index without properties", input: "DROP INDEX ON :Person"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := parser.ParseString(tt.input)
			require.Len(t, res.Errors, 1, tt.input)
			assert.ErrorIs(t, res.Errors[0], parser.ErrUnexpectedToken)
		})
	}
}

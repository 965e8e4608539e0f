// Package token defines the terminal alphabet of the Cypher grammar: token
// kinds, the keyword table and the static sets consulted by the parser's
// lookahead predicates.
package token

import "github.com/alecthomas/participle/v2/lexer"

// Kind identifies a terminal symbol. Kinds share participle's TokenType so
// tokens flow through lexer.Token unchanged.
type Kind = lexer.TokenType

// Token kinds - negative values as per participle convention.
const (
	EOF            Kind = lexer.EOF
	Comment        Kind = -(iota + 2) //nolint:mnd // participle convention
	Whitespace                        // spaces, tabs, newlines
	Ident                             // unescaped symbolic name
	EscapedIdent                      // `backtick quoted` name
	StringLiteral                     // '...' or "..."
	IntegerLiteral                    // unsigned decimal integer
	HexLiteral                        // 0x1F
	OctalLiteral                      // 0o17 or 017
	FloatLiteral                      // 1.5, .5, 1e10

	LParen         // (
	RParen         // )
	LBracket       // [
	RBracket       // ]
	LBrace         // {
	RBrace         // }
	Comma          // ,
	Semicolon      // ;
	Dot            // .
	DotDot         // ..
	Colon          // :
	ColonColon     // ::
	Dollar         // $
	Bar            // |
	Ampersand      // &
	Bang           // !
	Percent        // %
	Question       // ?
	Eq             // =
	Neq            // <>
	InvalidNeq     // !=
	Lt             // <
	Gt             // >
	Le             // <=
	Ge             // >=
	RegexMatch     // =~
	Plus           // +
	PlusEq         // +=
	Minus          // -
	Star           // *
	Slash          // /
	Caret          // ^
	Concat         // ||
	ArrowLine      // unicode dashes usable in relationship arrows
	ArrowLeftHead  // unicode left angle brackets
	ArrowRightHead // unicode right angle brackets

	keywordBegin
	ACCESS
	ACTIVE
	ADMIN
	ADMINISTRATOR
	ALIAS
	ALIASES
	ALL
	ALLSHORTESTPATHS
	ALTER
	AND
	ANY
	ARRAY
	AS
	ASC
	ASCENDING
	ASSERT
	ASSIGN
	AT
	AUTH
	BINDINGS
	BOOL
	BOOLEAN
	BOOSTED
	BOTH
	BREAK
	BRIEF
	BTREE
	BUILT
	BY
	CALL
	CASCADE
	CASE
	CHANGE
	CIDR
	COLLECT
	COMMAND
	COMMANDS
	COMPOSITE
	CONCURRENT
	CONSTRAINT
	CONSTRAINTS
	CONTAINS
	CONTINUE
	COPY
	COUNT
	CREATE
	CSV
	CURRENT
	DATA
	DATABASE
	DATABASES
	DATE
	DATETIME
	DBMS
	DEALLOCATE
	DEFAULT
	DEFINED
	DELETE
	DENY
	DESC
	DESCENDING
	DESTROY
	DETACH
	DIFFERENT
	DISTINCT
	DRIVER
	DROP
	DRYRUN
	DUMP
	DURATION
	EACH
	EDGE
	ELEMENT
	ELEMENTS
	ELSE
	ENABLE
	ENCRYPTED
	END
	ENDS
	ERROR
	EXECUTABLE
	EXECUTE
	EXIST
	EXISTENCE
	EXISTS
	FAIL
	FALSE
	FIELDTERMINATOR
	FINISH
	FLOAT
	FOR
	FOREACH
	FROM
	FULLTEXT
	FUNCTION
	FUNCTIONS
	GRANT
	GRAPH
	GRAPHS
	GROUP
	GROUPS
	HEADERS
	HOME
	IF
	IMMUTABLE
	IMPERSONATE
	IN
	INDEX
	INDEXES
	INF
	INFINITY
	INSERT
	INT
	INTEGER
	IS
	JOIN
	KEY
	LABEL
	LABELS
	LEADING
	LIMIT
	LIST
	LOAD
	LOCAL
	LOOKUP
	MANAGEMENT
	MAP
	MATCH
	MERGE
	NAME
	NAMES
	NAN
	NEW
	NFC
	NFD
	NFKC
	NFKD
	NODE
	NODES
	NODETACH
	NONE
	NORMALIZE
	NORMALIZED
	NOT
	NOTHING
	NOWAIT
	NULL
	OF
	OFFSET
	ON
	ONLY
	OPTION
	OPTIONAL
	OPTIONS
	OR
	ORDER
	OUTPUT
	PASSWORD
	PASSWORDS
	PATH
	PATHS
	PLAINTEXT
	POINT
	POPULATED
	PRIMARIES
	PRIMARY
	PRIVILEGE
	PRIVILEGES
	PROCEDURE
	PROCEDURES
	PROPERTIES
	PROPERTY
	RANGE
	READ
	REALLOCATE
	REDUCE
	REL
	RELATIONSHIP
	RELATIONSHIPS
	REMOVE
	RENAME
	REPEATABLE
	REPLACE
	REPORT
	REQUIRE
	REQUIRED
	RESTRICT
	RETURN
	REVOKE
	ROLE
	ROLES
	ROW
	ROWS
	SCAN
	SEC
	SECOND
	SECONDARIES
	SECONDARY
	SECONDS
	SEEK
	SERVER
	SERVERS
	SET
	SETTING
	SETTINGS
	SHORTEST
	SHORTESTPATH
	SHOW
	SIGNED
	SINGLE
	SKIP
	START
	STARTS
	STATUS
	STOP
	STRING
	SUPPORTED
	SUSPENDED
	TARGET
	TERMINATE
	TEXT
	THEN
	TIME
	TIMESTAMP
	TIMEZONE
	TO
	TOPOLOGY
	TRAILING
	TRANSACTION
	TRANSACTIONS
	TRAVERSE
	TRIM
	TRUE
	TYPE
	TYPED
	TYPES
	UNION
	UNIQUE
	UNIQUENESS
	UNWIND
	URL
	USE
	USER
	USERS
	USING
	VALUE
	VARCHAR
	VECTOR
	VERBOSE
	VERTEX
	WAIT
	WHEN
	WHERE
	WITH
	WITHOUT
	WRITE
	XOR
	YIELD
	ZONE
	ZONED
	keywordEnd
)

// keywordText holds the canonical spelling of every keyword kind, in
// declaration order.
var keywordText = [...]string{
	"ACCESS",
	"ACTIVE",
	"ADMIN",
	"ADMINISTRATOR",
	"ALIAS",
	"ALIASES",
	"ALL",
	"ALLSHORTESTPATHS",
	"ALTER",
	"AND",
	"ANY",
	"ARRAY",
	"AS",
	"ASC",
	"ASCENDING",
	"ASSERT",
	"ASSIGN",
	"AT",
	"AUTH",
	"BINDINGS",
	"BOOL",
	"BOOLEAN",
	"BOOSTED",
	"BOTH",
	"BREAK",
	"BRIEF",
	"BTREE",
	"BUILT",
	"BY",
	"CALL",
	"CASCADE",
	"CASE",
	"CHANGE",
	"CIDR",
	"COLLECT",
	"COMMAND",
	"COMMANDS",
	"COMPOSITE",
	"CONCURRENT",
	"CONSTRAINT",
	"CONSTRAINTS",
	"CONTAINS",
	"CONTINUE",
	"COPY",
	"COUNT",
	"CREATE",
	"CSV",
	"CURRENT",
	"DATA",
	"DATABASE",
	"DATABASES",
	"DATE",
	"DATETIME",
	"DBMS",
	"DEALLOCATE",
	"DEFAULT",
	"DEFINED",
	"DELETE",
	"DENY",
	"DESC",
	"DESCENDING",
	"DESTROY",
	"DETACH",
	"DIFFERENT",
	"DISTINCT",
	"DRIVER",
	"DROP",
	"DRYRUN",
	"DUMP",
	"DURATION",
	"EACH",
	"EDGE",
	"ELEMENT",
	"ELEMENTS",
	"ELSE",
	"ENABLE",
	"ENCRYPTED",
	"END",
	"ENDS",
	"ERROR",
	"EXECUTABLE",
	"EXECUTE",
	"EXIST",
	"EXISTENCE",
	"EXISTS",
	"FAIL",
	"FALSE",
	"FIELDTERMINATOR",
	"FINISH",
	"FLOAT",
	"FOR",
	"FOREACH",
	"FROM",
	"FULLTEXT",
	"FUNCTION",
	"FUNCTIONS",
	"GRANT",
	"GRAPH",
	"GRAPHS",
	"GROUP",
	"GROUPS",
	"HEADERS",
	"HOME",
	"IF",
	"IMMUTABLE",
	"IMPERSONATE",
	"IN",
	"INDEX",
	"INDEXES",
	"INF",
	"INFINITY",
	"INSERT",
	"INT",
	"INTEGER",
	"IS",
	"JOIN",
	"KEY",
	"LABEL",
	"LABELS",
	"LEADING",
	"LIMIT",
	"LIST",
	"LOAD",
	"LOCAL",
	"LOOKUP",
	"MANAGEMENT",
	"MAP",
	"MATCH",
	"MERGE",
	"NAME",
	"NAMES",
	"NAN",
	"NEW",
	"NFC",
	"NFD",
	"NFKC",
	"NFKD",
	"NODE",
	"NODES",
	"NODETACH",
	"NONE",
	"NORMALIZE",
	"NORMALIZED",
	"NOT",
	"NOTHING",
	"NOWAIT",
	"NULL",
	"OF",
	"OFFSET",
	"ON",
	"ONLY",
	"OPTION",
	"OPTIONAL",
	"OPTIONS",
	"OR",
	"ORDER",
	"OUTPUT",
	"PASSWORD",
	"PASSWORDS",
	"PATH",
	"PATHS",
	"PLAINTEXT",
	"POINT",
	"POPULATED",
	"PRIMARIES",
	"PRIMARY",
	"PRIVILEGE",
	"PRIVILEGES",
	"PROCEDURE",
	"PROCEDURES",
	"PROPERTIES",
	"PROPERTY",
	"RANGE",
	"READ",
	"REALLOCATE",
	"REDUCE",
	"REL",
	"RELATIONSHIP",
	"RELATIONSHIPS",
	"REMOVE",
	"RENAME",
	"REPEATABLE",
	"REPLACE",
	"REPORT",
	"REQUIRE",
	"REQUIRED",
	"RESTRICT",
	"RETURN",
	"REVOKE",
	"ROLE",
	"ROLES",
	"ROW",
	"ROWS",
	"SCAN",
	"SEC",
	"SECOND",
	"SECONDARIES",
	"SECONDARY",
	"SECONDS",
	"SEEK",
	"SERVER",
	"SERVERS",
	"SET",
	"SETTING",
	"SETTINGS",
	"SHORTEST",
	"SHORTESTPATH",
	"SHOW",
	"SIGNED",
	"SINGLE",
	"SKIP",
	"START",
	"STARTS",
	"STATUS",
	"STOP",
	"STRING",
	"SUPPORTED",
	"SUSPENDED",
	"TARGET",
	"TERMINATE",
	"TEXT",
	"THEN",
	"TIME",
	"TIMESTAMP",
	"TIMEZONE",
	"TO",
	"TOPOLOGY",
	"TRAILING",
	"TRANSACTION",
	"TRANSACTIONS",
	"TRAVERSE",
	"TRIM",
	"TRUE",
	"TYPE",
	"TYPED",
	"TYPES",
	"UNION",
	"UNIQUE",
	"UNIQUENESS",
	"UNWIND",
	"URL",
	"USE",
	"USER",
	"USERS",
	"USING",
	"VALUE",
	"VARCHAR",
	"VECTOR",
	"VERBOSE",
	"VERTEX",
	"WAIT",
	"WHEN",
	"WHERE",
	"WITH",
	"WITHOUT",
	"WRITE",
	"XOR",
	"YIELD",
	"ZONE",
	"ZONED",
}

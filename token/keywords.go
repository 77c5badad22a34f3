package token

import "strings"

var keywords = map[string]Token{
	"SELECT": SELECT, "FROM": FROM, "WHERE": WHERE, "AND": AND, "OR": OR,
	"NOT": NOT, "LIKE": LIKE, "IS": IS, "NULL": NULL, "TRUE": TRUE, "FALSE": FALSE, "AS": AS,

	"JOIN": JOIN, "INNER": INNER, "LEFT": LEFT, "RIGHT": RIGHT, "CROSS": CROSS, "ON": ON,

	"ORDER": ORDER, "BY": BY, "ASC": ASC, "DESC": DESC,

	"LIMIT": LIMIT, "OFFSET": OFFSET,

	"INSERT": INSERT, "INTO": INTO, "VALUES": VALUES,

	"UPDATE": UPDATE, "SET": SET,

	"DELETE": DELETE,

	"CREATE": CREATE, "DROP": DROP, "TABLE": TABLE, "IF": IF, "EXISTS": EXISTS,

	"PRIMARY": PRIMARY, "KEY": KEY, "UNIQUE": UNIQUE,

	"INTEGER": INTEGER, "INT": INT_TYPE,
	"TEXT": TEXT_TYPE, "VARCHAR": VARCHAR, "STRING": STRING_TYPE,
	"REAL": REAL_TYPE, "FLOAT": FLOAT_TYPE, "DOUBLE": DOUBLE,
	"BOOLEAN": BOOLEAN_TYPE, "BOOL": BOOL_TYPE,
}

// LookupIdent returns the keyword token for val if it is a reserved word
// (case-insensitive), otherwise IDENT.
func LookupIdent(val string) Token {
	if tok, ok := keywords[strings.ToUpper(val)]; ok {
		return tok
	}
	return IDENT
}

// IsTypeName reports whether tok spells a data type keyword.
func IsTypeName(tok Token) bool {
	switch tok {
	case INTEGER, INT_TYPE, TEXT_TYPE, VARCHAR, STRING_TYPE, REAL_TYPE, FLOAT_TYPE, DOUBLE, BOOLEAN_TYPE, BOOL_TYPE:
		return true
	default:
		return false
	}
}

package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDriverName is the database/sql driver NewDB opens sqlite files with.
// It is go-sqlite3 plus the functions below.
const SQLiteDriverName = "sqlite3_trivia"

// UnicodeLowerFunc lowercases with Go's Unicode tables. The built-in
// LOWER only folds ASCII without ICU.
const UnicodeLowerFunc = "unicode_lower"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(UnicodeLowerFunc, strings.ToLower, true)
		},
	})
}

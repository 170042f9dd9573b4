package commands

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vernacular-lang/vernacular/interp"
)

var errNoDatabase = interp.NewEvaluationError(0, "no database is open: connect to one first")

func (r *Runtime) databasePatterns() []pattern {
	return []pattern{
		cmd(`(?:create|connect to|open) (?:a )?(?:new )?database (\S+)`,
			`connect to database FILE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db != nil {
					r.db.Close()
				}
				db, err := sql.Open("sqlite", m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not open database %s: %v", m[1], err)
				}
				r.db = db
				r.dbPath = m[1]
				r.printf("Connected to database %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`create (?:a )?table (\w+) with columns (.+)`,
			`create a table NAME with columns A, B, C`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				cols := splitFields(m[2])
				defs := make([]string, len(cols))
				for i, col := range cols {
					defs[i] = col + " TEXT"
				}
				stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", m[1], strings.Join(defs, ", "))
				if _, err := r.db.Exec(stmt); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not create table %s: %v", m[1], err)
				}
				r.printf("Created table %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`(?:insert|add) (?:the )?(?:row )?(.+) into (?:the )?table (\w+)`,
			`insert A, B, C into table NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				var values []any
				for _, field := range strings.Split(m[1], ",") {
					values = append(values, stringOperand(sc, field))
				}
				marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
				stmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", m[2], marks)
				if _, err := r.db.Exec(stmt, values...); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not insert into %s: %v", m[2], err)
				}
				r.printf("Inserted into %s", m[2])
				return interp.Normal, nil
			}),
		cmd(`show (?:all )?(?:the )?(?:rows|records) (?:from|in) (?:the )?(?:table )?(\w+)`,
			`show all rows in table NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				count, err := r.dumpQuery("SELECT * FROM " + m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read %s: %v", m[1], err)
				}
				sc.Assign("result", count)
				r.printf("%d row(s)", count)
				return interp.Normal, nil
			}),
		cmd(`update (?:the )?(?:table )?(\w+) set (\w+) to (.+?) where (\w+) is (.+)`,
			`update table NAME set COL to VALUE where COL is VALUE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				stmt := fmt.Sprintf("UPDATE %s SET %s = ? WHERE %s = ?", m[1], m[2], m[4])
				res, err := r.db.Exec(stmt, stringOperand(sc, m[3]), stringOperand(sc, m[5]))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not update %s: %v", m[1], err)
				}
				n, _ := res.RowsAffected()
				r.printf("Updated %d row(s) in %s", n, m[1])
				return interp.Normal, nil
			}),
		cmd(`delete (?:rows )?from (?:the )?(?:table )?(\w+) where (\w+) is (.+)`,
			`delete from table NAME where COL is VALUE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", m[1], m[2])
				res, err := r.db.Exec(stmt, stringOperand(sc, m[3]))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not delete from %s: %v", m[1], err)
				}
				n, _ := res.RowsAffected()
				r.printf("Deleted %d row(s) from %s", n, m[1])
				return interp.Normal, nil
			}),
		cmd(`drop (?:the )?table (\w+)`,
			`drop the table NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				if _, err := r.db.Exec("DROP TABLE IF EXISTS " + m[1]); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not drop %s: %v", m[1], err)
				}
				r.printf("Dropped table %s", m[1])
				return interp.Normal, nil
			}),
		cmd(`(?:show|list) (?:all )?(?:the )?tables`,
			`show all tables`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				count, err := r.dumpQuery("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not list tables: %v", err)
				}
				if count == 0 {
					r.printf("No tables yet")
				}
				return interp.Normal, nil
			}),
		cmd(`describe (?:the )?table (\w+)`,
			`describe the table NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				rows, err := r.db.Query("SELECT name, type FROM pragma_table_info(?)", m[1])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not describe %s: %v", m[1], err)
				}
				defer rows.Close()
				found := false
				for rows.Next() {
					var name, typ string
					if err := rows.Scan(&name, &typ); err != nil {
						return interp.Normal, interp.NewEvaluationError(0, "could not describe %s: %v", m[1], err)
					}
					r.printf("%s (%s)", name, typ)
					found = true
				}
				if err := rows.Err(); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not describe %s: %v", m[1], err)
				}
				if !found {
					return interp.Normal, interp.NewEvaluationError(0, "there is no table called %q", m[1])
				}
				return interp.Normal, nil
			}),
		cmd(`close (?:the )?database`,
			`close the database`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if r.db == nil {
					return interp.Normal, errNoDatabase
				}
				path := r.dbPath
				if err := r.Close(); err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not close the database: %v", err)
				}
				r.printf("Closed database %s", path)
				return interp.Normal, nil
			}),
	}
}

// dumpQuery prints every row of a query pipe-separated and returns the row
// count.
func (r *Runtime) dumpQuery(query string, args ...any) (int, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return count, err
		}
		parts := make([]string, len(cols))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			parts[i] = formatValue(v)
		}
		r.printf("%s", strings.Join(parts, " | "))
		count++
	}
	return count, rows.Err()
}

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vernacular-lang/vernacular/interp"
)

func TestFileSaveReadAppendDelete(t *testing.T) {
	rt, sc, out := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "notes.txt")

	execAll(t, rt, sc,
		`save "first line" to the file `+path,
		`append "second line" to the file `+path,
		"read the file "+path,
	)

	v, ok := sc.Resolve("file_contents")
	require.True(t, ok)
	assert.Equal(t, "first line\nsecond line", v)
	assert.Contains(t, out.String(), "second line")

	execAll(t, rt, sc, "delete the file "+path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileExists(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "here.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	execAll(t, rt, sc, "check if the file "+path+" exists")
	v, _ := sc.Resolve("result")
	assert.Equal(t, true, v)

	execAll(t, rt, sc, "check if the file "+path+".missing exists")
	v, _ = sc.Resolve("result")
	assert.Equal(t, false, v)
}

func TestReadMissingFileIsCommandError(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf("read the file /no/such/place.txt", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.EvaluationError, rerr.Kind)
}

func TestCSVCreateAppendRead(t *testing.T) {
	rt, sc, out := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "data.csv")

	execAll(t, rt, sc,
		"create a csv file "+path+" with headers name, age",
		"add row ada, 36 to csv "+path,
		"read the csv file "+path,
	)

	assert.Contains(t, out.String(), "name | age")
	assert.Contains(t, out.String(), "ada | 36")

	v, _ := sc.Resolve("result")
	assert.Equal(t, 2, v)
}

func TestJSONListRoundTrip(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "pets.json")

	execAll(t, rt, sc,
		"create a list called pets with cat, dog",
		"save list pets to json file "+path,
		"load json file "+path+" into list copy",
	)

	v, _ := sc.Resolve("copy")
	items, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.EqualValues(t, "cat", items[0])
}

func TestYAMLListRoundTrip(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "nums.yaml")

	execAll(t, rt, sc,
		"create a list called nums with 1, 2, 3",
		"save list nums to yaml file "+path,
		"load yaml file "+path+" into list copy",
	)

	v, _ := sc.Resolve("copy")
	items, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.EqualValues(t, 1, items[0])
}

func TestDatabaseCommands(t *testing.T) {
	rt, sc, out := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "app.db")

	execAll(t, rt, sc,
		"connect to database "+path,
		"create a table users with columns name, age",
		"insert ada, 36 into table users",
		"insert grace, 45 into table users",
		"show all rows in users",
	)

	assert.Contains(t, out.String(), "ada | 36")
	assert.Contains(t, out.String(), "grace | 45")
	v, _ := sc.Resolve("result")
	assert.Equal(t, 2, v)

	execAll(t, rt, sc,
		"update users set age to 37 where name is ada",
		"delete from users where name is grace",
		"show all rows in users",
	)
	assert.Contains(t, out.String(), "ada | 37")

	execAll(t, rt, sc, "show all tables")
	assert.Contains(t, out.String(), "users")

	execAll(t, rt, sc, "describe the table users")
	assert.Contains(t, out.String(), "name (TEXT)")

	execAll(t, rt, sc, "drop the table users", "close the database")
}

func TestDatabaseCommandsRequireConnection(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf("create a table users with columns name", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Message, "no database")
}

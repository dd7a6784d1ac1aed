package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbJSON struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Local bool   `json:"local"`
}

func TestDB_List(t *testing.T) {
	env := newTestEnv(t)
	env.run("init", "--db", "notes", "--local")

	var dbs []dbJSON
	env.runJSON(&dbs, "db")
	require.Len(t, dbs, 2)
	assert.Equal(t, dbJSON{Name: "notes", File: "quire-notes.db", Local: true}, dbs[0])
	assert.Equal(t, dbJSON{Name: "", File: "quire.db", Local: false}, dbs[1])

	out := env.run("db")
	env.contains(out, "quire-notes.db  local")
	env.contains(out, "quire.db  shared")
}

func TestDB_LocalShare(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("db", "--local")
	env.equals(out, "quire.db: local")
	data, err := os.ReadFile(env.path(".quire", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "quire.db")

	out = env.run("db", "--share")
	env.equals(out, "quire.db: shared")

	_, err = env.runErr("db", "--local", "--share")
	assert.Error(t, err)
}

func TestDB_NoRepository(t *testing.T) {
	env := newBareEnv(t)
	_, err := env.runErr("db")
	assert.Error(t, err)
}

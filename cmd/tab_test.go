package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tabJSON struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"is_custom"`
}

func (e *testEnv) tabs() (string, []tabJSON) {
	e.t.Helper()
	var list struct {
		Active string    `json:"active"`
		Tabs   []tabJSON `json:"tabs"`
	}
	e.runJSON(&list, "tab")
	return list.Active, list.Tabs
}

func TestTab_List(t *testing.T) {
	env := newTestEnv(t)

	active, tabs := env.tabs()
	assert.Equal(t, "program", active)
	require.Len(t, tabs, 3)
	assert.Equal(t, "program", tabs[0].ID)
	assert.Equal(t, "api", tabs[1].ID)
	assert.Equal(t, "app", tabs[2].ID)
	for _, tb := range tabs {
		assert.False(t, tb.IsCustom)
	}

	out := env.run("tab", "ls")
	env.contains(out, "program")
}

func TestTab_AddEditRm(t *testing.T) {
	env := newTestEnv(t)

	var added tabJSON
	env.runJSON(&added, "tab", "add", "Guides", "--icon", "G")
	assert.True(t, strings.HasPrefix(added.ID, "custom-"), added.ID)
	assert.Equal(t, "Guides", added.Label)
	assert.Equal(t, "G", added.Icon)
	assert.True(t, added.IsCustom)

	out := env.run("tab", "add", "Recipes")
	env.contains(out, "Added tab custom-")
	env.contains(out, "(Recipes)")

	out = env.run("tab", "edit", added.ID, "How-to")
	env.contains(out, "Updated tab "+added.ID+" (How-to)")
	_, tabs := env.tabs()
	require.Len(t, tabs, 5)
	assert.Equal(t, "How-to", tabs[3].Label)
	assert.Equal(t, "G", tabs[3].Icon, "an empty icon keeps the current one")

	env.run("new", "Recipe", "--slug", "recipe", "--tab", added.ID)
	env.run("versions", "clone", "v1", "v2")
	env.run("open", "recipe")

	out = env.run("tab", "rm", added.ID)
	env.contains(out, "Removed tab "+added.ID)

	// The tab's pages are gone from every version.
	_, err := env.runErr("cat", "recipe")
	assert.Error(t, err)
	_, err = env.runErr("cat", "recipe", "--version", "v2")
	assert.Error(t, err)

	var st struct{ Version, Tab, Page string }
	env.runJSON(&st, "status")
	assert.Equal(t, "program", st.Tab)
	assert.Equal(t, "intro", st.Page)

	_, err = env.runErr("tab", "edit", added.ID, "Gone")
	assert.Error(t, err)
	_, err = env.runErr("tab", "rm", added.ID)
	assert.Error(t, err)
	_, err = env.runErr("tab", "add", "   ")
	assert.Error(t, err)
}

func TestTab_Use(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("tab", "use", "api")
	env.contains(out, "Using tab api")

	active, _ := env.tabs()
	assert.Equal(t, "api", active)

	// New pages land in the active tab by default.
	var created struct{ Slug, Kind, Tab string }
	env.runJSON(&created, "new", "Auth")
	assert.Equal(t, "api", created.Tab)

	_, err := env.runErr("tab", "use", "nope")
	assert.Error(t, err)
}

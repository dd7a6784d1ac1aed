package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("guide")
	env.contains(out, "# quire guide")

	out = env.run("guide", "versions")
	env.contains(out, "# Versions")

	var g map[string]string
	env.runJSON(&g, "guide", "tabs")
	assert.Contains(t, g["guide"], "tab")

	out, err := env.runErr("guide", "nope")
	assert.Error(t, err)
	env.contains(out, "Available:")
	env.contains(out, "transfer")
}

func TestVersionCommand(t *testing.T) {
	env := newBareEnv(t)
	out := env.run("version")
	env.contains(out, "Go Version:")
}

func TestVacuum(t *testing.T) {
	env := newTestEnv(t)
	env.run("versions", "clone", "v1", "v2")
	env.run("versions", "rm", "v2")

	out := env.run("vacuum")
	env.contains(out, "Vacuumed:")

	var r map[string]any
	env.runJSON(&r, "vacuum")
	assert.NotEmpty(t, r)
}

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"f3os/internal/errors"
	"f3os/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeTree lays out a small console tree and returns its root
func writeTree(t *testing.T) string {
	return testutils.WriteTree(t, map[string]string{
		"dirfile":          "notes.txt\n> secrets\n",
		"notes.txt":        "hello\n",
		"secrets/dirfile":  "plan.txt\n",
		"secrets/plan.txt": "hack_lvl 1\n<-<without_hack>->\nthe plan\n",
	})
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExecArgs(t *testing.T) {
	root := writeTree(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, err := execute(t, "", "exec", "--config", cfgPath, "--root", root, "dir", "open notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "______Dirrectory_______\n> secrets\nnotes.txt\nhello\n", out)
}

func TestExecStdinStopsAtExit(t *testing.T) {
	root := writeTree(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	stdin := "cd secrets\nopen plan.txt\nexitFromThisHell\nopen plan.txt\n"
	out, err := execute(t, stdin, "exec", "--config", cfgPath, "--root", root)
	require.NoError(t, err)
	assert.Equal(t, "______Dirrectory_______\nplan.txt\nthe plan\n", out)
}

func TestExecCustomVerbs(t *testing.T) {
	root := writeTree(t)
	cfgPath := filepath.Join(t.TempDir(), "config.jsonc")
	testutils.WriteFile(t, cfgPath, `{
		// only ls is configured
		"commands": {"ls": "show_directory"},
	}`)

	out, err := execute(t, "", "exec", "--config", cfgPath, "--root", root, "ls", "read_file notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "______Dirrectory_______\n> secrets\nnotes.txt\nhello\n", out)
}

func TestExecMissingRoot(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	_, err := execute(t, "", "exec", "--config", cfgPath, "--root", filepath.Join(t.TempDir(), "nope"), "dir")
	assert.Error(t, err)
}

func TestExecInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	testutils.WriteFile(t, cfgPath, `{"commands": `)
	_, err := execute(t, "", "exec", "--config", cfgPath, "--root", writeTree(t), "dir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fix or remove "+cfgPath)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestExecBadHiddenPattern(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	testutils.WriteFile(t, cfgPath, `{"hidden": ["[unclosed"]}`)
	_, err := execute(t, "", "exec", "--config", cfgPath, "--root", writeTree(t), "dir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad hidden pattern")
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestConfigCommand(t *testing.T) {
	root := writeTree(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	testutils.WriteFile(t, cfgPath, `{"fontsize": 14, "color": "ff0000"}`)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "", "config", "--config", cfgPath, "--root", root)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, float64(14), got["fontsize"])
		assert.Equal(t, "#ff0000", got["color"])
		assert.Equal(t, root, got["working_path"])
		assert.Contains(t, got, "commands")
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "", "config", "--config", cfgPath, "--yaml")
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, 14, got["fontsize"])
		assert.Equal(t, ".", got["working_path"])
	})
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "", "bogus")
	assert.Error(t, err)
}

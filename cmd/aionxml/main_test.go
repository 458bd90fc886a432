package main

import (
	"aionxml"
	"bytes"
	"encoding/json"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const weatherDocument = `<skills>
  <weather type="skill">
    <version>1.0</version>
    <author>blueShard</author>
  </weather>
  <clock type="skill">
    <version>0.3</version>
  </clock>
</skills>`

func writeDocument(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("AION_DATA_PATH", "")
	t.Setenv("AION_RUNTIME_GLOB", "")
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCmd(t *testing.T) {
	path := writeDocument(t, weatherDocument)
	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "query", path, "version")
		require.NoError(t, err)
		require.Equal(t, "version (2)\n"+
			"  parent=weather attrs={} children= text=\"1.0\"\n"+
			"  parent=clock attrs={} children= text=\"0.3\"\n", out)
	})
	t.Run("root", func(t *testing.T) {
		out, err := execute(t, "query", path, aionxml.Root)
		require.NoError(t, err)
		require.Equal(t, "skills (1)\n  parent=- attrs={} children=weather,clock\n", out)
	})
	t.Run("json keeps order", func(t *testing.T) {
		out, err := execute(t, "query", path, "version", "author", "--output", "json")
		require.NoError(t, err)
		require.Less(t, strings.Index(out, `"version"`), strings.Index(out, `"author"`))
		var decoded map[string][]aionxml.IndexEntry
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		require.Len(t, decoded["version"], 2)
		require.Equal(t, "blueShard", decoded["author"][0].Text)
	})
	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "query", path, "author", "-o", "yaml")
		require.NoError(t, err)
		var decoded map[string][]aionxml.IndexEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
		require.Equal(t, "weather", decoded["author"][0].Parent.Tag)
		require.Equal(t, aionxml.Attrs{"type": "skill"}, decoded["author"][0].Parent.Attrs)
	})
	t.Run("where", func(t *testing.T) {
		out, err := execute(t, "query", path, "version", "--where", `parent == "clock"`)
		require.NoError(t, err)
		require.Equal(t, "version (1)\n  parent=clock attrs={} children= text=\"0.3\"\n", out)
	})
	t.Run("format from config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\n"), 0o644))
		out, err := execute(t, "--config", cfgPath, "query", path, "author")
		require.NoError(t, err)
		require.True(t, json.Valid([]byte(out)))
	})
	t.Run("invalid format", func(t *testing.T) {
		_, err := execute(t, "query", path, "-o", "toml")
		require.ErrorContains(t, err, "invalid output format")
	})
	t.Run("malformed document", func(t *testing.T) {
		_, err := execute(t, "query", writeDocument(t, "<skills><open></skills>"))
		require.True(t, aionxml.IsMalformed(err))
	})
}

func TestExistsCmd(t *testing.T) {
	path := writeDocument(t, weatherDocument)
	out, err := execute(t, "exists", path, "clock")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = execute(t, "exists", path, "version")
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
}

func TestFmtCmd(t *testing.T) {
	path := writeDocument(t, weatherDocument)
	out, err := execute(t, "fmt", path, "--compact")
	require.NoError(t, err)
	require.Equal(t, `<skills><weather type="skill"><version>1.0</version><author>blueShard</author></weather>`+
		`<clock type="skill"><version>0.3</version></clock></skills>`+"\n", out)

	_, err = execute(t, "fmt", path, "--compact", "--write")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strings.TrimSuffix(out, "\n"), string(data))
}

func TestEditCmds(t *testing.T) {
	t.Run("dry run leaves file untouched", func(t *testing.T) {
		path := writeDocument(t, weatherDocument)
		out, err := execute(t, "add", path, "clock", "author", "--text", "someone", "--dry-run")
		require.NoError(t, err)
		require.Contains(t, out, "+     <author>someone</author>\n")
		require.Contains(t, out, "      <version>0.3</version>\n")
		require.NotContains(t, out, "- ")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, weatherDocument, string(data))
	})
	t.Run("add", func(t *testing.T) {
		path := writeDocument(t, weatherDocument)
		out, err := execute(t, "add", path, "<root>", "calendar", "--attr", "type=skill")
		require.NoError(t, err)
		require.Equal(t, "add: 1 element(s)\n", out)
		ix, err := aionxml.NewIndexer(aionxml.Config{}, path)
		require.NoError(t, err)
		require.True(t, ix.Exists("calendar"))
	})
	t.Run("update with parent filter", func(t *testing.T) {
		path := writeDocument(t, `<skills><a kind="x"><v>1</v></a><a kind="y"><v>1</v></a></skills>`)
		out, err := execute(t, "update", path, "a", "v", "--text", "2", "--parent-attr", "kind=y")
		require.NoError(t, err)
		require.Equal(t, "update: 1 element(s)\n", out)
		out, err = execute(t, "fmt", path, "--compact")
		require.NoError(t, err)
		require.Equal(t, `<skills><a kind="x"><v>1</v></a><a kind="y"><v>2</v></a></skills>`+"\n", out)
	})
	t.Run("remove", func(t *testing.T) {
		path := writeDocument(t, weatherDocument)
		out, err := execute(t, "remove", path, "weather", "version")
		require.NoError(t, err)
		require.Equal(t, "remove: 1 element(s)\n", out)
		out, err = execute(t, "query", path, "version")
		require.NoError(t, err)
		require.Equal(t, "version (1)\n  parent=clock attrs={} children= text=\"0.3\"\n", out)
	})
	t.Run("bad attribute", func(t *testing.T) {
		path := writeDocument(t, weatherDocument)
		_, err := execute(t, "add", path, "clock", "alarm", "--attr", "novalue")
		require.ErrorContains(t, err, "expected key=value")
	})
}

func TestBuildCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "built.xml")
	_, err := execute(t, "build", path, "--root", "skills", "--root-attr", "version=2",
		"--child", "weather", "--child", "weather/version=1.0", "--child", "clock")
	require.NoError(t, err)
	out, err := execute(t, "fmt", path, "--compact")
	require.NoError(t, err)
	require.Equal(t, `<skills version="2"><weather><version>1.0</version></weather><clock></clock></skills>`+"\n", out)

	_, err = execute(t, "build", path, "--root", "skills", "--child", "missing/version")
	require.True(t, aionxml.IsUnknownParent(err))

	_, err = execute(t, "build", path)
	require.Error(t, err)
}

func TestParseChild(t *testing.T) {
	spec, err := parseChild("weather/version=1.0")
	require.NoError(t, err)
	require.Equal(t, childSpec{parent: "weather", tag: "version", text: "1.0", hasText: true}, spec)

	spec, err = parseChild("clock=")
	require.NoError(t, err)
	require.Equal(t, childSpec{tag: "clock", hasText: true}, spec)

	for _, bad := range []string{"", "/tag", "a/", "a/b/c", "=text"} {
		_, err := parseChild(bad)
		require.Error(t, err, bad)
	}
}

func TestSkillsCmd(t *testing.T) {
	dir := t.TempDir()
	skillsFile := filepath.Join(dir, "skills", "skills.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(skillsFile), 0o755))
	require.NoError(t, os.WriteFile(skillsFile, []byte(weatherDocument), 0o644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_path: "+dir+"\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "skills")
	require.NoError(t, err)
	require.Equal(t, "weather\nclock\n", out)

	out, err = execute(t, "--config", cfgPath, "skills", "weather")
	require.NoError(t, err)
	require.Equal(t, "author: blueShard\nskill_name: weather\nversion: 1\n", out)
}

func TestRuntimeCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("runtime_glob: "+filepath.Join(dir, "aion-*")+"\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "runtime")
	require.NoError(t, err)
	require.Equal(t, "unavailable\n", out)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "aion-0.2.0"), 0o755))
	out, err = execute(t, "--config", cfgPath, "runtime")
	require.NoError(t, err)
	require.Equal(t, "available "+filepath.Join(dir, "aion-0.2.0")+"\n", out)
}

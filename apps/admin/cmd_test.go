package main

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alama/core"
)

const (
	rosterFile  = "testdata/roster.yaml"
	generalFile = "testdata/general.yaml"
	invalidFile = "testdata/invalid.yaml"
)

func newConfig() *core.Config {
	conf := &core.Config{Env: "TEST", TestMode: true}
	conf.Records.Curriculum = "science"
	return conf
}

// execute runs the admin command line with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(newConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErrStr string
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand(newConfig())
	require.NotNil(t, cmd)
	assert.Equal(t, "alama-admin", cmd.Use)

	for _, name := range []string{"roster", "show", "curriculum"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}

	fileFlag := cmd.PersistentFlags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "f", fileFlag.Shorthand)

	curriculumFlag := cmd.PersistentFlags().Lookup("curriculum")
	require.NotNil(t, curriculumFlag)
	assert.Equal(t, "science", curriculumFlag.DefValue)
}

func Test_commandLine_roster(t *testing.T) {
	g := newGoldie(t)

	tests := []struct {
		golden string
		args   []string
	}{
		{golden: "roster", args: []string{"roster", "-f", rosterFile}},
		{golden: "roster_search", args: []string{"roster", "-f", rosterFile, "--search", "JUMA"}},
		{golden: "roster_form", args: []string{"roster", "-f", rosterFile, "--form", "1"}},
		{golden: "roster_search_form", args: []string{"roster", "-f", rosterFile, "-s", " juma ", "--form", "4"}},
		{golden: "roster_empty", args: []string{"roster", "-f", rosterFile, "--search", "lol"}},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.golden, []byte(out))
		})
	}
}

func Test_commandLine_show(t *testing.T) {
	g := newGoldie(t)

	tests := []struct {
		golden string
		args   []string
	}{
		{golden: "show_s1", args: []string{"show", "-f", rosterFile, "s1"}},
		{golden: "show_s2", args: []string{"show", "-f", rosterFile, " S2 "}},
		{golden: "show_general", args: []string{"show", "-f", generalFile, "--curriculum", "general", "g1"}},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.golden, []byte(out))
		})
	}
}

func Test_commandLine_curriculum(t *testing.T) {
	g := newGoldie(t)

	tests := []struct {
		golden string
		args   []string
	}{
		{golden: "curriculum_science", args: []string{"curriculum"}},
		{golden: "curriculum_general", args: []string{"curriculum", "--name", "General"}},
		{golden: "curriculum_general", args: []string{"--curriculum", "general", "curriculum"}},
	}
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.golden, []byte(out))
		})
	}
}

func Test_commandLine_errors(t *testing.T) {
	tests := []cliTest{
		{name: "no roster", args: []string{"roster"}, wantErrStr: errNoRoster.Error()},
		{name: "missing roster", args: []string{"roster", "-f", "testdata/missing.yaml"}, wantErrStr: "opening roster"},
		{
			name:       "invalid roster",
			args:       []string{"roster", "-f", invalidFile},
			wantErrStr: "registering student #2 (s2): age: age is outside the allowed range; form: unrecognized form level",
		},
		{
			name:       "wrong curriculum for the roster",
			args:       []string{"roster", "-f", rosterFile, "--curriculum", "general"},
			wantErrStr: "recording form 2 results of S1",
		},
		{name: "unknown curriculum", args: []string{"curriculum", "--name", "arts"}, wantErrStr: `"arts": unknown curriculum`},
		{name: "student not found", args: []string{"show", "-f", rosterFile, "S3"}, wantErrStr: notFoundText},
		{name: "show without id", args: []string{"show", "-f", rosterFile}, wantErrStr: "accepts 1 arg(s), received 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErrStr)
			}
		})
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--no-log"))

	err := root.Execute()
	return out.String(), err
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.True(t, strings.HasPrefix(lines[3], "xxstring"))
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	require.Contains(t, out, "------------------  Search  ------------------")
	require.Contains(t, out, "The desired value is in cell number 4, placement number 0\n")

	out, err = execute(t, "demo", "--keys", "xxstring", "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, "Searching the value: pear\n")
	require.Contains(t, out, `growtable_table_removes_total{outcome="found",table="demo"} 6`)
}

func TestDemoCommandTightBudget(t *testing.T) {
	out, err := execute(t, "demo", "--memory-budget", "300", "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, "growtable_table_entries")
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, "demo", "--keys", "float")
	require.Error(t, err)

	_, err = execute(t, "demo", "--memory-budget", "lots")
	require.Error(t, err)

	_, err = execute(t, "demo", "--log-level", "loud")
	require.Error(t, err)

	_, err = execute(t, "demo", "--capacity", "0")
	require.Error(t, err)
}

func TestLoadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("# pairs\n543 a\n6543 b\n-22 c\n3 d\n"), 0644))

	out, err := execute(t, "load", path, "--capacity", "2",
		"--find", "3,99", "--remove", "-22,-22", "--print")
	require.NoError(t, err)
	require.Equal(t,
		"3: cell 3, slot 0, value \"d\"\n"+
			"99: not found\n"+
			"-22: removed=true\n"+
			"-22: removed=false\n"+
			"[0]\t\n"+
			"[1]\t\n"+
			"[2]\t543,a\t-->\t6543,b\t-->\t\n"+
			"[3]\t3,d\t-->\t\n",
		out)

	_, err = execute(t, "load", path, "--keys", "string", "--find", "543")
	require.NoError(t, err)

	_, err = execute(t, "load", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestGetMountpoint(t *testing.T) {
	require.Equal(t, "pairs", getMountpoint("/data/pairs.txt"))
	require.Equal(t, "pairs_mnt", getMountpoint("pairs"))
}

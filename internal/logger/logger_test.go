package logger

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/ostafen/growtable/pkg/table"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "Warn", "error", "off"} {
		l, err := ParseLevel(name)
		require.NoError(t, err)
		require.Equal(t, bytes.ToUpper([]byte(name)), []byte(l.String()))
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Debug("hidden")
	l.Infof("hidden %d", 1)
	l.Warn("shown")
	l.Errorf("shown %d", 2)

	require.Equal(t, "[WARN] shown\n[ERROR] shown 2\n", buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.False(t, l.Enabled(ErrorLevel))
	l.Error("nothing")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DebugLevel)

	var r table.Reporter = l
	r.Report(table.OpInsert, fmt.Errorf("%w: no room", table.ErrOutOfMemory))
	r.Report(table.OpFind, fmt.Errorf("%w: nil key", table.ErrInvalidArgument))
	r.Report(table.OpPrint, errors.New("broken pipe"))

	require.Equal(t,
		"[ERROR] insert: OutOfMemory: out of memory: no room\n"+
			"[WARN] find: InvalidArgument: invalid argument: nil key\n"+
			"[WARN] print: broken pipe\n",
		buf.String())
}

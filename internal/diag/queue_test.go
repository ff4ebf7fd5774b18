package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueHoldsEntriesUntilFlush(t *testing.T) {
	var overflow bytes.Buffer
	q := New(&overflow)

	q.Warn("terminal already initialized")
	q.WithField("path", "data.bin").Error("could not open file")
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, overflow.String())

	var out bytes.Buffer
	require.NoError(t, q.Flush(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=warning")
	assert.Contains(t, lines[0], "terminal already initialized")
	assert.Contains(t, lines[1], "path=data.bin")
	assert.Zero(t, q.Len())

	out.Reset()
	require.NoError(t, q.Flush(&out))
	assert.Empty(t, out.String())
}

func TestQueueRespectsLevel(t *testing.T) {
	q := New(nil)
	q.Debug("hidden")
	assert.Zero(t, q.Len())

	require.NoError(t, q.SetLevelName("debug"))
	assert.Equal(t, logrus.DebugLevel, q.GetLevel())
	q.Debug("visible")
	assert.Equal(t, 1, q.Len())

	assert.Error(t, q.SetLevelName("loud"))
}

func TestQueueOverflowWarnsOnce(t *testing.T) {
	var overflow bytes.Buffer
	q := New(&overflow)

	for i := 0; i < Capacity+5; i++ {
		q.Errorf("failure %d", i)
	}
	assert.Equal(t, Capacity, q.Len())
	assert.Equal(t, 5, q.Dropped())
	assert.Equal(t, 1, strings.Count(overflow.String(), overflowWarning))

	var out bytes.Buffer
	require.NoError(t, q.Flush(&out))
	assert.Contains(t, out.String(), "failure 0")
	assert.NotContains(t, out.String(), "failure 64")
	assert.Contains(t, out.String(), "(5 diagnostics dropped)")
	assert.Zero(t, q.Dropped())
}

package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed %s", "here")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info msg=shown 2")
	assert.Contains(t, out, "level=error msg=failed here")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNull(t *testing.T) {
	l := Null()
	l.Infof("nothing %d", 1)
	l.Errorf("nothing %d", 2)
	l.Debugf("nothing %d", 3)
}

package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Out: &buf})
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "loud", Out: &buf})
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}

func TestOr(t *testing.T) {
	assert.Same(t, Default(), Or(nil))

	l, _ := test.NewNullLogger()
	assert.Same(t, l, Or(l))
}

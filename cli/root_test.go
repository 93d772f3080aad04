package cli

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"convert", "serve", "config"} {
		cmd, _, err := RootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestNewLogger(t *testing.T) {
	conf := &cfg.Root{}
	conf.Pipeline.LogLvl = "debug"
	conf.Pipeline.LogFormat = "json"

	log, err := newLogger(conf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	conf.Pipeline.LogFormat = "xml"
	_, err = newLogger(conf)
	assert.Error(t, err)

	conf.Pipeline.LogFormat = "text"
	conf.Pipeline.LogLvl = "loud"
	_, err = newLogger(conf)
	assert.Error(t, err)
}

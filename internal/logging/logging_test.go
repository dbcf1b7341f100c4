package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{name: "debug", level: "debug", want: logrus.DebugLevel},
		{name: "warn", level: "warn", want: logrus.WarnLevel},
		{name: "mixed case", level: "Error", want: logrus.ErrorLevel},
		{name: "unknown falls back to info", level: "verbose", want: logrus.InfoLevel},
		{name: "empty falls back to info", level: "", want: logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := Setup(tt.level, "text")
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestSetupFormat(t *testing.T) {
	log := Setup("info", "json")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "json format should select the JSON formatter")

	log = Setup("info", "text")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok, "text format should select the text formatter")
}

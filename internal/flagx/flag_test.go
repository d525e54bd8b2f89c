package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	owned := []string{"-c", "-config", "-dsn"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "separate value", args: []string{"-c", "conf.json", "-x", "1"}, want: []string{"-c", "conf.json"}},
		{name: "equals form", args: []string{"-dsn=postgres://db/x", "-x"}, want: []string{"-dsn=postgres://db/x"}},
		{name: "foreign equals form dropped", args: []string{"-x=1", "-config=a.json"}, want: []string{"-config=a.json"}},
		{name: "order preserved", args: []string{"-dsn", "a.db", "-c", "b.json"}, want: []string{"-dsn", "a.db", "-c", "b.json"}},
		{name: "dangling flag", args: []string{"-c"}, want: []string{"-c"}},
		{name: "next flag is not a value", args: []string{"-c", "-dsn", "x.db"}, want: []string{"-c", "-dsn", "x.db"}},
		{name: "positional ignored", args: []string{"upload", "file.pdf"}, want: []string{}},
		{name: "empty", args: nil, want: []string{}},
		{name: "repeated", args: []string{"-c", "1.json", "-c", "2.json"}, want: []string{"-c", "1.json", "-c", "2.json"}},
		{name: "equals value may start with dash", args: []string{"-config=-odd.json"}, want: []string{"-config=-odd.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, owned))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/doclocker.json", ConfigFileFlag([]string{"-c", "/etc/doclocker.json"}))
	assert.Equal(t, "long.json", ConfigFileFlag([]string{"-dsn", "x.db", "-config", "long.json"}))
	assert.Equal(t, "2.json", ConfigFileFlag([]string{"-c", "1.json", "-config=2.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-dsn", "x.db"}))
	assert.Empty(t, ConfigFileFlag(nil))
}

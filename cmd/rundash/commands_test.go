package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"fetch", "serve"}, names)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	root := newRootCmd()

	config := root.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "./config/config.yaml", config.DefValue)
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("table"))
}

func TestFetchCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"fetch", "extra"})

	err := root.Execute()
	assert.Error(t, err)
}

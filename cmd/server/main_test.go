package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlags(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("host", "0.0.0.0", "")
	cmd.Flags().String("port", "8000", "")

	require.NoError(t, bindFlags(cmd))
	require.NoError(t, cmd.Flags().Set("host", "127.0.0.1"))
	require.NoError(t, cmd.Flags().Set("port", "9000"))

	assert.Equal(t, "127.0.0.1", viper.GetString("HOST"))
	assert.Equal(t, "9000", viper.GetString("PORT"))
}

func TestBindFlags_MissingFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("host", "0.0.0.0", "")

	err := bindFlags(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--port")
}

package options

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/promptdock/pkg/app"
)

func TestFormatFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	fo := &FormatOptions{}
	AddFormatArgs(cmd, fo, "")

	assert.Equal(t, app.Format(""), fo.Format)
	require.NoError(t, cmd.Flags().Set("format", "yml"))
	assert.Equal(t, app.FormatYAML, fo.Format)
	assert.Error(t, cmd.Flags().Set("format", "xml"))
	assert.Equal(t, app.FormatYAML, fo.Format)
}

func TestMCPEndpoint(t *testing.T) {
	tests := map[string]string{
		"":        "/mcp",
		"  ":      "/mcp",
		"prompts": "/prompts",
		"/a/b":    "/a/b",
	}
	for in, want := range tests {
		o := &MCPOptions{Path: in}
		assert.Equal(t, want, o.EndpointPath(), in)
	}
}

func TestMCPListenAddr(t *testing.T) {
	o := &MCPOptions{Host: "::1", Port: 9000}
	addr, err := o.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, "[::1]:9000", addr)

	o = &MCPOptions{Port: 0}
	addr, err = o.ListenAddr()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", addr)

	o.Port = 70000
	_, err = o.ListenAddr()
	assert.Error(t, err)
}

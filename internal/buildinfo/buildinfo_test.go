package buildinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	info := Read()
	require.Equal(t, version, info.Version)
	require.NotEmpty(t, info.GoVersion)

	lines := strings.Split(info.String(), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, version, lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Go Version:"))
}

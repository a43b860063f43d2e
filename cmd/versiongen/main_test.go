package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestCommand(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/versiongen/versions.json", 0644, strings.NewReader(`["5.4.1","5.4"]`)))

	out := new(bytes.Buffer)
	cmd := newCommand(fs, out)
	cmd.SetArgs([]string{"-v", "mem://localhost/versiongen/versions.json", "-d", "mem://localhost/versiongen/ci", "-j", "test"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))

	data, err := fs.DownloadWithURL(ctx, "mem://localhost/versiongen/ci/build-tot5.yaml")
	require.NoError(t, err)
	assert.Equal(t, "test-5.4.1:\n  extends: .test\n  variables:\n    NSO_VERSION: \"5.4.1\"\n", string(data))
}

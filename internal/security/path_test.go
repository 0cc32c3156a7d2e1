package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *PathValidator {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "cvs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cvs", "jane.pdf"), []byte("%PDF-1.4"), 0644))

	v, err := NewPathValidator(root)
	require.NoError(t, err)
	return v
}

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)

	v, err := NewPathValidator("/does/not/exist/yet")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/does/not/exist/yet"), v.Root())
}

func TestPathValidator_ResolveFile(t *testing.T) {
	v := newValidator(t)
	root := v.Root()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "absolute inside", path: filepath.Join(root, "cvs", "jane.pdf"), want: filepath.Join(root, "cvs", "jane.pdf")},
		{name: "relative to root", path: "cvs/jane.pdf", want: filepath.Join(root, "cvs", "jane.pdf")},
		{name: "missing file inside", path: "cvs/new.csv", want: filepath.Join(root, "cvs", "new.csv")},
		{name: "null bytes stripped", path: "cvs/ja\x00ne.pdf", want: filepath.Join(root, "cvs", "jane.pdf")},
		{name: "traversal", path: "../escape.pdf", wantErr: true},
		{name: "absolute outside", path: "/etc/passwd", wantErr: true},
		{name: "sibling prefix", path: root + "-other/x.pdf", wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ResolveFile(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathValidator_ResolveFile_Symlink(t *testing.T) {
	v := newValidator(t)

	outside := t.TempDir()
	target := filepath.Join(outside, "secret.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0644))

	link := filepath.Join(v.Root(), "cvs", "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := v.ResolveFile(link)
	assert.Error(t, err)
}

func TestPathValidator_ResolveDirectory(t *testing.T) {
	v := newValidator(t)

	got, err := v.ResolveDirectory("")
	require.NoError(t, err)
	assert.Equal(t, v.Root(), got)

	got, err = v.ResolveDirectory("cvs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(v.Root(), "cvs"), got)

	_, err = v.ResolveDirectory("cvs/jane.pdf")
	assert.Error(t, err)

	_, err = v.ResolveDirectory("missing")
	assert.Error(t, err)

	_, err = v.ResolveDirectory("..")
	assert.Error(t, err)
}

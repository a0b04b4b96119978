package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidergraph/internal/domain"
)

const module = `import numpy as np


def f(t, csi):
    b = 1.2

    return csi + b * t


class Model:
    def g(self, x, a=2):
        return a * x

def h(x, p):
    return x
`

func TestExtract(t *testing.T) {
	got, ok := Extract(module, "f")
	require.True(t, ok)
	assert.Equal(t, "def f(t, csi):\n    b = 1.2\n\n    return csi + b * t\n", got)

	got, ok = Extract(module, "g")
	require.True(t, ok)
	assert.Equal(t, "    def g(self, x, a=2):\n        return a * x\n", got)

	_, ok = Extract(module, "missing")
	assert.False(t, ok)
}

func TestListFunctions(t *testing.T) {
	fns := ListFunctions(module)
	require.Len(t, fns, 3)

	assert.Equal(t, "f", fns[0].Name)
	assert.Equal(t, 4, fns[0].Line)
	assert.Equal(t, []string{"t", "csi"}, fns[0].Args)
	assert.False(t, fns[0].Nested)

	assert.Equal(t, "g", fns[1].Name)
	assert.True(t, fns[1].Nested)
	assert.Equal(t, []string{"x", "a"}, fns[1].Args)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.py")
	require.NoError(t, os.WriteFile(path, []byte(module), 0644))

	text, err := File{Path: path, Function: "h"}.Source()
	require.NoError(t, err)
	assert.Equal(t, "def h(x, p):\n    return x\n", text)

	_, err = File{Path: path, Function: "nope"}.Source()
	var acq *domain.AcquisitionError
	require.ErrorAs(t, err, &acq)
	assert.ErrorIs(t, err, domain.ErrAcquisition)
	assert.Contains(t, acq.Origin, "nope")

	_, err = File{Path: filepath.Join(t.TempDir(), "absent.py"), Function: "f"}.Source()
	assert.ErrorIs(t, err, domain.ErrAcquisition)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLiteralSource(t *testing.T) {
	text, err := Literal{Text: "def f(x, a):\n    return x\n"}.Source()
	require.NoError(t, err)
	assert.Contains(t, text, "return x")

	_, err = Literal{Text: "  \n"}.Source()
	assert.ErrorIs(t, err, domain.ErrAcquisition)
}

package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyclip/collector/models"
)

func TestImportExtractor_PlainImports(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("import os\nimport pkg.module\nimport a, b\n"))
	require.NoError(t, err)

	assert.Equal(t, []models.ImportReference{
		{Module: "os"},
		{Module: "pkg.module"},
		{Module: "a"},
		{Module: "b"},
	}, refs)
}

func TestImportExtractor_FromImports(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("from pkg.module import First, Second\n"))
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "pkg.module", refs[0].Module)
	assert.Equal(t, 0, refs[0].Level)
	assert.Equal(t, []string{"First", "Second"}, refs[0].Names)
}

func TestImportExtractor_RelativeImports(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("from . import sibling\nfrom ..common import helper\nfrom .local import thing as alias\n"))
	require.NoError(t, err)

	require.Len(t, refs, 3)

	assert.Equal(t, "", refs[0].Module)
	assert.Equal(t, 1, refs[0].Level)
	assert.Equal(t, []string{"sibling"}, refs[0].Names)

	assert.Equal(t, "common", refs[1].Module)
	assert.Equal(t, 2, refs[1].Level)
	assert.Equal(t, []string{"helper"}, refs[1].Names)

	assert.Equal(t, "local", refs[2].Module)
	assert.Equal(t, 1, refs[2].Level)
	assert.Equal(t, []string{"thing"}, refs[2].Names)
}

func TestImportExtractor_WildcardImport(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("from pkg import *\n"))
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "pkg", refs[0].Module)
	assert.Empty(t, refs[0].Names)
}

func TestImportExtractor_AliasedModule(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("import numpy as np\n"))
	require.NoError(t, err)

	assert.Equal(t, []models.ImportReference{{Module: "numpy"}}, refs)
}

func TestImportExtractor_SourceOrder(t *testing.T) {
	extractor := NewImportExtractor()

	source := []byte(`import zlib

def work():
    pass

from collections import OrderedDict
import abc
`)
	refs, err := extractor.Extract(source)
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, "zlib", refs[0].Module)
	assert.Equal(t, "collections", refs[1].Module)
	assert.Equal(t, "abc", refs[2].Module)
}

func TestImportExtractor_ParseError(t *testing.T) {
	extractor := NewImportExtractor()

	_, err := extractor.Extract([]byte("def broken(:\n"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestImportExtractor_NoImports(t *testing.T) {
	extractor := NewImportExtractor()

	refs, err := extractor.Extract([]byte("x = 1\n"))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/services/catalog"
)

const testdata = "../../internal/services/catalog/testdata/"

func dataFlags(extra ...string) []string {
	return append([]string{"--prices", testdata + "prices.json", "--mapping", testdata + "mapping.json"}, extra...)
}

func TestRunScan(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "scan", dataFlags("--sort", "roi", "--top", "2"), &out, zap.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Top flips by roi")
	assert.Contains(t, out.String(), "Ranarr seed")
	assert.NotContains(t, out.String(), "Old school bond")
}

func TestRunInspect(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "inspect", dataFlags("561"), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Nature rune")

	err = run(context.Background(), "inspect", dataFlags("99999"), &out, zap.NewNop())
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)

	err = run(context.Background(), "inspect", dataFlags(), &out, zap.NewNop())
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), "trade", nil, &out, zap.NewNop())
	assert.Error(t, err)

	err = run(context.Background(), "scan", []string{"--prices", "missing.json"}, &out, zap.NewNop())
	assert.Error(t, err)
}

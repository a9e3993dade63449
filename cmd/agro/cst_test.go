package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/agro-backend/internal/lib/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCST(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cstCmd.SetOut(&out)
	cstCmd.SetErr(&out)
	err := cstCmd.RunE(cstCmd, args)
	return out.String(), err
}

func TestCSTCommand(t *testing.T) {
	out, err := runCST(t)
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, fiscal.Names(), names)

	out, err = runCST(t, fiscal.CSTIBSCBS, "410")
	require.NoError(t, err)
	var code fiscal.Code
	require.NoError(t, json.Unmarshal([]byte(out), &code))
	assert.Equal(t, "410", code.Codigo)
	assert.False(t, code.Tributado)

	_, err = runCST(t, "cst_ipi")
	assert.Error(t, err)

	_, err = runCST(t, fiscal.CSOSN, "000")
	assert.Error(t, err)
}

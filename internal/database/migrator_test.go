package database

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inlineReference = regexp.MustCompile(`(?i)\bREFERENCES\s+\w+\s*\(\s*id\s*\)`)
	foreignKey      = regexp.MustCompile(`(?i)FOREIGN KEY \(([^)]*)\) REFERENCES (\w+) \(([^)]*)\)`)
	tenantIDKey     = regexp.MustCompile(`CONSTRAINT (\w+)_tenant_id_key UNIQUE \(tenant_id, id\)`)
)

func readMigrations(t *testing.T) map[string]string {
	t.Helper()
	fsys, err := Migrations()
	require.NoError(t, err)

	files, err := fs.Glob(fsys, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	out := make(map[string]string, len(files))
	for _, name := range files {
		b, err := fs.ReadFile(fsys, name)
		require.NoError(t, err)
		up, _, _ := strings.Cut(string(b), "---- create above / drop below ----")
		out[name] = up
	}
	return out
}

func TestForeignKeysCarryTenant(t *testing.T) {
	migrations := readMigrations(t)

	keyed := map[string]bool{}
	for _, sql := range migrations {
		for _, m := range tenantIDKey.FindAllStringSubmatch(sql, -1) {
			keyed[m[1]] = true
		}
	}

	var count int
	for name, sql := range migrations {
		assert.Empty(t, inlineReference.FindAllString(sql, -1), name)

		for _, m := range foreignKey.FindAllStringSubmatch(sql, -1) {
			count++
			assert.True(t, strings.HasPrefix(m[1], "tenant_id, "), "%s: %s", name, m[0])
			assert.Equal(t, "tenant_id, id", m[3], "%s: %s", name, m[0])
			assert.True(t, keyed[m[2]], "%s: %s lacks UNIQUE (tenant_id, id)", name, m[2])
		}
	}
	assert.Positive(t, count)
}

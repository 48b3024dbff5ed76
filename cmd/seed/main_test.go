package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"plain int", "1280", 1280},
		{"float", "42.5", 42.5},
		{"unit suffix", "1280萬", 1280},
		{"chinese digit", "三房", 3},
		{"chinese ten", "十", 10},
		{"comma", "1,280", 1280},
		{"empty", "", nil},
		{"nil", nil, nil},
		{"garbage", "不明", nil},
		{"json number", 3.0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toNumber(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, toBool("true"))
	assert.True(t, toBool("1"))
	assert.True(t, toBool("Yes"))
	assert.True(t, toBool(true))
	assert.False(t, toBool("0"))
	assert.False(t, toBool(""))
	assert.False(t, toBool(nil))
}

func TestCoerceDefaultsStatus(t *testing.T) {
	data := coerce(map[string]any{
		"title": " 中壢美寓 ",
		"price": "1280萬",
		"room":  "三",
		"top":   "true",
	})

	assert.Equal(t, "中壢美寓", data["title"])
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, 1280, data["price"])
	assert.Equal(t, 3, data["room"])
	assert.Equal(t, true, data["top"])
	assert.Nil(t, data["square_meters"])
}

func TestLoadItemsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listings.csv")
	csvData := "id,title,price,top\nh1,中壢美寓,1280,true\nh2,青埔新案,2500,\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	items, err := loadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "h1", items[0]["id"])
	assert.Equal(t, "青埔新案", items[1]["title"])
}

func TestLoadItemsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listings.json")
	jsonData := `[{"id": "h1", "title": "中壢美寓", "price": 1280}]`
	require.NoError(t, os.WriteFile(path, []byte(jsonData), 0o644))

	items, err := loadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "h1", items[0]["id"])
}

func TestLoadItemsRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listings.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := loadItems(path)
	assert.Error(t, err)
}

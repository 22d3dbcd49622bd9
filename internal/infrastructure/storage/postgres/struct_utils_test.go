package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/core/entity"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
)

type testCatalog struct {
	entity.Catalog
	GSTIN string      `db:"gstin" json:"gstin"`
	Price types.Money `db:"price" json:"price"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "attributes")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "user_id")
	assert.Contains(t, cols, "gstin")
	assert.Contains(t, cols, "price")
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[testCatalog](), ExtractDBColumns[*testCatalog]())
}

func TestStructToMap(t *testing.T) {
	c := testCatalog{
		GSTIN: "29ABCDE1234F1Z5",
		Price: types.MustMoney("500"),
	}
	c.ID = id.New()
	c.Code = "CMP-0001"
	c.Name = "Acme Traders"
	c.Version = 3

	m := StructToMap(&c)

	assert.Equal(t, "29ABCDE1234F1Z5", m["gstin"])
	assert.Equal(t, "CMP-0001", m["code"])
	assert.Equal(t, "Acme Traders", m["name"])
	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, 3, m["version"])
	assert.True(t, c.Price.Equal(m["price"].(types.Money)))
}

func TestStructToMap_SkipsUntagged(t *testing.T) {
	type s struct {
		Tagged   string `db:"tagged"`
		Skipped  string `db:"-"`
		Untagged string
	}

	m := StructToMap(s{Tagged: "a", Skipped: "b", Untagged: "c"})

	assert.Equal(t, map[string]any{"tagged": "a"}, m)
}

func TestStructToMap_NotAStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

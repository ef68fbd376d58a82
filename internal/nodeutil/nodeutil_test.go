package nodeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

const sample = `{
  "info": {"title": "Billing", "version": "1.0"},
  "zeta": 1,
  "alpha": [true, null, 2.5, "x<y"],
  "flags": {"nullable": true, "deprecated": "false", "minLength": 3, "name": "n"}
}`

func parse(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return &doc
}

func TestPairsKeepOrder(t *testing.T) {
	doc := parse(t, sample)
	var keys []string
	for _, p := range Pairs(doc) {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"info", "zeta", "alpha", "flags"}, keys)
	assert.Nil(t, Pairs(Lookup(doc, "zeta")))
	assert.Len(t, Items(Lookup(doc, "alpha")), 4)
	assert.Nil(t, Items(Lookup(doc, "info")))
}

func TestScalarHelpers(t *testing.T) {
	doc := parse(t, sample)
	flags := Lookup(doc, "flags")

	assert.Equal(t, "Billing", String(Lookup(doc, "info"), "title"))
	assert.Equal(t, "", String(doc, "info"), "mappings are not scalars")
	assert.Equal(t, "", String(doc, "missing"))
	assert.True(t, Bool(flags, "nullable"))
	assert.False(t, Bool(flags, "deprecated"))
	assert.False(t, Bool(flags, "missing"))

	n, ok := Int(flags, "minLength")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = Int(flags, "name")
	assert.False(t, ok)

	assert.True(t, IsMapping(doc))
	assert.True(t, IsSequence(Lookup(doc, "alpha")))
	assert.True(t, Has(doc, "zeta"))
	assert.Nil(t, Lookup(doc, "info", "title", "deeper"))
}

func TestSetAndDelete(t *testing.T) {
	doc := parse(t, sample)
	info := Lookup(doc, "info")

	require.True(t, Set(info, "title", StringNode("Payments")))
	require.True(t, Set(info, "contact", MappingNode()))
	assert.Equal(t, "Payments", String(info, "title"))

	assert.True(t, Delete(doc, "zeta"))
	assert.False(t, Delete(doc, "zeta"))
	assert.False(t, Set(Lookup(doc, "alpha"), "k", StringNode("v")))

	out, err := MarshalJSON(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"info":{"title":"Payments","version":"1.0","contact":{}},"alpha":[true,null,2.5,"x<y"],"flags":{"nullable":true,"deprecated":"false","minLength":3,"name":"n"}}`,
		string(out))
}

func TestMarshalJSONIndent(t *testing.T) {
	doc := parse(t, `{"b": [], "a": {"c": 1}}`)
	require.True(t, Set(doc, "d", SequenceNode()))

	out, err := MarshalJSONIndent(doc, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": [],\n  \"a\": {\n    \"c\": 1\n  },\n  \"d\": []\n}", string(out))
}

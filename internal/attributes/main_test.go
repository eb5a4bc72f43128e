package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"primamateria.systems/tabula/internal/values"
)

func row(fields ...string) values.Row {
	r := values.Row{}
	for i := 0; i+1 < len(fields); i += 2 {
		r = append(r, values.Field{Name: fields[i], Value: values.Normalize(fields[i+1])})
	}
	return r
}

func Test_Classify(t *testing.T) {
	tests := []struct {
		name      string
		input     values.Row
		set       FieldSet
		wantBase  []string
		wantExtra []string
	}{
		{
			name:      "host row",
			input:     row("name", "r1", "hostname", "10.0.0.1", "site", "north", "groups", "core", "rack", "4"),
			set:       ExtendedAttributes,
			wantBase:  []string{"name", "hostname", "groups"},
			wantExtra: []string{"site", "rack"},
		},
		{
			name:      "defaults row",
			input:     row("username", "admin", "region", "us"),
			set:       BaseAttributes,
			wantBase:  []string{"username"},
			wantExtra: []string{"region"},
		},
		{
			name:      "name is extra for base set",
			input:     row("name", "ssh", "port", "22"),
			set:       BaseAttributes,
			wantBase:  []string{"port"},
			wantExtra: []string{"name"},
		},
		{
			name:      "empty row",
			input:     values.Row{},
			set:       ExtendedAttributes,
			wantBase:  []string{},
			wantExtra: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(tt.input, tt.set)
			assert.Equal(t, tt.wantBase, rec.Base.Names())
			assert.Equal(t, tt.wantExtra, rec.Extra.Keys())

			for _, n := range rec.Base.Names() {
				assert.True(t, tt.set.Contains(n))
			}
			for _, k := range rec.Extra.Keys() {
				assert.False(t, tt.set.Contains(k))
			}
			assert.Equal(t, len(tt.input), len(rec.Base)+rec.Extra.Len(), "no field dropped or duplicated")
		})
	}
}

func Test_ClassifyKeepsNormalizedValues(t *testing.T) {
	rec := Classify(row("name", "r1", "enabled", "True", "site", ""), ExtendedAttributes)

	v, ok := rec.Extra.Get("enabled")
	assert.True(t, ok)
	assert.Equal(t, values.Bool(true), v)

	v, ok = rec.Extra.Get("site")
	assert.True(t, ok)
	assert.True(t, v.IsAbsent())
}

func Test_AttributeSetsDiffer(t *testing.T) {
	assert.Equal(t, []string{"name", "hostname", "username", "password", "platform", "groups", "port"}, ExtendedAttributes.Names())
	assert.Equal(t, []string{"hostname", "port", "username", "password", "platform"}, BaseAttributes.Names())
	assert.False(t, BaseAttributes.Contains("name"))
	assert.False(t, BaseAttributes.Contains("groups"))
}

func Test_Data(t *testing.T) {
	d := NewData()
	d.Set("z", values.String("1"))
	d.Set("y", values.Bool(false))
	d.Set("z", values.String("2"))
	d.Set("x", values.Absent())

	assert.Equal(t, []string{"z", "y", "x"}, d.Keys())
	assert.Equal(t, map[string]any{"z": "2", "y": false, "x": nil}, d.Map())
	assert.Equal(t, map[string]string{"z": "2", "y": "False", "x": ""}, d.Raw())

	c := d.Clone()
	c.Set("w", values.String("new"))
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 4, c.Len())

	var missing *Data
	assert.Equal(t, 0, missing.Len())
	assert.Empty(t, missing.Map())
}

package slug_test

import (
	"testing"

	"github.com/jhoicas/Bizops-api/pkg/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"María José":          "maria-jose",
		"  Ñandú   Peña  ":    "nandu-pena",
		"Acme, Inc. (Bogotá)": "acme-inc-bogota",
		"dr_smith 2":          "dr-smith-2",
		"!!!":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}

func TestFromEmail(t *testing.T) {
	assert.Equal(t, "ana-perez", slug.FromEmail("Ana.Perez@acme.io"))
}

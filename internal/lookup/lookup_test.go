package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	name  string
	email string
}

func personFields(p person) Fields {
	return Fields{
		Contains: []string{p.name, p.email},
		Exact:    []string{p.name, p.email},
	}
}

func TestResolveExactNameAmongSharedPrefix(t *testing.T) {
	people := []person{
		{name: "Ana Wijaya", email: "ana.wijaya@sekolah.sch.id"},
		{name: "Ana Putri", email: "ana.putri@sekolah.sch.id"},
	}

	res := Resolve("Ana Wijaya", people, personFields)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "Ana Wijaya", res.Selected.name)
}

func TestResolveAmbiguousPrefixSelectsNothing(t *testing.T) {
	people := []person{
		{name: "Ana Wijaya", email: "ana.wijaya@sekolah.sch.id"},
		{name: "Ana Putri", email: "ana.putri@sekolah.sch.id"},
	}

	res := Resolve("Ana", people, personFields)
	assert.Nil(t, res.Selected)
	assert.Len(t, res.Candidates, 2)
}

func TestResolveSingleCandidateAutoSelects(t *testing.T) {
	people := []person{
		{name: "Ana Wijaya", email: "ana.wijaya@sekolah.sch.id"},
		{name: "Budi Santoso", email: "budi@sekolah.sch.id"},
	}

	// A partial match is enough when it is the only one.
	res := Resolve("wija", people, personFields)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "Ana Wijaya", res.Selected.name)
	assert.Len(t, res.Candidates, 1)
}

func TestResolveEmptyQueryClears(t *testing.T) {
	people := []person{{name: "Ana Wijaya"}}

	for _, q := range []string{"", "   ", "\t"} {
		res := Resolve(q, people, personFields)
		assert.Nil(t, res.Selected)
		assert.Empty(t, res.Candidates)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	people := []person{
		{name: "Ana Wijaya", email: "ana.wijaya@sekolah.sch.id"},
		{name: "Ana Putri", email: "ana.putri@sekolah.sch.id"},
	}

	res := Resolve("  aNa wIJAYA ", people, personFields)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "Ana Wijaya", res.Selected.name)
}

func TestResolveAmbiguousExactMatch(t *testing.T) {
	// Two members sharing a name: the exact tiebreak is itself ambiguous,
	// so nothing is selected and both stay listed.
	people := []person{
		{name: "Ana Wijaya", email: "ana.w1@sekolah.sch.id"},
		{name: "Ana Wijaya", email: "ana.w2@sekolah.sch.id"},
	}

	res := Resolve("Ana Wijaya", people, personFields)
	assert.Nil(t, res.Selected)
	assert.Len(t, res.Candidates, 2)
}

func TestResolveNoMatch(t *testing.T) {
	people := []person{{name: "Ana Wijaya"}}

	res := Resolve("zulkifli", people, personFields)
	assert.Nil(t, res.Selected)
	assert.Empty(t, res.Candidates)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "00042", StripPrefix(Normalize("LIB00042"), "LIB"))
	assert.Equal(t, "00042", StripPrefix(Normalize("lib00042"), "LIB"))
	assert.Equal(t, "00042", StripPrefix(Normalize("00042"), "LIB"))
}

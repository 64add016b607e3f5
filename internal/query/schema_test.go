package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"name":      {Column: "items.name"},
	"status":    {Column: "items.status", Kind: KindEnum, Enum: []string{"Active", "Completed"}},
	"createdAt": {Column: "items.created_at", Kind: KindTime},
	"ownerId":   {Column: "items.owner_id", Kind: KindID},
}

func TestSchema_Resolve(t *testing.T) {
	d, err := Build(values(
		"status[in]", "Active,Completed",
		"createdAt[gte]", "2024-03-01",
		"ownerId", "7",
		"search", "alpha",
		"sort", "name,-createdAt",
		"page", "3",
		"limit", "4",
	), []string{"name"})
	require.NoError(t, err)

	r, err := testSchema.Resolve(d)
	require.NoError(t, err)

	assert.Equal(t, []Condition{
		{Column: "items.created_at", Op: OpGte, Args: []any{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}},
		{Column: "items.owner_id", Op: OpEq, Args: []any{uint64(7)}},
		{Column: "items.status", Op: OpIn, Args: []any{"Active", "Completed"}},
	}, r.Conditions)
	assert.Equal(t, &SearchClause{Columns: []string{"items.name"}, Term: "alpha"}, r.Search)
	assert.Equal(t, []Order{{Column: "items.name"}, {Column: "items.created_at", Desc: true}}, r.Order)
	assert.Equal(t, 8, r.Offset)
	assert.Equal(t, 4, r.Limit)
}

func TestSchema_RejectsUnknownFields(t *testing.T) {
	var vErr *ValidationError

	d, err := Build(values("password", "x"), nil)
	require.NoError(t, err)
	_, err = testSchema.Resolve(d)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Param)

	d, err = Build(values("sort", "password"), nil)
	require.NoError(t, err)
	_, err = testSchema.Resolve(d)
	require.ErrorAs(t, err, &vErr)

	d, err = Build(values("search", "x"), []string{"description"})
	require.NoError(t, err)
	_, err = testSchema.Resolve(d)
	require.ErrorAs(t, err, &vErr)
}

func TestSchema_RejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"status", "Archived"},
		{"createdAt[gt]", "yesterday"},
		{"ownerId", "-1"},
	}
	for _, tc := range cases {
		d, err := Build(values(tc...), nil)
		require.NoError(t, err)
		_, err = testSchema.Resolve(d)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "%v", tc)
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-05-06T07:08:09Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), got)

	_, err = ParseTime("06/05/2024")
	assert.Error(t, err)
}

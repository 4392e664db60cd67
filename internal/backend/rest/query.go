package rest

import (
	"net/url"
	"strconv"
	"strings"
)

// Query accumulates table API query parameters.
type Query struct {
	params url.Values
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{params: url.Values{}}
}

// Select sets the column list, including embedded relations.
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

// Eq adds a column=eq.value filter.
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// Or adds an or=(...) filter built from EqFilter-style expressions.
func (q *Query) Or(filters ...string) *Query {
	q.params.Add("or", "("+strings.Join(filters, ",")+")")
	return q
}

// Order sorts by column.
func (q *Query) Order(column string, desc bool) *Query {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of rows returned.
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// HasFilter reports whether any row filter is present.
func (q *Query) HasFilter() bool {
	for key := range q.params {
		switch key {
		case "select", "order", "limit":
			continue
		}
		return true
	}
	return false
}

// Encode renders the query string.
func (q *Query) Encode() string {
	return q.params.Encode()
}

// EqFilter renders column.eq.value for use inside Or.
func EqFilter(column, value string) string {
	return column + ".eq." + value
}

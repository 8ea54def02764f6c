package wistia

import (
	"net/url"
	"strings"
)

// Encoder produces an application/x-www-form-urlencoded string.
type Encoder interface {
	Encode() string
}

// queryBuilder encodes parameters in insertion order, unlike url.Values
// which sorts keys. Unset optional parameters are skipped.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) add(key, value string) *queryBuilder {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(url.QueryEscape(key))
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
	return q
}

func (q *queryBuilder) addOptional(key string, value *string) *queryBuilder {
	if value != nil {
		q.add(key, *value)
	}
	return q
}

func (q *queryBuilder) String() string {
	return q.b.String()
}

func ptr(s string) *string {
	return &s
}

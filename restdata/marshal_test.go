// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMediaTypes(t *testing.T) {
	tests := []struct {
		ContentType string
		OK          bool
	}{
		{"application/hal+json", true},
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/json", true},
		{"text/plain", false},
		{"", false},
	}
	for _, test := range tests {
		var e Employee
		err := Decode(test.ContentType, strings.NewReader(`{"name":"Samwise Gamgee","role":"gardener"}`), &e)
		if test.OK {
			if assert.NoError(t, err, test.ContentType) {
				assert.Equal(t, "Samwise Gamgee", e.Name)
				assert.Equal(t, "gardener", e.Role)
			}
		} else if assert.Error(t, err, test.ContentType) {
			assert.IsType(t, ErrUnsupportedMediaType{}, err)
			assert.Implements(t, (*ErrorStatus)(nil), err)
			assert.Equal(t, 415, err.(ErrorStatus).HTTPStatus())
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	var e Employee
	err := Decode(HALMediaType, strings.NewReader(`{"name":`), &e)
	if assert.Error(t, err) {
		assert.IsType(t, ErrBadRequest{}, err)
		assert.Equal(t, 400, err.(ErrorStatus).HTTPStatus())
	}
}

func TestEncodeEmployee(t *testing.T) {
	e := Employee{
		ID:        3,
		Name:      "Samwise Gamgee",
		FirstName: "Samwise",
		LastName:  "Gamgee",
		Role:      "gardener",
		Links: Links{
			RelSelf: {Href: "http://localhost/employees/3"},
		},
	}
	var buf bytes.Buffer
	if assert.NoError(t, Encode(&buf, e)) {
		assert.JSONEq(t, `{
			"id": 3,
			"name": "Samwise Gamgee",
			"firstName": "Samwise",
			"lastName": "Gamgee",
			"role": "gardener",
			"_links": {"self": {"href": "http://localhost/employees/3"}}
		}`, buf.String())
	}
}

func TestEncodeEmployeeList(t *testing.T) {
	list := EmployeeList{
		Embedded: EmployeeListEmbedded{Employees: []Employee{}},
		Links:    Links{RelSelf: {Href: "http://localhost/employees"}},
	}
	var buf bytes.Buffer
	if assert.NoError(t, Encode(&buf, list)) {
		assert.JSONEq(t, `{
			"_embedded": {"employeeList": []},
			"_links": {"self": {"href": "http://localhost/employees"}}
		}`, buf.String())
	}
}

func TestEncodeTemplatedLink(t *testing.T) {
	root := RootData{Links: Links{
		RelEmployee: {Href: "http://localhost/employees/{id}", Templated: true},
	}}
	var buf bytes.Buffer
	if assert.NoError(t, Encode(&buf, root)) {
		assert.JSONEq(t, `{"_links": {"employee": {
			"href": "http://localhost/employees/{id}",
			"templated": true
		}}}`, buf.String())
	}
}

func TestDecodeLargeID(t *testing.T) {
	var e Employee
	err := Decode(HALMediaType, strings.NewReader(`{"id":9223372036854775807,"name":"Gandalf"}`), &e)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(math.MaxInt64), e.ID)
	}

	var buf bytes.Buffer
	if assert.NoError(t, Encode(&buf, e)) {
		assert.Contains(t, buf.String(), `"id":9223372036854775807`)
	}
}

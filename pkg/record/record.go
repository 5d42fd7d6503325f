// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package record defines how the query engine reads records.
package record

import (
	"fmt"
	"strings"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

// Reserved attribute names which resolve to record metadata instead of fields.
const (
	AttrRID   = "@rid"
	AttrClass = "@class"
)

// Identifiable is anything which exposes a record identity.
type Identifiable interface {
	Identity() rid.RID
}

// Document is a loaded record with named fields.
type Document interface {
	Identifiable
	ClassName() string
	// Property returns the value of a field and whether the field is present.
	Property(name string) (any, bool)
	Has(name string) bool
	// FieldNames lists the fields in declaration order.
	FieldNames() []string
}

var _ Document = (*Doc)(nil)

// Doc is an in-memory Document which keeps fields in insertion order.
type Doc struct {
	fields map[string]any
	class  string
	names  []string
	id     rid.RID
}

// NewDoc returns an empty document of class with identity id.
func NewDoc(class string, id rid.RID) *Doc {
	return &Doc{
		class:  class,
		id:     id,
		fields: make(map[string]any),
	}
}

// NewTransient returns a document which was never stored, such as a sub-query projection.
func NewTransient(fields ...any) *Doc {
	d := NewDoc("", rid.Invalid)
	for i := 0; i+1 < len(fields); i += 2 {
		d.Set(fmt.Sprint(fields[i]), fields[i+1])
	}
	return d
}

// Set assigns a field, appending its name the first time it is set.
func (d *Doc) Set(name string, value any) *Doc {
	if _, ok := d.fields[name]; !ok {
		d.names = append(d.names, name)
	}
	d.fields[name] = value
	return d
}

// Remove deletes a field.
func (d *Doc) Remove(name string) *Doc {
	if _, ok := d.fields[name]; !ok {
		return d
	}
	delete(d.fields, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return d
}

// SetIdentity binds the document to id.
func (d *Doc) SetIdentity(id rid.RID) *Doc {
	d.id = id
	return d
}

// Identity implements Identifiable.
func (d *Doc) Identity() rid.RID {
	return d.id
}

// ClassName implements Document.
func (d *Doc) ClassName() string {
	return d.class
}

// Property implements Document.
func (d *Doc) Property(name string) (any, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// Has implements Document.
func (d *Doc) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// FieldNames implements Document.
func (d *Doc) FieldNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

func (d *Doc) String() string {
	var b strings.Builder
	if d.class != "" {
		b.WriteString(d.class)
	}
	if d.id.IsValid() {
		b.WriteString(d.id.String())
	}
	b.WriteString("{")
	for i, n := range d.names {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s:%v", n, d.fields[n])
	}
	b.WriteString("}")
	return b.String()
}

// Attribute resolves a reserved attribute of doc. ok is false for plain field names.
func Attribute(doc Identifiable, name string) (v any, ok bool) {
	switch strings.ToLower(name) {
	case AttrRID:
		return doc.Identity(), true
	case AttrClass:
		if d, isDoc := doc.(Document); isDoc {
			return d.ClassName(), true
		}
		return nil, true
	}
	return nil, false
}

// IsPersistent reports whether v is a record bound to a stored identity.
func IsPersistent(v Identifiable) bool {
	return v.Identity().IsPersistent()
}

// Field resolves name on doc, reserved attributes included. It returns nil
// for absent fields.
func Field(doc Document, name string) any {
	if v, ok := Attribute(doc, name); ok {
		return v
	}
	v, _ := doc.Property(name)
	return v
}

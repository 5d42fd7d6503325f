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

package schema

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
)

var (
	errClassExists    = errors.New("class already exists")
	errClassNotFound  = errors.New("class not found")
	errPropertyExists = errors.New("property already exists")
)

var _ Snapshot = (*Mem)(nil)

// Mem is an in-memory schema. It is safe for concurrent use.
type Mem struct {
	classes sync.Map
}

// NewMem returns an empty schema.
func NewMem() *Mem {
	return &Mem{}
}

func key(name string) string {
	return strings.ToLower(name)
}

// CreateClass registers a class extending supers.
func (m *Mem) CreateClass(name string, supers ...string) (*MemClass, error) {
	c := &MemClass{name: name, properties: make(map[string]*MemProperty)}
	for _, s := range supers {
		sc, ok := m.classes.Load(key(s))
		if !ok {
			return nil, errors.WithMessagef(errClassNotFound, "super class %q of %q", s, name)
		}
		c.supers = append(c.supers, sc.(*MemClass))
	}
	if _, loaded := m.classes.LoadOrStore(key(name), c); loaded {
		return nil, errors.WithMessagef(errClassExists, "%q", name)
	}
	return c, nil
}

// MustCreateClass is CreateClass panicking on error.
func (m *Mem) MustCreateClass(name string, supers ...string) *MemClass {
	c, err := m.CreateClass(name, supers...)
	if err != nil {
		panic(err)
	}
	return c
}

// Class implements Snapshot.
func (m *Mem) Class(name string) Class {
	c, ok := m.classes.Load(key(name))
	if !ok {
		return nil
	}
	return c.(*MemClass)
}

// Classes implements Snapshot. Classes are sorted by name.
func (m *Mem) Classes() []Class {
	var cc []Class
	m.classes.Range(func(_, v any) bool {
		cc = append(cc, v.(*MemClass))
		return true
	})
	slices.SortFunc(cc, func(a, b Class) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cc
}

var _ Class = (*MemClass)(nil)

// MemClass is a class of a Mem schema.
type MemClass struct {
	properties map[string]*MemProperty
	name       string
	supers     []*MemClass
	mu         sync.RWMutex
}

// Name implements Class.
func (c *MemClass) Name() string {
	return c.name
}

// SuperClasses implements Class.
func (c *MemClass) SuperClasses() []Class {
	out := make([]Class, len(c.supers))
	for i, s := range c.supers {
		out[i] = s
	}
	return out
}

// IsSubClassOf implements Class.
func (c *MemClass) IsSubClassOf(other Class) bool {
	if other == nil {
		return false
	}
	if strings.EqualFold(c.name, other.Name()) {
		return true
	}
	for _, s := range c.supers {
		if s.IsSubClassOf(other) {
			return true
		}
	}
	return false
}

// CreateProperty declares a property. linked is the element type of
// multi-value properties and TypeAny otherwise.
func (c *MemClass) CreateProperty(name string, t value.Type, linked value.Type) (*MemProperty, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.properties[key(name)]; ok {
		return nil, errors.WithMessagef(errPropertyExists, "%s.%s", c.name, name)
	}
	p := &MemProperty{name: name, typ: t, linked: linked}
	c.properties[key(name)] = p
	return p, nil
}

// Property implements Class.
func (c *MemClass) Property(name string) (Property, bool) {
	c.mu.RLock()
	p, ok := c.properties[key(name)]
	c.mu.RUnlock()
	if ok {
		return p, true
	}
	for _, s := range c.supers {
		if sp, found := s.Property(name); found {
			return sp, true
		}
	}
	return nil, false
}

var _ Property = (*MemProperty)(nil)

// MemProperty is a property of a MemClass.
type MemProperty struct {
	name   string
	typ    value.Type
	linked value.Type
}

// Name implements Property.
func (p *MemProperty) Name() string { return p.name }

// Type implements Property.
func (p *MemProperty) Type() value.Type { return p.typ }

// LinkedType implements Property.
func (p *MemProperty) LinkedType() value.Type { return p.linked }

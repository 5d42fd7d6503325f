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

// Package schema exposes the class hierarchy snapshot a query runs against.
package schema

import "github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"

// Snapshot is an immutable view of the schema taken when a query starts.
type Snapshot interface {
	// Class returns the class named name, ignoring case, or nil.
	Class(name string) Class
	Classes() []Class
}

// Class is a node of the class hierarchy.
type Class interface {
	Name() string
	// IsSubClassOf is reflexive and transitive over super classes.
	IsSubClassOf(other Class) bool
	SuperClasses() []Class
	// Property returns a declared property, searching super classes too.
	Property(name string) (Property, bool)
}

// Property is a declared field of a class.
type Property interface {
	Name() string
	Type() value.Type
	// LinkedType is the element type of a multi-value property.
	LinkedType() value.Type
}

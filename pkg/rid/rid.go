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

// Package rid implements the record identity used to address records in clusters.
package rid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Prefix starts the textual representation of a record identity.
	Prefix = "#"
	// Separator splits the cluster id from the cluster position.
	Separator = ":"

	// ClusterIDInvalid marks an identity which is not bound to any cluster.
	ClusterIDInvalid int32 = -1
	// ClusterPosInvalid marks an identity which has no position in its cluster.
	ClusterPosInvalid int64 = -1
)

var errMalformed = errors.New("malformed record id")

// Invalid is the identity of a record that was never stored.
var Invalid = RID{Cluster: ClusterIDInvalid, Position: ClusterPosInvalid}

// RID is the stable storage-level identity of a record.
type RID struct {
	Cluster  int32
	Position int64
}

// New returns the identity of the record at position pos in cluster.
func New(cluster int32, pos int64) RID {
	return RID{Cluster: cluster, Position: pos}
}

// Parse decodes "#cluster:position". The leading '#' is optional.
func Parse(s string) (RID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Prefix)
	parts := strings.Split(s, Separator)
	if len(parts) != 2 {
		return Invalid, errors.WithMessagef(errMalformed, "%q", s)
	}
	c, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return Invalid, errors.Wrapf(errMalformed, "cluster of %q: %v", s, err)
	}
	p, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Invalid, errors.Wrapf(errMalformed, "position of %q: %v", s, err)
	}
	return RID{Cluster: int32(c), Position: p}, nil
}

// IsValid reports whether r is bound to a cluster.
func (r RID) IsValid() bool {
	return r.Cluster != ClusterIDInvalid
}

// IsPersistent reports whether r addresses a stored record.
func (r RID) IsPersistent() bool {
	return r.Cluster > ClusterIDInvalid && r.Position > ClusterPosInvalid
}

// IsNew reports whether r belongs to a record which has not been stored yet.
func (r RID) IsNew() bool {
	return r.Position < 0
}

// Next returns the identity following r in the same cluster.
func (r RID) Next() RID {
	return RID{Cluster: r.Cluster, Position: r.Position + 1}
}

// Prev returns the identity preceding r in the same cluster, never below position 0.
func (r RID) Prev() RID {
	if r.Position <= 0 {
		return RID{Cluster: r.Cluster, Position: 0}
	}
	return RID{Cluster: r.Cluster, Position: r.Position - 1}
}

// Compare orders identities by cluster, then by position.
func (r RID) Compare(other RID) int {
	switch {
	case r.Cluster < other.Cluster:
		return -1
	case r.Cluster > other.Cluster:
		return 1
	case r.Position < other.Position:
		return -1
	case r.Position > other.Position:
		return 1
	}
	return 0
}

// Identity makes RID satisfy the record identifiable contract.
func (r RID) Identity() RID {
	return r
}

func (r RID) String() string {
	return fmt.Sprintf("%s%d%s%d", Prefix, r.Cluster, Separator, r.Position)
}

// Min returns the smaller identity.
func Min(a, b RID) RID {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater identity.
func Max(a, b RID) RID {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Ptr returns a pointer to a copy of r.
func Ptr(r RID) *RID {
	return &r
}

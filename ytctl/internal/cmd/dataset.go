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

package cmd

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	yamlv3 "go.yaml.in/yaml/v3"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/schema"
)

const defaultCluster = 10

// dataset is the YAML layout of the documents ytctl evaluates against.
//
//	class: Person
//	cluster: 10
//	records:
//	- rid: "#10:0"
//	  fields: {name: Ann, age: 30}
type dataset struct {
	Class   string         `json:"class"`
	Records []datasetEntry `json:"records"`
	Cluster int32          `json:"cluster"`
}

type datasetEntry struct {
	Fields map[string]any `json:"fields"`
	RID    string         `json:"rid"`
}

// memDB serves the documents of a dataset.
type memDB struct {
	schema *schema.Mem
	class  string
	byRID  map[rid.RID]record.Document
	docs   []record.Document
}

func (db *memDB) Schema() schema.Snapshot {
	return db.schema
}

func (db *memDB) Load(id rid.RID) (record.Document, error) {
	if d, ok := db.byRID[id]; ok {
		return d, nil
	}
	return nil, errors.Errorf("record %s not found", id)
}

func readDataset(path string, stdin io.Reader) (*memDB, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	return parseDataset(b)
}

func parseDataset(b []byte) (*memDB, error) {
	var ds dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, errors.Wrap(err, "parse dataset")
	}
	if ds.Cluster == 0 {
		ds.Cluster = defaultCluster
	}
	db := &memDB{schema: schema.NewMem(), class: ds.Class, byRID: make(map[rid.RID]record.Document, len(ds.Records))}
	if ds.Class != "" {
		if _, err := db.schema.CreateClass(ds.Class); err != nil {
			return nil, err
		}
	}
	for i, r := range ds.Records {
		id := rid.New(ds.Cluster, int64(i))
		if r.RID != "" {
			var err error
			if id, err = rid.Parse(r.RID); err != nil {
				return nil, errors.WithMessagef(err, "record %d", i)
			}
		}
		if _, dup := db.byRID[id]; dup {
			return nil, errors.Errorf("record %d: duplicated rid %s", i, id)
		}
		doc := record.NewDoc(ds.Class, id)
		names := make([]string, 0, len(r.Fields))
		for n := range r.Fields {
			names = append(names, n)
		}
		slices.Sort(names)
		for _, n := range names {
			doc.Set(n, normalize(r.Fields[n]))
		}
		db.byRID[id] = doc
		db.docs = append(db.docs, doc)
	}
	return db, nil
}

// parseValue reads a command line operand as a YAML 1.2 scalar or flow
// collection, falling back to the raw text. Only true and false are
// booleans, so operands such as n or yes stay strings.
func parseValue(s string) any {
	var v any
	if err := yamlv3.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return normalize(v)
}

// normalize widens decoded integers to int64, turns integral JSON numbers
// back into integers and record id strings into ids.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return int64(t)
		}
		return t
	case string:
		if strings.HasPrefix(t, rid.Prefix) {
			if id, err := rid.Parse(t); err == nil {
				return id
			}
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	}
	return v
}

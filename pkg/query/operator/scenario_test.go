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

package operator_test

import (
	"context"

	"github.com/google/go-cmp/cmp"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/index/memtree"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/logical"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/schema"
)

type database struct {
	schema *schema.Mem
	docs   map[rid.RID]*record.Doc
	order  []*record.Doc
}

func newDatabase() *database {
	return &database{schema: schema.NewMem(), docs: make(map[rid.RID]*record.Doc)}
}

func (db *database) add(docs ...*record.Doc) {
	for _, d := range docs {
		db.docs[d.Identity()] = d
		db.order = append(db.order, d)
	}
}

func (db *database) Schema() schema.Snapshot { return db.schema }

func (db *database) Load(id rid.RID) (record.Document, error) {
	if d, ok := db.docs[id]; ok {
		return d, nil
	}
	return nil, executor.ErrRecordNotFound
}

// scan returns the records matching cond by evaluating it on each of them.
func (db *database) scan(ctx *executor.Context, cond *logical.Condition) []rid.RID {
	var out []rid.RID
	for _, d := range db.order {
		ok, err := cond.Match(ctx, d)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		if ok {
			out = append(out, d.Identity())
		}
	}
	return out
}

func streamRIDs(s index.Stream, err error) []rid.RID {
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	gomega.Expect(s).ShouldNot(gomega.BeNil())
	entries, err := index.Drain(s)
	gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
	out := make([]rid.RID, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RID)
	}
	return out
}

var _ = ginkgo.Describe("Predicates", func() {
	var (
		db  *database
		ctx *executor.Context
	)

	ginkgo.BeforeEach(func() {
		db = newDatabase()
		ctx = executor.New(context.Background(), db, executor.Options{})
	})

	ginkgo.It("finds a plain value in a list of single field values", func() {
		people := []any{
			map[string]any{"id": 1},
			map[string]any{"id": 2},
			map[string]any{"id": 3},
		}
		cond := logical.New(logical.Lit(people), operator.Contains, 2)
		gomega.Expect(cond.Match(ctx, nil)).To(gomega.BeTrue())
	})

	ginkgo.It("honors the inclusivity of BETWEEN bounds", func() {
		cond := logical.New(logical.Lit(5), operator.Between, []any{1, "AND", 10})
		gomega.Expect(cond.Match(ctx, nil)).To(gomega.BeTrue())
		exclusive := logical.New(logical.Lit(5), operator.Between.WithInclusive(false, true), []any{5, "AND", 10})
		gomega.Expect(exclusive.Match(ctx, nil)).To(gomega.BeFalse())
	})

	ginkgo.It("tests membership with IN", func() {
		gomega.Expect(logical.New(logical.Lit("b"), operator.In, []any{"a", "b", "c"}).Match(ctx, nil)).To(gomega.BeTrue())
		gomega.Expect(logical.New(logical.Lit("b"), operator.In, []any{"a", "c"}).Match(ctx, nil)).To(gomega.BeFalse())
	})

	ginkgo.It("resolves classes for INSTANCEOF", func() {
		db.schema.MustCreateClass("Person")
		db.schema.MustCreateClass("Employee", "Person")
		employee := record.NewDoc("Employee", rid.New(10, 0))
		db.add(employee)

		this := logical.NewField("@rid")
		gomega.Expect(logical.New(this, operator.InstanceOf, "Person").Match(ctx, employee)).To(gomega.BeTrue())

		_, err := logical.New(this, operator.InstanceOf, "NoSuchClass").Match(ctx, employee)
		gomega.Expect(err).Should(gomega.MatchError(operator.ErrClassNotFound))
	})

	ginkgo.Context("TRAVERSE", func() {
		var a, b *record.Doc

		ginkgo.BeforeEach(func() {
			a = record.NewDoc("Node", rid.New(11, 0)).Set("name", "A")
			b = record.NewDoc("Node", rid.New(11, 1)).Set("name", "B")
			a.Set("out", b.Identity())
			b.Set("out", a.Identity())
			db.add(a, b)
		})

		traverse := func(target string, params ...string) *logical.Condition {
			op, err := operator.Configure(operator.Traverse, params)
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			nested := logical.New(logical.NewField("name"), operator.Equals, target)
			return logical.New(logical.NewField("out"), op, nested)
		}

		ginkgo.It("terminates on a cycle", func() {
			gomega.Expect(traverse("nobody", "0", "2").Match(ctx, a)).To(gomega.BeFalse())
			gomega.Expect(traverse("nobody", "0", "-1").Match(ctx, a)).To(gomega.BeFalse())
		})

		ginkgo.It("finds a reachable record", func() {
			gomega.Expect(traverse("A", "0", "-1").Match(ctx, a)).To(gomega.BeTrue())
			gomega.Expect(traverse("A", "0", "0").Match(ctx, a)).To(gomega.BeFalse())
		})

		ginkgo.It("rejects a malformed depth", func() {
			_, err := operator.Configure(operator.Traverse, []string{"zero"})
			gomega.Expect(err).Should(gomega.MatchError(operator.ErrInvalidConfiguration))
		})
	})
})

var _ = ginkgo.Describe("Index queries", func() {
	var (
		db  *database
		ctx *executor.Context
	)

	ginkgo.BeforeEach(func() {
		db = newDatabase()
		ctx = executor.New(context.Background(), db, executor.Options{})
	})

	ginkgo.It("bounds a composite range by the fixed prefix", func() {
		def := index.NewDef("Point",
			index.Property{Name: "field1", Type: value.TypeLong},
			index.Property{Name: "field2", Type: value.TypeLong})
		idx := memtree.New("Point.field1_field2", def)
		n := int64(0)
		for f1 := 0; f1 < 3; f1++ {
			for f2 := 0; f2 < 5; f2++ {
				d := record.NewDoc("Point", rid.New(12, n)).Set("field1", f1).Set("field2", f2)
				gomega.Expect(idx.Add(d)).To(gomega.Succeed())
				db.add(d)
				n++
			}
		}

		s, err := operator.Major.ExecuteIndexQuery(ctx, idx, []any{1, 2}, true)
		got := streamRIDs(s, err)

		cond := logical.New(
			logical.New(logical.NewField("field1"), operator.Equals, 1),
			operator.And,
			logical.New(logical.NewField("field2"), operator.Major, 2))
		want := db.scan(ctx, cond)
		gomega.Expect(want).To(gomega.HaveLen(2))
		gomega.Expect(cmp.Diff(want, got)).To(gomega.BeEmpty())

		s, err = operator.MinorEquals.ExecuteIndexQuery(ctx, idx, []any{1, 1}, true)
		gomega.Expect(streamRIDs(s, err)).To(gomega.Equal([]rid.RID{rid.New(12, 5), rid.New(12, 6)}))
	})

	ginkgo.It("answers IS NULL from the null keys", func() {
		def := index.NewDef("Person", index.Property{Name: "nick", Type: value.TypeString})
		idx := memtree.New("Person.nick", def)
		docs := []*record.Doc{
			record.NewDoc("Person", rid.New(13, 0)).Set("nick", "bo"),
			record.NewDoc("Person", rid.New(13, 1)).Set("nick", nil),
			record.NewDoc("Person", rid.New(13, 2)),
		}
		for _, d := range docs {
			gomega.Expect(idx.Add(d)).To(gomega.Succeed())
			db.add(d)
		}

		cond := logical.New(logical.NewField("nick"), operator.Is, nil)
		gomega.Expect(cond.IndexReuseType()).To(gomega.Equal(operator.IndexMethod))
		s, err := operator.Is.ExecuteIndexQuery(ctx, idx, []any{nil}, true)
		gomega.Expect(cmp.Diff(db.scan(ctx, cond), streamRIDs(s, err))).To(gomega.BeEmpty())
	})

	ginkgo.It("answers CONTAINSKEY only from a key index", func() {
		byKey := memtree.New("Person.attrs", &index.Def{
			Class:      "Person",
			Properties: []index.Property{{Name: "attrs", Type: value.TypeString}},
			MapBy:      index.MapIndexByKey,
		})
		docs := []*record.Doc{
			record.NewDoc("Person", rid.New(14, 0)).Set("attrs", map[string]any{"eyes": "blue"}),
			record.NewDoc("Person", rid.New(14, 1)).Set("attrs", map[string]any{"hair": "red"}),
			record.NewDoc("Person", rid.New(14, 2)).Set("attrs", map[string]any{"eyes": "green", "hair": "red"}),
		}
		for _, d := range docs {
			gomega.Expect(byKey.Add(d)).To(gomega.Succeed())
			db.add(d)
		}

		cond := logical.New(logical.NewField("attrs"), operator.ContainsKey, "eyes")
		s, err := operator.ContainsKey.ExecuteIndexQuery(ctx, byKey, []any{"eyes"}, true)
		gomega.Expect(cmp.Diff(db.scan(ctx, cond), streamRIDs(s, err))).To(gomega.BeEmpty())

		s, err = operator.ContainsValue.ExecuteIndexQuery(ctx, byKey, []any{"red"}, true)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(s).To(gomega.BeNil())
	})

	ginkgo.It("unions IN lookups without duplicates", func() {
		tags := memtree.New("Person.tags", &index.Def{
			Class:      "Person",
			Properties: []index.Property{{Name: "tags", Type: value.TypeString}},
			MultiValue: true,
		})
		docs := []*record.Doc{
			record.NewDoc("Person", rid.New(15, 0)).Set("tags", []any{"go", "db"}),
			record.NewDoc("Person", rid.New(15, 1)).Set("tags", []any{"java"}),
			record.NewDoc("Person", rid.New(15, 2)).Set("tags", []any{"db"}),
		}
		for _, d := range docs {
			gomega.Expect(tags.Add(d)).To(gomega.Succeed())
			db.add(d)
		}

		s, err := operator.In.ExecuteIndexQuery(ctx, tags, []any{[]any{"go", "db"}}, true)
		got := streamRIDs(s, err)
		gomega.Expect(got).To(gomega.ConsistOf(rid.New(15, 0), rid.New(15, 2)))

		cond := logical.New(logical.NewField("tags"), operator.In, []any{"go", "db"})
		gomega.Expect(db.scan(ctx, cond)).To(gomega.ConsistOf(got))
	})

	ginkgo.It("unwraps sub-query results into index keys", func() {
		idx := memtree.New("Person.name", index.NewDef("Person", index.Property{Name: "name", Type: value.TypeString}))
		for i, name := range []string{"a", "b", "c"} {
			d := record.NewDoc("Person", rid.New(9, int64(i))).Set("name", name)
			gomega.Expect(idx.Add(d)).To(gomega.Succeed())
			db.add(d)
		}
		wrapper := record.NewTransient("name", "b")

		s, err := operator.Equals.ExecuteIndexQuery(ctx, idx, []any{wrapper}, true)
		got := streamRIDs(s, err)
		gomega.Expect(got).To(gomega.Equal([]rid.RID{rid.New(9, 1)}))
		cond := logical.New(logical.NewField("name"), operator.Equals, wrapper)
		gomega.Expect(cmp.Diff(db.scan(ctx, cond), got)).To(gomega.BeEmpty())

		s, err = operator.In.ExecuteIndexQuery(ctx, idx, []any{[]any{wrapper, map[string]any{"x": "c"}}}, true)
		got = streamRIDs(s, err)
		gomega.Expect(got).To(gomega.Equal([]rid.RID{rid.New(9, 1), rid.New(9, 2)}))
		cond = logical.New(logical.NewField("name"), operator.In, []any{wrapper, map[string]any{"x": "c"}})
		gomega.Expect(cmp.Diff(db.scan(ctx, cond), got)).To(gomega.BeEmpty())

		for _, key := range []any{
			record.NewTransient("name", []any{"a", "b"}),
			map[string]any{"x": "a", "y": "b"},
		} {
			s, err = operator.Equals.ExecuteIndexQuery(ctx, idx, []any{key}, true)
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			gomega.Expect(s).To(gomega.BeNil())
			s, err = operator.In.ExecuteIndexQuery(ctx, idx, []any{[]any{key}}, true)
			gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
			gomega.Expect(s).To(gomega.BeNil())
		}
	})

	ginkgo.It("does not read null keys for an unconvertible IS value", func() {
		idx := memtree.New("Person.age", index.NewDef("Person", index.Property{Name: "age", Type: value.TypeLong}))
		for i, age := range []any{nil, 30} {
			d := record.NewDoc("Person", rid.New(16, int64(i))).Set("age", age)
			gomega.Expect(idx.Add(d)).To(gomega.Succeed())
			db.add(d)
		}

		s, err := operator.Is.ExecuteIndexQuery(ctx, idx, []any{"abc"}, true)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(s).To(gomega.BeNil())

		s, err = operator.Is.ExecuteIndexQuery(ctx, idx, []any{nil}, true)
		gomega.Expect(streamRIDs(s, err)).To(gomega.Equal([]rid.RID{rid.New(16, 0)}))
	})

	ginkgo.It("does not range scan a hash-like index", func() {
		idx := memtree.New("Person.age", index.NewDef("Person", index.Property{Name: "age", Type: value.TypeLong}), memtree.HashLike())
		s, err := operator.Major.ExecuteIndexQuery(ctx, idx, []any{3}, true)
		gomega.Expect(err).ShouldNot(gomega.HaveOccurred())
		gomega.Expect(s).To(gomega.BeNil())
	})
})

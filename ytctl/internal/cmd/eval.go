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
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/config"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/index"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/index/memtree"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/logger"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/meter/prom"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/executor"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/logical"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/operator"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/query/value"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/record"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/rid"
)

type evalOptions struct {
	data        string
	field       string
	op          string
	value       string
	useIndex    bool
	descending  bool
	showMetrics bool
}

type evalResult struct {
	rids      []rid.RID
	usedIndex bool
}

func newEvalCmd(q *config.Query) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a predicate against the documents of a dataset",
		Long: `Evaluate "field OP value" against every document of a YAML dataset and
print the identities of the matching records. With --index the field is
indexed first and the operator answers from the index when it can.`,
		Example: `ytctl eval --data people.yaml --field age --op ">" --value 30 --index`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := readDataset(opts.data, cmd.InOrStdin())
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			res, err := evaluate(cmd.Context(), db, opts, q, reg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range res.rids {
				fmt.Fprintln(out, id)
			}
			if !opts.showMetrics {
				return nil
			}
			return writeMetrics(cmd, reg)
		},
	}
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "the dataset file, or - for stdin")
	cmd.Flags().StringVarP(&opts.field, "field", "f", "", "the field on the left of the operator")
	cmd.Flags().StringVarP(&opts.op, "op", "o", "", "the operator keyword")
	cmd.Flags().StringVar(&opts.value, "value", "", "the right operand in YAML, such as 30, Ann or [18, 65]")
	cmd.Flags().BoolVar(&opts.useIndex, "index", false, "index the field and let the operator use the index")
	cmd.Flags().BoolVar(&opts.descending, "desc", false, "read the index in descending key order")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "print the query metrics after the result")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("op")
	return cmd
}

func evaluate(ctx context.Context, db *memDB, opts *evalOptions, q *config.Query, reg prometheus.Registerer) (*evalResult, error) {
	op, ok := operator.Lookup(opts.op)
	if !ok {
		return nil, errors.Errorf("unknown operator %q", opts.op)
	}
	if op.IsUnary() {
		return nil, errors.Errorf("%s takes a condition and cannot compare a field", op.Keyword())
	}
	right := parseValue(opts.value)
	if _, isBetween := op.(*operator.BetweenOperator); isBetween {
		right = betweenBounds(right)
	}
	l := logger.GetLogger("ytctl", "eval")
	qctx := executor.New(l.WithContext(ctx), db, executor.Options{
		Metrics:          executor.NewMetrics(prom.NewProvider(meter.NewHierarchicalScope(q.MetricsNamespace, "_"), reg)),
		PatternCacheSize: q.PatternCacheSize,
	})
	left := logical.NewField(opts.field)
	if opts.useIndex {
		ids, err := indexLookup(qctx, db, op, left, right, !opts.descending)
		if err != nil {
			return nil, err
		}
		if ids != nil {
			return &evalResult{rids: ids.ToSlice(), usedIndex: true}, nil
		}
		l.Debug().Str("operator", op.Keyword()).Str("field", opts.field).Msg("the index can't answer, scanning")
	}
	cond := logical.New(left, op, logical.Lit(right))
	ids := rid.NewSet()
	for _, doc := range db.docs {
		matched, err := cond.Match(qctx, doc)
		if err != nil {
			return nil, err
		}
		if matched {
			ids.Add(doc.Identity())
		}
	}
	return &evalResult{rids: ids.ToSlice()}, nil
}

// indexLookup answers the predicate from a fresh index on the field. It
// returns nil when the operator can't use the index.
func indexLookup(ctx *executor.Context, db *memDB, op operator.Operator, left *logical.Field, right any, ascending bool) (*rid.Set, error) {
	if op.IndexReuseType(left, right) == operator.NoIndex {
		return nil, nil
	}
	idx, err := buildIndex(db, left.FieldName(), op)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug().Str("index", idx.Name()).Int("size", idx.Size()).Msg("built index")
	s, err := op.ExecuteIndexQuery(ctx, idx, []any{right}, ascending)
	if err != nil || s == nil {
		return nil, err
	}
	entries, err := index.Drain(s)
	if err != nil {
		return nil, err
	}
	ids := rid.NewSet()
	for _, e := range entries {
		ids.Add(e.RID)
	}
	return ids, nil
}

// buildIndex indexes field over db. The key type follows the first value
// found; collections get a multi-value index and maps a map index whose
// orientation suits op.
func buildIndex(db *memDB, field string, op operator.Operator) (*memtree.Index, error) {
	var sample any
	for _, doc := range db.docs {
		if sample = record.Field(doc, field); sample != nil {
			break
		}
	}
	def := index.NewDef(db.class, index.Property{Name: field, Type: value.TypeOf(sample)})
	switch {
	case value.IsMap(sample):
		def.MapBy = index.MapIndexByKey
		def.Properties[0].Type = value.TypeString
		if op == operator.ContainsValue {
			def.MapBy = index.MapIndexByValue
			def.Properties[0].Type = elementType(value.Values(sample))
		}
	case value.IsMultiValue(sample):
		def.MultiValue = true
		def.Properties[0].Type = elementType(value.Values(sample))
	}
	idx := memtree.New(strings.Trim(db.class+"."+field, "."), def)
	for _, doc := range db.docs {
		if err := idx.Add(doc); err != nil {
			return nil, errors.WithMessagef(err, "index %s", doc.Identity())
		}
	}
	return idx, nil
}

func elementType(values []any) value.Type {
	for _, v := range values {
		if v != nil {
			return value.TypeOf(v)
		}
	}
	return value.TypeAny
}

// betweenBounds accepts [low, high] as a shorthand of [low, AND, high].
func betweenBounds(v any) any {
	if bounds, ok := v.([]any); ok && len(bounds) == 2 {
		return []any{bounds[0], "AND", bounds[1]}
	}
	return v
}

func writeMetrics(cmd *cobra.Command, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
			return err
		}
	}
	return nil
}

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

package cmd_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/zenizh/go-capturer"

	"github.com/youtrackdb/youtrackdb-sub027/ytctl/internal/cmd"
)

const people = `
class: Person
records:
- fields: {name: Ann, age: 30, tags: [go, db], attrs: {eyes: blue}}
- fields: {name: Bob, age: 17, tags: [java]}
- fields: {name: Cid, age: 45, attrs: {eyes: green}}
- fields: {name: Dan}
`

func run(rootCmd *cobra.Command, args ...string) ([]string, error) {
	rootCmd.SetArgs(args)
	var err error
	out := capturer.CaptureStdout(func() {
		err = rootCmd.Execute()
	})
	return strings.Fields(out), err
}

var _ = Describe("Operators", func() {
	It("lists the operators in tokenizer order", func() {
		lines, err := run(cmd.NewRoot(), "operators")
		Expect(err).NotTo(HaveOccurred())
		out := strings.Join(lines, " ")
		Expect(out).To(ContainSubstring("KEYWORD"))
		Expect(strings.Index(out, " >= ")).To(BeNumerically("<", strings.Index(out, " > ")))
		Expect(strings.Index(out, " <> ")).To(BeNumerically("<", strings.Index(out, " < ")))
		Expect(out).To(ContainSubstring("CONTAINSTEXT"))
	})
})

var _ = Describe("Eval", func() {
	var rootCmd *cobra.Command
	BeforeEach(func() {
		rootCmd = cmd.NewRoot()
		rootCmd.SetIn(strings.NewReader(people))
	})

	DescribeTable("matches the same records with and without an index",
		func(field, op, value string, want ...string) {
			args := []string{"eval", "--data", "-", "--field", field, "--op", op, "--value", value}
			scanned, err := run(rootCmd, args...)
			Expect(err).NotTo(HaveOccurred())
			Expect(scanned).To(Equal(want))

			indexed := cmd.NewRoot()
			indexed.SetIn(strings.NewReader(people))
			got, err := run(indexed, append(args, "--index")...)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("equality", "name", "=", "Ann", "#10:0"),
		Entry("greater than", "age", ">", "20", "#10:0", "#10:2"),
		Entry("less or equal", "age", "<=", "30", "#10:0", "#10:1"),
		Entry("between", "age", "BETWEEN", "[18, 50]", "#10:0", "#10:2"),
		Entry("in", "name", "IN", "[Dan, Bob]", "#10:1", "#10:3"),
		Entry("contains", "tags", "CONTAINS", "go", "#10:0"),
		Entry("containskey", "attrs", "CONTAINSKEY", "eyes", "#10:0", "#10:2"),
		Entry("is null", "age", "IS", "null", "#10:3"),
		Entry("like", "name", "LIKE", "'?O%'", "#10:1"),
		Entry("containstext", "name", "CONTAINSTEXT", "n", "#10:0", "#10:3"),
	)

	It("reads the dataset from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "people.yaml")
		Expect(os.WriteFile(path, []byte(people), 0o600)).To(Succeed())
		got, err := run(rootCmd, "eval", "-d", path, "-f", "age", "-o", "<", "--value", "18")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]string{"#10:1"}))
	})

	It("prints the query metrics", func() {
		lines, err := run(rootCmd, "eval", "--data", "-", "--field", "age", "--op", ">=", "--value", "45", "--metrics")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines[0]).To(Equal("#10:2"))
		Expect(strings.Join(lines, " ")).To(ContainSubstring(`ytdb_query_operator_evaluation_total{operator=">="} 4`))
	})

	It("honours the metrics namespace flag", func() {
		lines, err := run(rootCmd, "eval", "--data", "-", "--field", "name", "--op", "=", "--value", "Bob",
			"--index", "--metrics", "--metrics-namespace", "people")
		Expect(err).NotTo(HaveOccurred())
		Expect(lines[0]).To(Equal("#10:1"))
		Expect(strings.Join(lines, " ")).To(ContainSubstring(`people_index_used_total{index="Person.name"} 1`))
	})

	It("rejects unknown operators", func() {
		_, err := run(rootCmd, "eval", "--data", "-", "--field", "name", "--op", "~~", "--value", "x")
		Expect(err).To(MatchError(ContainSubstring("unknown operator")))
	})

	It("rejects unary operators", func() {
		_, err := run(rootCmd, "eval", "--data", "-", "--field", "name", "--op", "NOT")
		Expect(err).To(HaveOccurred())
	})

	It("requires the dataset", func() {
		_, err := run(rootCmd, "eval", "--field", "name", "--op", "=")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid pattern cache size", func() {
		_, err := run(rootCmd, "eval", "--data", "-", "--field", "name", "--op", "=", "--pattern-cache-size", "0")
		Expect(err).To(MatchError(ContainSubstring("pattern-cache-size")))
	})
})

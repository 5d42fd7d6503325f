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

// Package cmd is an internal package defining cli commands for ytctl.
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/config"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/logger"
	"github.com/youtrackdb/youtrackdb-sub027/pkg/version"
)

const configName = "ytctl"

// NewRoot returns the root command.
func NewRoot() *cobra.Command {
	q := &config.Query{}
	cmd := &cobra.Command{
		Use:               "ytctl",
		DisableAutoGenTag: true,
		Version:           version.Parse(),
		Short:             "ytctl evaluates query predicates against local datasets",
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(configName, cmd.Flags()); err != nil {
				return err
			}
			if err := q.Validate(); err != nil {
				return errors.WithMessage(err, "invalid flags")
			}
			return logger.Init(q.Logging)
		},
	}
	cmd.PersistentFlags().AddFlagSet(q.FlagSet())
	cmd.AddCommand(newOperatorsCmd(), newEvalCmd(q))
	return cmd
}

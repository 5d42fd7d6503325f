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

// Package config loads settings from flags, environment variables and an
// optional YAML file in the working directory.
package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/youtrackdb/youtrackdb-sub027/pkg/logger"
)

// EnvPrefix prefixes every environment variable bound to a flag.
const EnvPrefix = "YTDB"

const (
	defaultPatternCacheSize = 64
	defaultMetricsNamespace = "ytdb_query"
)

// Load reads <name>.yaml from the working directory and the YTDB_* environment
// into the flags of fs which were not set on the command line.
func Load(name string, fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrapf(err, "read config %s", name)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return BindFlags(fs, v, EnvPrefix)
}

// BindFlags binds each flag to its viper key, so that config file and
// environment values reach flags left unset.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper, envPrefix string) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them.
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			err = multierr.Append(err, v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)))
		}
		if !f.Changed && v.IsSet(f.Name) {
			err = multierr.Append(err, setFlag(fs, f, v.Get(f.Name)))
		}
	})
	return err
}

func setFlag(fs *pflag.FlagSet, f *pflag.Flag, val any) error {
	if list, ok := val.([]any); ok {
		parts := make([]string, len(list))
		for i, p := range list {
			parts[i] = fmt.Sprint(p)
		}
		return fs.Set(f.Name, strings.Join(parts, ","))
	}
	return fs.Set(f.Name, fmt.Sprintf("%v", val))
}

// Query holds the tunables of the query engine.
type Query struct {
	MetricsNamespace string
	Logging          logger.Logging
	PatternCacheSize int
}

// FlagSet exposes the query tunables as flags writing into q.
func (q *Query) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("query", pflag.ContinueOnError)
	fs.IntVar(&q.PatternCacheSize, "pattern-cache-size", defaultPatternCacheSize,
		"the number of compiled patterns a query keeps")
	fs.StringVar(&q.MetricsNamespace, "metrics-namespace", defaultMetricsNamespace, "the prefix of metric names")
	fs.StringVar(&q.Logging.Env, "logging-env", "prod", "the logging environment, prod or dev")
	fs.StringVar(&q.Logging.Level, "logging-level", "info", "the root level of logging")
	fs.StringSliceVar(&q.Logging.Modules, "logging-modules", nil, "the modules with a specific logging level")
	fs.StringSliceVar(&q.Logging.Levels, "logging-levels", nil, "the levels of logging-modules")
	return fs
}

// Validate checks the loaded values.
func (q *Query) Validate() error {
	var err error
	if q.PatternCacheSize <= 0 {
		err = multierr.Append(err, errors.Errorf("pattern-cache-size must be positive, got %d", q.PatternCacheSize))
	}
	if len(q.Logging.Modules) != len(q.Logging.Levels) {
		err = multierr.Append(err, errors.New("logging-modules and logging-levels differ in length"))
	}
	return err
}

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

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var root = rootLogger{}

// Output receives log events. It is replaced in tests.
var Output io.Writer = os.Stderr

type rootLogger struct {
	l    *Logger
	m    sync.Mutex
	done uint32
}

func (rl *rootLogger) verify() {
	if atomic.LoadUint32(&rl.done) == 0 {
		rl.setDefault()
	}
}

func (rl *rootLogger) setDefault() {
	rl.m.Lock()
	defer rl.m.Unlock()
	if rl.done == 0 {
		defer atomic.StoreUint32(&rl.done, 1)
		var err error
		rl.l, err = getLogger(Logging{
			Env:   "prod",
			Level: "warn",
		})
		if err != nil {
			panic(err)
		}
	}
}

func (rl *rootLogger) set(cfg Logging) error {
	l, err := getLogger(cfg)
	if err != nil {
		return err
	}
	rl.m.Lock()
	defer rl.m.Unlock()
	rl.l = l
	atomic.StoreUint32(&rl.done, 1)
	return nil
}

// GetLogger return logger with a scope.
func GetLogger(scope ...string) *Logger {
	root.verify()
	if len(scope) < 1 {
		return root.l
	}
	return root.l.Named(scope...)
}

// Init initializes a rs/zerolog logger from user config.
func Init(cfg Logging) error {
	return root.set(cfg)
}

// getLogger initializes a root logger.
func getLogger(cfg Logging) (*Logger, error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, errors.Wrapf(err, "logging level %q", cfg.Level)
	}
	modules, err := moduleLevels(cfg)
	if err != nil {
		return nil, err
	}
	var w io.Writer
	if cfg.Env == "dev" {
		cw := zerolog.ConsoleWriter{Out: Output, TimeFormat: time.RFC3339}
		cw.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		}
		cw.FormatFieldName = func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		}
		w = cw
	} else {
		w = Output
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{module: rootName, modules: modules, Logger: &l}, nil
}

func moduleLevels(cfg Logging) (map[string]zerolog.Level, error) {
	if len(cfg.Modules) != len(cfg.Levels) {
		return nil, errors.Errorf("logging modules %v and levels %v mismatch", cfg.Modules, cfg.Levels)
	}
	if len(cfg.Modules) == 0 {
		return nil, nil
	}
	modules := make(map[string]zerolog.Level, len(cfg.Modules))
	for i, m := range cfg.Modules {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Levels[i]))
		if err != nil {
			return nil, errors.Wrapf(err, "logging level of module %s", m)
		}
		modules[strings.ToUpper(m)] = l
	}
	return modules, nil
}

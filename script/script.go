// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script runs user automation scripts against the cadkit
// API through the yaegi Go interpreter. Scripts are ordinary Go
// code with the cadkit packages pre-imported and an app variable
// bound to the hosting [host.App].
package script

import (
	"os"
	"reflect"
	"strings"

	"github.com/cadkit/cadkit/base/errors"
	"github.com/cadkit/cadkit/host"
	"github.com/cogentcore/yaegi/interp"
	"github.com/cogentcore/yaegi/stdlib"
)

// Runner evaluates Go scripts against the cadkit API. Like the API
// it exposes, a Runner is confined to the loop goroutine: run
// scripts before the loop starts, or from posted functions and
// timer callbacks.
type Runner struct {

	// App is the app that scripts operate on, bound to the app
	// symbol in script code.
	App *host.App

	// Interp is the yaegi interpreter.
	Interp *interp.Interpreter
}

// NewRunner returns a new script runner for the given app, with
// the standard library symbols, the cadkit symbols, and the app
// symbol loaded and imported.
func NewRunner(ap *host.App) *Runner {
	rn := &Runner{App: ap}
	rn.Interp = interp.New(interp.Options{})
	errors.Log(rn.Interp.Use(stdlib.Symbols))
	errors.Log(rn.Interp.Use(Symbols))
	errors.Log(rn.Interp.Use(interp.Exports{
		".": map[string]reflect.Value{
			"app": reflect.ValueOf(ap),
		},
	}))
	rn.Interp.ImportUsed()
	return rn
}

// Run evaluates the given Go source in the interpreter.
// All code must be in a function for declarations to be handled
// correctly, so a source without a main function is wrapped in one.
func (rn *Runner) Run(src string) error {
	if !strings.Contains(src, "func main()") {
		src = "func main() {\n" + src + "\n}"
	}
	_, err := rn.Interp.Eval(src)
	return err
}

// RunFile evaluates the given script file in the interpreter.
func (rn *Runner) RunFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return rn.Run(string(b))
}

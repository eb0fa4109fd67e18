// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NVIDIA/hoststat/pkg/errors"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// FakeRunner is a Runner that replays canned output. It is used by the
// collector tests and never starts a process.
type FakeRunner struct {
	mu sync.Mutex

	// Outputs maps a command line ("name arg1 arg2") or a bare name to the
	// output of successive calls. The last entry repeats once exhausted.
	Outputs map[string][]string

	// Errors maps a command line or bare name to the error it returns.
	Errors map[string]error

	// Missing lists names LookPath reports as NOT_FOUND.
	Missing []string

	// Calls records every Run in order.
	Calls []Call

	served map[string]int
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Outputs: make(map[string][]string),
		Errors:  make(map[string]error),
		served:  make(map[string]int),
	}
}

// On registers outputs returned by successive calls of the command line.
func (f *FakeRunner) On(cmdline string, outputs ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[cmdline] = append(f.Outputs[cmdline], outputs...)
	return f
}

// Fail registers an error for the command line.
func (f *FakeRunner) Fail(cmdline string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[cmdline] = err
	return f
}

// LookPath reports names listed in Missing as NOT_FOUND.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.Missing {
		if m == name {
			return "", errors.New(errors.ErrCodeNotFound, fmt.Sprintf("%s not found", name))
		}
	}
	return name, nil
}

// Run returns the canned output for the command.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := f.LookPath(name); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Name: name, Args: args})

	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	for _, key := range []string{cmdline, name} {
		if err, ok := f.Errors[key]; ok {
			return nil, err
		}
		outs, ok := f.Outputs[key]
		if !ok || len(outs) == 0 {
			continue
		}
		i := f.served[key]
		if i >= len(outs) {
			i = len(outs) - 1
		}
		f.served[key]++
		return []byte(outs[i]), nil
	}

	return nil, errors.New(errors.ErrCodeCommandFailed, fmt.Sprintf("no fake output for %q", cmdline))
}

// CallCount returns the number of Run calls made.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Envvar is an environment variable understood by the program.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var (
	envMu   sync.Mutex
	envvars []Envvar
)

// RegEnv registers an environment variable with its default value and a
// description shown in the help message. Registering a name twice replaces
// the first registration.
func RegEnv(name, defv, desc string) {
	envMu.Lock()
	defer envMu.Unlock()
	for i := range envvars {
		if envvars[i].Name == name {
			envvars[i] = Envvar{name, defv, desc}
			return
		}
	}
	envvars = append(envvars, Envvar{name, defv, desc})
}

// GetEnvvars returns the registered variables in registration order.
func GetEnvvars() []Envvar {
	envMu.Lock()
	defer envMu.Unlock()
	return append([]Envvar(nil), envvars...)
}

// GetEnv returns the value of a registered variable, or its default value if
// the variable is not set.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	envMu.Lock()
	defer envMu.Unlock()
	for _, ev := range envvars {
		if ev.Name == name {
			return ev.Defv
		}
	}
	return ""
}

// GetEnvInt works as GetEnv for integer variables.
func GetEnvInt(name string) (int, error) {
	v := GetEnv(name)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", name, v)
	}
	return i, nil
}

// FindCmd looks for the value of an environment variable.
// If not set returns the registered default value or defaultVal.
func FindCmd(envVar string, defaultVal ...string) ([]string, error) {
	if cmd := GetEnv(envVar); cmd != "" {
		return strings.Fields(cmd), nil
	}
	if len(defaultVal) == 0 {
		return nil, fmt.Errorf("%s is not set", envVar)
	}
	return defaultVal, nil
}

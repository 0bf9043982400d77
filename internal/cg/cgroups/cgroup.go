// Licensed to the Apache Software Foundation (ASF) under one or more
// contributor license agreements.  See the NOTICE file distributed with
// this work for additional information regarding copyright ownership.
// The ASF licenses this file to You under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance with
// the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cgroups

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CGroup is a cgroup directory whose parameter files can be read.
type CGroup struct {
	path string
}

// NewCGroup returns a CGroup rooted at path.
func NewCGroup(path string) *CGroup {
	return &CGroup{path: path}
}

// Path returns the directory of the cgroup.
func (cg *CGroup) Path() string {
	return cg.path
}

// ParamPath returns the file of the named parameter.
func (cg *CGroup) ParamPath(param string) string {
	return filepath.Join(cg.path, param)
}

// readFirstLine returns the first line of a parameter file. A file that
// does not exist is reported as os.ErrNotExist, an empty one as
// io.ErrUnexpectedEOF.
func (cg *CGroup) readFirstLine(param string) (string, error) {
	f, err := os.Open(cg.ParamPath(param))
	if err != nil {
		return "", err
	}
	defer f.Close() // nolint: errcheck

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (cg *CGroup) readInt(param string) (int, error) {
	text, err := cg.readFirstLine(param)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(text)
}

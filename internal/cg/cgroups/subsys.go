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
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	_cgroupSep       = ":"
	_cgroupSubsysSep = ","
)

const (
	_csFieldIDID = iota
	_csFieldIDSubsystems
	_csFieldIDName
	_csFieldCount
)

type cgroupSubsysFormatInvalidError struct {
	line string
}

func (err cgroupSubsysFormatInvalidError) Error() string {
	return fmt.Sprintf("invalid format for CGroupSubsys: %q", err.line)
}

// CGroupSubsys is one line of `/proc/$PID/cgroup`:
//   hierarchy-ID:controller-list:cgroup-path
// See also cgroups(7).
type CGroupSubsys struct {
	ID         int
	Subsystems []string
	Name       string
}

// NewCGroupSubsysFromLine parses a line of `/proc/$PID/cgroup`.
func NewCGroupSubsysFromLine(line string) (*CGroupSubsys, error) {
	// the path itself may contain ':'
	fields := strings.SplitN(line, _cgroupSep, _csFieldCount)
	if len(fields) != _csFieldCount {
		return nil, cgroupSubsysFormatInvalidError{line}
	}

	id, err := strconv.Atoi(fields[_csFieldIDID])
	if err != nil {
		return nil, err
	}

	return &CGroupSubsys{
		ID:         id,
		Subsystems: strings.Split(fields[_csFieldIDSubsystems], _cgroupSubsysSep),
		Name:       fields[_csFieldIDName],
	}, nil
}

// parseCGroupSubsystems parses a cgroup membership file, usually
// `/proc/$PID/cgroup`, keyed by controller name. The v2 entry has an
// empty controller list and is keyed by "".
func parseCGroupSubsystems(path string) (map[string]*CGroupSubsys, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck

	subsystems := make(map[string]*CGroupSubsys)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		subsys, err := NewCGroupSubsysFromLine(scanner.Text())
		if err != nil {
			return nil, err
		}
		for _, name := range subsys.Subsystems {
			subsystems[name] = subsys
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return subsystems, nil
}

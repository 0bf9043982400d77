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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	_cgroupV2MemMaxParam     = "memory.max"
	_cgroupV2MemCurrentParam = "memory.current"
	_cgroupV2MemMaxUnset     = "max"
)

// V2 is the memory controller of a cgroup in the unified hierarchy.
type V2 struct {
	group *CGroup
}

func newV2(mount *MountPoint, subsystems map[string]*CGroupSubsys) (*V2, error) {
	// the unified hierarchy is the entry with hierarchy ID 0
	for _, subsys := range subsystems {
		if subsys.ID == 0 {
			return &V2{group: NewCGroup(filepath.Join(mount.MountPoint, subsys.Name))}, nil
		}
	}
	return nil, ErrNotV2
}

func (cg *V2) MemLimit() (int, bool, error) {
	text, err := cg.group.readFirstLine(_cgroupV2MemMaxParam)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return -1, false, nil
		}
		return -1, false, err
	}
	if text == _cgroupV2MemMaxUnset {
		return -1, false, nil
	}
	limit, err := strconv.Atoi(text)
	if err != nil {
		return -1, false, fmt.Errorf("parse max memory failed, invalid format. %w", err)
	}
	return limit, true, nil
}

func (cg *V2) MemUsage() (int, error) {
	return cg.group.readInt(_cgroupV2MemCurrentParam)
}

func (cg *V2) Version() string {
	return _cgroupV2FSType
}

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
	"os"
)

const (
	// _cgroupSubsysMemory is the memory cgroup subsystem.
	_cgroupSubsysMemory = "memory"

	_cgroupV1MemLimitParam = "memory.limit_in_bytes"
	_cgroupV1MemUsageParam = "memory.usage_in_bytes"

	// an unlimited v1 cgroup reports PAGE_COUNTER_MAX pages, anything this
	// large is no limit at all
	_cgroupV1MemUnlimited = 1 << 62
)

// V1 is the memory controller of a cgroup v1 hierarchy.
// A nil memory group means the controller is not mounted.
type V1 struct {
	memory *CGroup
}

func newV1(mounts []*MountPoint, subsystems map[string]*CGroupSubsys) (*V1, error) {
	v1 := &V1{}
	subsys, ok := subsystems[_cgroupSubsysMemory]
	if !ok {
		return v1, nil
	}

	for _, mp := range mounts {
		if mp.FSType != _cgroupV1FSType || !mp.hasSuperOption(_cgroupSubsysMemory) {
			continue
		}
		path, err := mp.Translate(subsys.Name)
		if err != nil {
			return nil, err
		}
		v1.memory = NewCGroup(path)
		break
	}
	return v1, nil
}

func (cg *V1) MemLimit() (int, bool, error) {
	if cg.memory == nil {
		return -1, false, nil
	}
	limit, err := cg.memory.readInt(_cgroupV1MemLimitParam)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return -1, false, nil
		}
		return -1, false, err
	}
	if limit <= 0 || limit >= _cgroupV1MemUnlimited {
		return -1, false, nil
	}
	return limit, true, nil
}

func (cg *V1) MemUsage() (int, error) {
	if cg.memory == nil {
		return 0, ErrCGroupFSNotFound
	}
	return cg.memory.readInt(_cgroupV1MemUsageParam)
}

func (cg *V1) Version() string {
	return _cgroupV1FSType
}

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

// load picks the hierarchy from the first cgroup mount found: a cgroup2
// mount means the unified hierarchy, a cgroup mount means v1.
func load(mountInfoPath, procCGroupPath string) (MemCGroup, error) {
	mounts, err := parseMountInfo(mountInfoPath)
	if err != nil {
		return nil, err
	}
	subsystems, err := parseCGroupSubsystems(procCGroupPath)
	if err != nil {
		return nil, err
	}

	for _, mp := range mounts {
		switch mp.FSType {
		case _cgroupV2FSType:
			v2, err := newV2(mp, subsystems)
			if err != nil {
				return nil, err
			}
			return v2, nil
		case _cgroupV1FSType:
			v1, err := newV1(mounts, subsystems)
			if err != nil {
				return nil, err
			}
			return v1, nil
		}
	}
	return nil, ErrCGroupFSNotFound
}

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

// Package cgroups reads the memory controller of the cgroup the current
// process belongs to, for both cgroup v1 and the unified v2 hierarchy.
package cgroups

import "errors"

var (
	// ErrCGroupFSNotFound indicates that the system is not using cgroups.
	ErrCGroupFSNotFound = errors.New("cgroupfs not found")
	// ErrNotV2 indicates that the system is not using cgroups2.
	ErrNotV2 = errors.New("not using cgroups2")
)

const (
	// _cgroupV1FSType is the cgroup v1 file system type in `/proc/$PID/mountinfo`.
	_cgroupV1FSType = "cgroup"
	// _cgroupV2FSType is the cgroup v2 file system type in `/proc/$PID/mountinfo`.
	_cgroupV2FSType = "cgroup2"
)

// MemCGroup is the memory controller of a cgroup.
type MemCGroup interface {
	// MemLimit returns the memory limit in bytes. When no limit is set
	// the method returns `(-1, false, nil)`.
	MemLimit() (int, bool, error)
	// MemUsage returns the memory currently charged to the cgroup in bytes.
	MemUsage() (int, error)
	// Version returns the cgroup file system type.
	Version() string
}

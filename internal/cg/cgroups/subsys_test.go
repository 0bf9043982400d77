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
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCGroupSubsysFromLine(t *testing.T) {
	testTable := []struct {
		name     string
		line     string
		expected *CGroupSubsys
	}{
		{
			name:     "single-subsys",
			line:     "4:memory:/",
			expected: &CGroupSubsys{ID: 4, Subsystems: []string{"memory"}, Name: "/"},
		},
		{
			name:     "multi-subsys",
			line:     "8:cpu,cpuacct:/docker/1234567890abcdef",
			expected: &CGroupSubsys{ID: 8, Subsystems: []string{"cpu", "cpuacct"}, Name: "/docker/1234567890abcdef"},
		},
		{
			name:     "unified",
			line:     "0::/user.slice/user-1000.slice/session-2.scope",
			expected: &CGroupSubsys{ID: 0, Subsystems: []string{""}, Name: "/user.slice/user-1000.slice/session-2.scope"},
		},
		{
			name: "colon-in-path",
			line: "12:memory:/system.slice/containerd.service/kubepods.slice:cri-containerd:1753b7cbbf62",
			expected: &CGroupSubsys{
				ID:         12,
				Subsystems: []string{"memory"},
				Name:       "/system.slice/containerd.service/kubepods.slice:cri-containerd:1753b7cbbf62",
			},
		},
	}

	for _, tt := range testTable {
		t.Run(tt.name, func(t *testing.T) {
			subsys, err := NewCGroupSubsysFromLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, subsys)
		})
	}
}

func TestNewCGroupSubsysFromLineErr(t *testing.T) {
	_, parseError := strconv.Atoi("not-a-number")

	testTable := []struct {
		name     string
		line     string
		expected error
	}{
		{
			name:     "fewer-fields",
			line:     "4:memory",
			expected: cgroupSubsysFormatInvalidError{"4:memory"},
		},
		{
			name:     "illegal-id",
			line:     "not-a-number:memory:/",
			expected: parseError,
		},
	}

	for _, tt := range testTable {
		subsys, err := NewCGroupSubsysFromLine(tt.line)
		assert.Nil(t, subsys, tt.name)
		assert.Equal(t, tt.expected, err, tt.name)
	}
}

func TestParseCGroupSubsystems(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"cgroup":  "4:memory:/large\n3:cpu,cpuacct:/\n0::/\n",
		"invalid": "4:memory\n",
	})

	subsystems, err := parseCGroupSubsystems(filepath.Join(dir, "cgroup"))
	require.NoError(t, err)
	assert.Len(t, subsystems, 4)
	assert.Equal(t, "/large", subsystems["memory"].Name)
	assert.Same(t, subsystems["cpu"], subsystems["cpuacct"])
	assert.Equal(t, 0, subsystems[""].ID)

	_, err = parseCGroupSubsystems(filepath.Join(dir, "invalid"))
	assert.Error(t, err)
}

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
	"path/filepath"
	"strconv"
	"strings"
)

type mountPointFormatInvalidError struct {
	line string
}

func (err mountPointFormatInvalidError) Error() string {
	return fmt.Sprintf("invalid format for MountPoint: %q", err.line)
}

type pathNotExposedFromMountPointError struct {
	mountPoint string
	root       string
	path       string
}

func (err pathNotExposedFromMountPointError) Error() string {
	return fmt.Sprintf("path %q is not a descendant of mount point root %q and cannot be exposed from %q", err.path, err.root, err.mountPoint)
}

// a mountinfo line is
//   id parent dev root mountpoint opts [optional...] - fstype source superopts
const (
	_mountInfoSep      = " "
	_mountInfoListSep  = ","
	_mountInfoFieldEnd = "-"

	_mountInfoLeadingFields  = 6
	_mountInfoTrailingFields = 3
)

// MountPoint is one entry of `/proc/$PID/mountinfo`. See also proc(5).
type MountPoint struct {
	MountID        int
	ParentID       int
	DeviceID       string
	Root           string
	MountPoint     string
	Options        []string
	OptionalFields []string
	FSType         string
	MountSource    string
	SuperOptions   []string
}

// NewMountPointFromLine parses a line read from `/proc/$PID/mountinfo`.
func NewMountPointFromLine(line string) (*MountPoint, error) {
	fields := strings.Split(line, _mountInfoSep)
	if len(fields) < _mountInfoLeadingFields+1+_mountInfoTrailingFields {
		return nil, mountPointFormatInvalidError{line}
	}

	mountID, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, err
	}
	parentID, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, err
	}

	// the optional fields run up to the lone "-" separator
	sep := -1
	for i := _mountInfoLeadingFields; i < len(fields); i++ {
		if fields[i] == _mountInfoFieldEnd {
			sep = i
			break
		}
	}
	if sep < 0 || len(fields) != sep+1+_mountInfoTrailingFields {
		return nil, mountPointFormatInvalidError{line}
	}

	tail := fields[sep+1:]
	return &MountPoint{
		MountID:        mountID,
		ParentID:       parentID,
		DeviceID:       fields[2],
		Root:           fields[3],
		MountPoint:     fields[4],
		Options:        strings.Split(fields[5], _mountInfoListSep),
		OptionalFields: fields[_mountInfoLeadingFields:sep],
		FSType:         tail[0],
		MountSource:    tail[1],
		SuperOptions:   strings.Split(tail[2], _mountInfoListSep),
	}, nil
}

// Translate converts an absolute path inside the mount's file system to the
// path it is reachable at in the current mount namespace.
func (mp *MountPoint) Translate(absPath string) (string, error) {
	relPath, err := filepath.Rel(mp.Root, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, "../") {
		return "", pathNotExposedFromMountPointError{
			mountPoint: mp.MountPoint,
			root:       mp.Root,
			path:       absPath,
		}
	}
	return filepath.Join(mp.MountPoint, relPath), nil
}

func (mp *MountPoint) hasSuperOption(opt string) bool {
	for _, o := range mp.SuperOptions {
		if o == opt {
			return true
		}
	}
	return false
}

// parseMountInfo parses a mountinfo file, usually `/proc/$PID/mountinfo`.
func parseMountInfo(path string) ([]*MountPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck

	var mps []*MountPoint
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		mp, err := NewMountPointFromLine(scanner.Text())
		if err != nil {
			return nil, err
		}
		mps = append(mps, mp)
	}
	return mps, scanner.Err()
}

// This file is part of CycleSpitter.
//
// CycleSpitter is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CycleSpitter is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CycleSpitter.  If not, see <https://www.gnu.org/licenses/>.

// Package paths resolves the location of shared resource files: templates
// and project files that are not specific to a single effect. A resource
// lives in the ".cyclespitter" directory, found either in the current
// directory or in the user's config directory.
package paths

import (
	"os"
	"path"
)

// the base path for all resources. use getBasePath() rather than this value
const baseResourcePath = ".cyclespitter"

// ResourcePath returns the resource name prepended with the resource
// directory for this user and operating system.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return path.Join(p...)
}

// Find returns the name unchanged if a file of that name exists, otherwise
// the name resolved against the resource directory. The file at the
// returned path is not guaranteed to exist.
func Find(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return ResourcePath(name)
}

// getBasePath returns baseResourcePath, preferring the current directory
// over the user's config directory.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(home, baseResourcePath[1:])
}

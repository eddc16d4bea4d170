// Copyright (c) 2025, Cadkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides filesystem helpers used across cadkit,
// for both os paths and [fs.FS] based access.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cadkit/cadkit/base/errors"
)

// Sub returns [fs.Sub] with any error automatically logged,
// for cases where the directory is hardcoded and there is
// no chance of error.
func Sub(fsys fs.FS, dir string) fs.FS {
	return errors.Log1(fs.Sub(fsys, dir))
}

// DirFS returns the directory part of the given file path as an
// [os.DirFS] and the filename within it, so the file can be
// accessed through the FS-based interface, consistent with embed
// and other FS use cases.
func DirFS(fpath string) (fs.FS, string, error) {
	fabs, err := filepath.Abs(fpath)
	if err != nil {
		return nil, "", err
	}
	dir, fname := filepath.Split(fabs)
	return os.DirFS(dir), fname, nil
}

// FileExists returns true if the given os path exists and is a
// file, not a directory. An error is returned only for access
// failures other than the file not existing.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FileExistsFS is the [fs.FS] version of [FileExists].
func FileExistsFS(fsys fs.FS, filePath string) (bool, error) {
	if fsys, ok := fsys.(fs.StatFS); ok {
		fileInfo, err := fsys.Stat(filePath)
		if err == nil {
			return !fileInfo.IsDir(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	fp, err := fsys.Open(filePath)
	if err == nil {
		fp.Close()
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindFilesOnPaths attempts to locate the given file on the given
// list of directories, returning the full paths of all that exist,
// in path order. Errors from inaccessible directories are skipped.
func FindFilesOnPaths(paths []string, file string) []string {
	var files []string
	for _, path := range paths {
		filePath := filepath.Join(path, file)
		ok, _ := FileExists(filePath)
		if ok {
			files = append(files, filePath)
		}
	}
	return files
}

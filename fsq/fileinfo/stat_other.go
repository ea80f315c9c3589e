//go:build !linux && !darwin

package fileinfo

import "io/fs"

// Only size, mode and modification time are portable.
func fillPlatformStat(*Stat, string, fs.FileInfo) {}

// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// File is the source file being processed
	File = "file"

	// Line is a 1-indexed line number within File
	Line = "line"

	// Module is the name of a documented module
	Module = "module"

	// Dest is the path of a generated output file
	Dest = "dest"

	// Count is a number of processed items
	Count = "count"
)

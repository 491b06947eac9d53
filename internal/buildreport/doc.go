// Package buildreport inventories the source directory workflows are built
// from.
//
// A source directory holds JSON workflow templates next to plain-text
// configuration files flagged with a marker line (`#!ZCONFIG` by default).
// One marker file with a reserved name (global.txt or globals.txt) is the
// global configuration shared by every build. Scan classifies the directory
// and Render prints the inventory the build step starts from.
package buildreport

//go:build nopng

package loader

var defaultImageReader MetadataReader

//go:build !nopng

package loader

import "zimage/internal/pngmeta"

var defaultImageReader MetadataReader = pngmeta.ReadFile

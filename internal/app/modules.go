package app

import (
	"github.com/specialistvlad/enginecore/internal/plugin"
	"github.com/specialistvlad/enginecore/modules/enginecore"
)

// coreModules is the definitive list of all modules that are compiled into
// the enginecore binary.
var coreModules = []plugin.Module{
	&enginecore.Module{},
}

// CoreModules returns the metadata of the compiled-in modules without
// running them.
func CoreModules() []plugin.LibraryMetadata {
	out := make([]plugin.LibraryMetadata, 0, len(coreModules))
	for _, m := range coreModules {
		out = append(out, m.Metadata())
	}
	return out
}

package modkit

import "grocer/internal/modkit/module"

// Module is re-exported so callers that only build modules need a single import
type Module = module.Module

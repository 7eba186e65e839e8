package voro2d

// Exit codes for the two fatal conditions a container run can hit: memory
// exhaustion and text-import failure each get a distinct status, matching
// voro++'s VOROPP_MEMORY_ERROR / VOROPP_FILE_ERROR. voro2d itself never
// calls os.Exit; these are the codes cmd/ binaries should pass to
// internal/logx.Fatalf when a library call panics or returns
// ErrImportParse.
const (
	ExitCodeMemoryExhausted = 2
	ExitCodeImportError     = 3
)

package skipkv

// These hooks are intended solely for test instrumentation and must not perform blocking
// or mutating operations that affect production correctness. They run with the write
// lock held.
var (
	// spliceLevelHook is invoked after a new node is linked in at a level.
	spliceLevelHook func(level int, node any)

	// unlinkLevelHook is invoked after a deleted node is cut out of a level.
	unlinkLevelHook func(level int, node any)
)

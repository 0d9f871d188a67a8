package main

// Short messages (one-liners)
const (
	MsgRootShort = "Clean and re-project uMod CopyPaste save files"
	MsgRootLong  = `cpcleaner transforms uMod/Oxide CopyPaste save documents with named
filters: removing, switching off, or emptying placed entities, fixing
ownership, and rewriting lock codes. Writes are atomic; a crash never
leaves a half-written output file.`

	MsgGetInfoShort      = "Report owner, lock, and entity-type statistics of a document"
	MsgInitSettingsShort = "Write the sample filter settings file"
	MsgDoCleanShort      = "Apply a filter to one file or a directory of files"
	MsgDoSpaceShort      = "Re-project a document into a base configuration plus residual entities"
	MsgVersionShort      = "Print version information"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagInput     = "Input file or directory"
	MsgFlagOutput    = "Output file or directory"
	MsgFlagOverwrite = "Replace existing output files"
	MsgFlagJSON      = "Emit the report as JSON"
	MsgFlagFilterID  = "Filter to apply (required when several are configured)"
	MsgFlagOwnerID   = "Assign this owner to every owned entity (0 auto-assigns the dominant owner)"
	MsgFlagLockCode  = "Rewrite every combination lock to this four-digit code"
	MsgFlagLockRm    = "Remove every lock, key and combination alike"
	MsgFlagStripXtra = "Extra strip-contents pattern, on top of the filter's own list (repeatable)"
	MsgFlagDryRun    = "Report what would change without writing anything"
)

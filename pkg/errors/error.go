package errors

// ErrorCode represents a specific error code in the storage engine.
type ErrorCode string

const (
	// GeneralInternalError represents a generic internal error.
	GeneralInternalError ErrorCode = "general_internal_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// BlockTooSmallError represents a buffer shorter than its declared block header.
	BlockTooSmallError ErrorCode = "block_too_small"
	// BlockSizeMismatchError represents a compressed block whose declared payload
	// length does not match the actual number of bytes following the header.
	BlockSizeMismatchError ErrorCode = "block_size_mismatch"
	// BlockDecompressError represents a failure of the compression primitive.
	BlockDecompressError ErrorCode = "block_decompress_error"
	// BlockBadFlagError represents a block whose magic flag is not recognized.
	BlockBadFlagError ErrorCode = "block_bad_flag"
	// BlockBadVersionError represents a block carrying an unknown version value.
	BlockBadVersionError ErrorCode = "block_bad_version"

	// AdjustConfigError represents a malformed adjustment factor file.
	AdjustConfigError ErrorCode = "adjust_config_error"
	// RuleConfigError represents a malformed rollover rule file.
	RuleConfigError ErrorCode = "rule_config_error"

	// MmapOpenError represents a failure opening a real-time block file.
	MmapOpenError ErrorCode = "mmap_open_error"
	// MmapMapError represents a failure memory-mapping a real-time block file.
	MmapMapError ErrorCode = "mmap_map_error"

	// CodeParseError represents a standard code that cannot be parsed.
	CodeParseError ErrorCode = "code_parse_error"
)

// Is reports whether err carries the given storage error code.
func Is(err error, code ErrorCode) bool {
	tracer, ok := err.(*ErrorTracer)
	if !ok {
		return false
	}
	return tracer.Message == string(code)
}

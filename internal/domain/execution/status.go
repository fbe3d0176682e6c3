package execution

// Status is the terminal classification of one submission.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusMismatchWarning  Status = "mismatch_warning"
	StatusValidationError  Status = "validation_error"
	StatusCompileError     Status = "compile_error"
	StatusRuntimeError     Status = "runtime_error"
	StatusTimeout          Status = "timeout"
	StatusToolchainMissing Status = "toolchain_missing"
	StatusInternalError    Status = "internal_error"
)

// Kind narrows a failing Status down to the concrete reason.
type Kind string

const (
	KindNone                Kind = ""
	KindEmptySubmission     Kind = "EmptySubmission"
	KindUnsupportedLanguage Kind = "UnsupportedLanguage"
	KindMissingPublicClass  Kind = "MissingPublicClass"
	KindMissingMainMethod   Kind = "MissingMainMethod"
	KindMismatch            Kind = "MismatchWarning"
	KindWriteError          Kind = "WriteError"
	KindCompileError        Kind = "CompileError"
	KindExecutionTimeout    Kind = "ExecutionTimeout"
	KindToolchainMissing    Kind = "ToolchainMissing"
	KindRuntimeError        Kind = "RuntimeError"
	KindInternalError       Kind = "InternalError"
)

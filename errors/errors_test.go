package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidPath, "path ascends past its root")

	require.NotNil(t, err)
	require.Equal(t, CodeInvalidPath, err.Code())
	require.Equal(t, "path ascends past its root", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Unwrap())
	require.Nil(t, err.Context())
	require.Equal(t, "[INVALID_PATH] path ascends past its root", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeNotEnoughMemory, "file size %d exceeds limit %d", 10, 4)
	require.Equal(t, "file size 10 exceeds limit 4", err.Message())
	require.Equal(t, ClassResource, ClassOfError(err))
}

func TestEndOfStream(t *testing.T) {
	err := EndOfStream(3)

	require.Equal(t, CodeEndOfStream, err.Code())
	require.True(t, Is(err, io.EOF))
	require.True(t, IsEndOfStream(err))
	require.Contains(t, err.Message(), "3 bytes")
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("input/output error")
	err := Wrap(cause, CodeReadFault, "read failed")

	require.Equal(t, CodeReadFault, err.Code())
	require.Equal(t, cause, err.Unwrap())
	require.Equal(t, "[READ_FAULT] read failed: input/output error", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeFailure, "test"))
	require.Nil(t, Wrapf(nil, CodeFailure, "test %s", "arg"))
	require.Nil(t, WrapWithContext(nil, CodeFailure, "test", nil))
}

func TestWrap_PreservesClassification(t *testing.T) {
	locked := WithClassification(New(CodeFailure, "file is locked"), ClassificationRetryable)
	wrapped := Wrap(locked, CodeFailure, "open for write failed")

	require.True(t, wrapped.Classification().IsRetryable())
	require.True(t, IsRetryable(wrapped))
}

func TestWrap_ReportsInnerOpAndPath(t *testing.T) {
	inner := WithOp(New(CodeNotFound, "path does not exist"), "open_read", "/data/a.bin")
	wrapped := Wrap(inner, CodeFailure, "copy failed")

	require.Equal(t, "open_read", wrapped.Op())
	require.Equal(t, "/data/a.bin", wrapped.Path())
	require.Equal(t, CodeFailure, wrapped.Code())
	require.True(t, IsStatus(inner, CodeNotFound))
}

func TestWrapWithContext(t *testing.T) {
	ctx := map[string]interface{}{"source": "/a", "target": "/b"}
	err := WrapWithContext(stderrors.New("boom"), CodeFailure, "copy failed", ctx)

	ctx["source"] = "mutated"
	require.Equal(t, "/a", err.Context()["source"])
	require.Equal(t, "/b", err.Context()["target"])
}

func TestWithOp(t *testing.T) {
	err := WithOp(New(CodeInvalidFile, "is a directory"), "open_read", "/tmp/dir")

	require.Equal(t, "open_read", err.Op())
	require.Equal(t, "/tmp/dir", err.Path())
	require.Equal(t, `[INVALID_FILE] open_read "/tmp/dir": is a directory`, err.Error())

	again := WithOp(err, "", "/other")
	require.Equal(t, "open_read", again.Op())
	require.Equal(t, "/other", again.Path())
	require.Equal(t, "/tmp/dir", err.Path())

	require.Nil(t, WithOp(nil, "op", "path"))
}

func TestWithContext(t *testing.T) {
	base := New(CodeFailure, "failed")
	err := WithContext(base, "attempt", 2)
	err = WithContext(err, "backend", "native")

	require.Equal(t, 2, err.Context()["attempt"])
	require.Equal(t, "native", err.Context()["backend"])
	require.Nil(t, base.Context())
}

func TestWithContextMap(t *testing.T) {
	err := WithContextMap(WithContext(New(CodeFailure, "failed"), "a", 1), map[string]interface{}{"a": 2, "b": 3})

	require.Equal(t, 2, err.Context()["a"])
	require.Equal(t, 3, err.Context()["b"])
}

func TestWithContext_StandardError(t *testing.T) {
	std := stderrors.New("plain")
	err := WithContext(std, "k", "v")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "plain", err.Message())
	require.True(t, Is(err, std))
}

func TestWithClassification(t *testing.T) {
	err := WithClassification(New(CodeFailure, "file is locked"), ClassificationRetryable)

	require.Equal(t, CodeFailure, err.Code())
	require.True(t, IsRetryable(err))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil is success", err: nil, want: CodeSuccess},
		{name: "storage error", err: New(CodeNotFound, "x"), want: CodeNotFound},
		{name: "wrapped with fmt", err: fmt.Errorf("ctx: %w", New(CodeWriteFault, "x")), want: CodeWriteFault},
		{name: "standard error", err: stderrors.New("x"), want: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want Class
	}{
		{CodeSuccess, ClassNone},
		{CodeInvalidPath, ClassCaller},
		{CodeInvalidFile, ClassCaller},
		{CodeInvalidInput, ClassCaller},
		{CodeFailure, ClassEnvironment},
		{CodeNotFound, ClassEnvironment},
		{CodeEndOfStream, ClassEnvironment},
		{CodeReadFault, ClassEnvironment},
		{CodeWriteFault, ClassEnvironment},
		{CodeNotEnoughMemory, ClassResource},
		{ErrorCode("SOMETHING_ELSE"), ClassEnvironment},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, ClassOf(tt.code))
		})
	}
}

func TestGetCodeAndClassification_Defaults(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("x")))
	require.Equal(t, ClassificationPermanent, GetClassification(nil))
	require.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("x")))
	require.False(t, IsRetryable(nil))
}

func TestFromOS(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback ErrorCode
		want     ErrorCode
	}{
		{name: "not exist", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT}, fallback: CodeFailure, want: CodeNotFound},
		{name: "exist", err: &fs.PathError{Op: "mkdir", Path: "/x", Err: syscall.EEXIST}, fallback: CodeFailure, want: CodeAlreadyExists},
		{name: "permission", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, fallback: CodeFailure, want: CodePermissionDenied},
		{name: "not a directory", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.ENOTDIR}, fallback: CodeFailure, want: CodeInvalidFile},
		{name: "is a directory", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.EISDIR}, fallback: CodeFailure, want: CodeInvalidFile},
		{name: "eof", err: io.ErrUnexpectedEOF, fallback: CodeReadFault, want: CodeEndOfStream},
		{name: "fallback", err: syscall.EIO, fallback: CodeWriteFault, want: CodeWriteFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromOS(tt.err, tt.fallback, "op", "/x")
			require.Equal(t, tt.want, err.Code())
			require.Equal(t, "op", err.Op())
			require.Equal(t, "/x", err.Path())
			require.True(t, Is(err, tt.err))
		})
	}

	require.Nil(t, FromOS(nil, CodeFailure, "op", "/x"))
}

func TestFromOS_KeepsStorageError(t *testing.T) {
	err := FromOS(New(CodeInvalidFile, "is a directory"), CodeFailure, "open_read", "/d")
	require.Equal(t, CodeInvalidFile, err.Code())
	require.Equal(t, "/d", err.Path())
}

func TestToJSON(t *testing.T) {
	require.Nil(t, ToJSON(nil))

	err := WithContext(WithOp(New(CodeNotFound, "path does not exist"), "exists", "/a"), "backend", "memory")
	resp := ToJSON(err)
	require.Equal(t, "NOT_FOUND", resp.Code)
	require.Equal(t, "path does not exist", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)
	require.Equal(t, "exists", resp.Op)
	require.Equal(t, "/a", resp.Path)
	require.Equal(t, "memory", resp.Context["backend"])

	std := ToJSON(stderrors.New("plain"))
	require.Equal(t, "UNKNOWN", std.Code)
	require.Equal(t, "plain", std.Message)
}

func TestMarshalJSON(t *testing.T) {
	err := WithOp(New(CodeInvalidPath, "bad"), "canonicalize", "../x")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.JSONEq(t,
		`{"code":"INVALID_PATH","message":"bad","classification":"PERMANENT","op":"canonicalize","path":"../x"}`,
		string(data))
}

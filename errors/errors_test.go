package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeMediaDecode, "bad audio", http.StatusInternalServerError)
	if err.Code != ErrCodeMediaDecode {
		t.Errorf("expected code %s, got %s", ErrCodeMediaDecode, err.Code)
	}
	if err.Message != "bad audio" {
		t.Errorf("expected message 'bad audio', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("MEDIA_DECODE_FAILED should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	err := UnsupportedFormat("txt", []string{"opus", "mp3", "wav", "m4a"})
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Code != ErrCodeUnsupportedFormat {
		t.Errorf("expected UNSUPPORTED_FORMAT, got %s", err.Code)
	}
	if !strings.Contains(err.Message, `"txt"`) || !strings.Contains(err.Message, "opus, mp3, wav, m4a") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestMediaDecode(t *testing.T) {
	cause := fmt.Errorf("process: exit code 1")
	err := MediaDecode("  pipe:0: Invalid data found when processing input\n", cause)

	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
	if !strings.HasSuffix(err.Message, "pipe:0: Invalid data found when processing input") {
		t.Errorf("diagnostic should be part of the message, got %q", err.Message)
	}
	if err.Details["diagnostic"] != "pipe:0: Invalid data found when processing input" {
		t.Errorf("unexpected diagnostic detail %v", err.Details["diagnostic"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestMediaDecode_EmptyDiagnostic(t *testing.T) {
	err := MediaDecode("", nil)
	if err.Message != "Audio could not be decoded" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestTranscription_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("model exploded")
	err := Transcription("whisper", cause)

	if !stderrors.Is(err, cause) {
		t.Error("engine error must be reachable unchanged")
	}
	if err.Details["backend"] != "whisper" {
		t.Errorf("expected backend detail, got %v", err.Details["backend"])
	}
	if !strings.Contains(err.Message, "model exploded") {
		t.Errorf("expected cause text in message, got %q", err.Message)
	}
}

func TestIO(t *testing.T) {
	err := IO("write temp file", fmt.Errorf("disk full"))
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.Details["operation"] != "write temp file" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := Internal(fmt.Errorf("root"))
	if !strings.Contains(err.Error(), "INTERNAL_ERROR") || !strings.Contains(err.Error(), "root") {
		t.Errorf("unexpected Error() %q", err.Error())
	}
	plain := New(ErrCodeInvalidInput, "nope", http.StatusBadRequest)
	if plain.Error() != "INVALID_INPUT: nope" {
		t.Errorf("unexpected Error() %q", plain.Error())
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", MissingField("file"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if !IsCode(wrapped, ErrCodeMissingField) {
		t.Error("IsCode should see through wrapping")
	}
	if IsCode(fmt.Errorf("plain"), ErrCodeMissingField) {
		t.Error("plain errors carry no code")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("plain error is not an AppError")
	}
}

func TestToResponse(t *testing.T) {
	resp := UnsupportedFormat("txt", []string{"wav"}).ToResponse()
	if resp.Code != ErrCodeUnsupportedFormat {
		t.Errorf("expected code in response, got %s", resp.Code)
	}
	if resp.Error == "" {
		t.Error("expected message in response")
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad").WithDetail("field", "engine.model").WithCause(fmt.Errorf("x"))
	if err.Details["field"] != "engine.model" {
		t.Errorf("unexpected details %v", err.Details)
	}
	if err.Cause == nil {
		t.Error("expected cause to be set")
	}
}

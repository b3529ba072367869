package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cydxin/read-receipt-sdk/service"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, CodeSuccess},
		{fmt.Errorf("%w: bad json", service.ErrMalformedRequest), CodeParamError},
		{fmt.Errorf("%w: expired", service.ErrAuthentication), CodeTokenInvalid},
		{fmt.Errorf("%w: room 99", service.ErrUnauthorizedConversation), CodePermissionDeny},
		{fmt.Errorf("%w: message 1", service.ErrMessageNotFound), CodeMessageNotFound},
		{fmt.Errorf("%w: %w", service.ErrStorage, errors.New("deadlock")), CodeInternalError},
		{errors.New("unknown"), CodeInternalError},
	}
	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Errorf("CodeOf(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestFromError_HidesInternalDetails(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrStorage, errors.New("dsn=secret"))

	if r := FromError(err, false); r.Msg != "internal error" {
		t.Fatalf("expected masked message, got %q", r.Msg)
	}
	if r := FromError(err, true); r.Msg != err.Error() {
		t.Fatalf("expected full message in debug, got %q", r.Msg)
	}
	if r := FromError(fmt.Errorf("%w: room 99", service.ErrUnauthorizedConversation), false); r.Msg == "internal error" {
		t.Fatalf("client errors should keep their message")
	}
}

func TestWriteJSONWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(CodeTokenInvalid, "missing token").WriteJSONWithStatus(rec, http.StatusUnauthorized)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != CodeTokenInvalid || body.Msg != "missing token" {
		t.Fatalf("unexpected body %#v", body)
	}
}

package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{NotFound("missing"), KindNotFound},
		{Forbidden("denied"), KindForbidden},
		{Validation("bad input"), KindValidation},
		{Conflict("already done"), KindConflict},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.kind {
			t.Errorf("KindOf(%v) = %v, want %v", c.err, got, c.kind)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("load project: %w", NotFound("missing"))
	if KindOf(wrapped) != KindNotFound {
		t.Error("KindOf should unwrap nested errors")
	}
}

func TestErrorMessage(t *testing.T) {
	err := Validation("字段不能为空")
	if err.Error() != "字段不能为空" {
		t.Errorf("message = %q", err.Error())
	}
}

package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Fail(t *testing.T) {
	r := &Result{Name: "test"}
	err := errors.New("test error")

	result := r.Fail(KindMissingResource, "something failed", err)

	assert.Equal(t, StatusFail, result.Status)
	assert.Equal(t, KindMissingResource, result.Kind)
	assert.Equal(t, "something failed", result.Message)
	assert.Equal(t, err, result.Err)
}

func TestResult_Failf(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.Failf(KindInvalidValue, "value %d is invalid", 42)

	assert.Equal(t, StatusFail, result.Status)
	assert.Equal(t, "value 42 is invalid", result.Message)
	assert.EqualError(t, result.Err, "value 42 is invalid")
}

func TestResult_Warnf(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.Warnf(KindMissingResource, "%s not found", ".env.example")

	assert.Equal(t, StatusWarn, result.Status)
	assert.Equal(t, KindMissingResource, result.Kind)
	assert.Equal(t, ".env.example not found", result.Message)
	assert.NoError(t, result.Err)
}

func TestResult_Pass(t *testing.T) {
	r := &Result{Name: "test", Kind: KindInvalidValue, Err: errors.New("stale")}

	result := r.Pass("exists")

	assert.Equal(t, StatusPass, result.Status)
	assert.Empty(t, result.Kind)
	assert.NoError(t, result.Err)
	assert.Equal(t, "exists", result.Message)
}

func TestResult_AddDetail(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.AddDetail("first detail").AddDetailf("second %s", "detail")

	assert.Equal(t, []string{"first detail", "second detail"}, result.Details)
	assert.Same(t, r, result)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"not exist", os.ErrNotExist, KindMissingResource},
		{"wrapped not exist", fmt.Errorf("stat: %w", fs.ErrNotExist), KindMissingResource},
		{"path error", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, KindPermissionDenied},
		{"other", errors.New("I/O error"), KindInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

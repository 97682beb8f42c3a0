package core

import (
	"errors"
	"testing"
)

func TestDomainErrorPredicates(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		isNotFound      bool
		isStoreNotFound bool
		isInvalidInput  bool
	}{
		{
			name:            "store not found",
			err:             ErrStoreNotFound,
			isNotFound:      true,
			isStoreNotFound: true,
		},
		{
			name:           "empty corpus",
			err:            ErrEmptyCorpus,
			isInvalidInput: true,
		},
		{
			name:       "not found outside store module",
			err:        NewDomainError(ModuleFilter, ErrorCodeNotFound, "filter: gone"),
			isNotFound: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.isNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.isNotFound)
			}
			if got := IsStoreNotFound(tt.err); got != tt.isStoreNotFound {
				t.Errorf("IsStoreNotFound() = %v, want %v", got, tt.isStoreNotFound)
			}
			if got := IsInvalidInput(tt.err); got != tt.isInvalidInput {
				t.Errorf("IsInvalidInput() = %v, want %v", got, tt.isInvalidInput)
			}
		})
	}
}

func TestGetDomainError(t *testing.T) {
	if got := GetDomainError(errors.New("plain")); got != nil {
		t.Errorf("GetDomainError(plain) = %v, want nil", got)
	}
	domainErr := NewDomainError(ModuleVector, ErrorCodeInternalError, "vector: broken")
	if got := GetDomainError(domainErr); got != domainErr {
		t.Errorf("GetDomainError() = %v, want the original error", got)
	}
	if domainErr.Error() != "vector: broken" {
		t.Errorf("Error() = %q, want the message", domainErr.Error())
	}
}

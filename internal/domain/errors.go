package domain

import (
	"errors"
	"fmt"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Sentinel errors. The typed errors below unwrap to one of these.
var (
	ErrTaxonomyConflict  = errors.New("taxonomy conflict")
	ErrTaxonomyCycle     = errors.New("taxonomy cycle")
	ErrTaxonomySealed    = errors.New("taxonomy already built")
	ErrDuplicateContract = errors.New("duplicate contract")
	ErrUnknownContract   = errors.New("unknown contract")
	ErrNoContract        = errors.New("no contract found")
	ErrUnboundRole       = errors.New("unbound role")
	ErrMissingValue      = errors.New("missing value")
	ErrMissingOperation  = errors.New("missing operation")
	ErrInvalidOverride   = errors.New("invalid override")
)

// ConflictError reports two inherited checks sharing an ID that cannot be
// reconciled.
type ConflictError struct {
	Contract string
	Check    string
	First    m.Check
	Second   m.Check
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: check %s inherited as %s%s from %s and %s%s from %s",
		e.Contract, e.Check,
		e.First.ID(), e.First.Signature(), e.First.Origin,
		e.Second.ID(), e.Second.Signature(), e.Second.Origin)
}

func (e *ConflictError) Unwrap() error { return ErrTaxonomyConflict }

// UnknownContractError reports a contract name that cannot be resolved.
type UnknownContractError struct {
	Name string
	// Referrer is the contract or subject that named it.
	Referrer string
}

func (e *UnknownContractError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("unknown contract %q", e.Name)
	}

	return fmt.Sprintf("%s: unknown contract %q", e.Referrer, e.Name)
}

func (e *UnknownContractError) Unwrap() error { return ErrUnknownContract }

// NoContractError reports a subject no registration or structural rule matches.
type NoContractError struct {
	Subject string
}

func (e *NoContractError) Error() string {
	return fmt.Sprintf("no contract found for %s", e.Subject)
}

func (e *NoContractError) Unwrap() error { return ErrNoContract }

// UnboundRoleError reports a check parameter whose role has no generator.
type UnboundRoleError struct {
	Subject string
	Check   string
	Param   string
	Role    m.Role
}

func (e *UnboundRoleError) Error() string {
	return fmt.Sprintf("%s: check %s parameter %s has unbound role %s", e.Subject, e.Check, e.Param, e.Role)
}

func (e *UnboundRoleError) Unwrap() error { return ErrUnboundRole }

// MissingValueError reports a required constant the subject does not supply.
type MissingValueError struct {
	Subject  string
	Contract string
	Value    string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s: contract %s requires value %q", e.Subject, e.Contract, e.Value)
}

func (e *MissingValueError) Unwrap() error { return ErrMissingValue }

// MissingOperationError reports a required operation the subject does not supply.
type MissingOperationError struct {
	Subject  string
	Contract string
	Op       m.Op
}

func (e *MissingOperationError) Error() string {
	return fmt.Sprintf("%s: contract %s requires operation %s", e.Subject, e.Contract, e.Op)
}

func (e *MissingOperationError) Unwrap() error { return ErrMissingOperation }

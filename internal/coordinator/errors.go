package coordinator

import "fmt"

// DuplicateActionError rejects a second non-terminal action for the same
// (group, account) pair. The ledger would reject or double-charge it, so it
// is refused rather than queued.
type DuplicateActionError struct {
	GroupID uint64
	Account string
	Handle  string
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("account %s already has pending action %s for group %d", e.Account, e.Handle, e.GroupID)
}

// EligibilityError surfaces a business-rule refusal at submit time.
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("action not eligible: %s", e.Reason)
}

// ErrUnknownHandle reports a handle the coordinator is not tracking.
type ErrUnknownHandle struct {
	Handle string
}

func (e *ErrUnknownHandle) Error() string {
	return fmt.Sprintf("unknown action handle %s", e.Handle)
}

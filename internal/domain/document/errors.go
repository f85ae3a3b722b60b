package document

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNotAReceipt         = errors.New("claim status applies only to receipt documents")
	ErrInvalidClaimStatus  = errors.New("invalid claim status")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrClaimTransition     = errors.New("claim status transition not allowed")
)

package matching

import "errors"

var (
	// ErrUnauthorizedPrincipal signals a caller id that resolves to no member.
	ErrUnauthorizedPrincipal = errors.New("unauthorized principal")
	// ErrProjectNotOwned signals a client targeting another client's project.
	ErrProjectNotOwned = errors.New("project not owned by caller")
	// ErrInvalidWeights signals a weight configuration that breaks the
	// importance ordering or sign constraints.
	ErrInvalidWeights = errors.New("invalid matching weights")
	// ErrUnknownField signals a field that is not part of an index table.
	ErrUnknownField = errors.New("unknown index field")
)

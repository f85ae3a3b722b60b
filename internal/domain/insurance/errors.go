package insurance

import "errors"

var ErrPolicyNotFound = errors.New("insurance policy not found")

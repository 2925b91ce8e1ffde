package pricing

import "errors"

var ErrUnknownReference = errors.New("unknown material or venue")

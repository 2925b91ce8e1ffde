package warehouse

import "errors"

var ErrMaterialNotFound = errors.New("material not found")

package model

import "errors"

// ErrBinaryPayloadMismatch reports a binary-kind target whose payload does
// not match its declared kind. Kinds are validated when the graph is
// resolved, so hitting this during plan computation is an upstream contract
// violation and aborts the product.
var ErrBinaryPayloadMismatch = errors.New("binary target payload mismatches its declared kind")

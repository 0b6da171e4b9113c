// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "errors"

// ErrMalformedRecord is returned by New when counts, array lengths or edge
// endpoints are inconsistent.
var ErrMalformedRecord = errors.New("malformed metagraph record")

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gcl

import "errors"

// ErrInvalidArgument is returned when a coordinator is asked to perform
// an operation its current state makes meaningless, e.g. dropping a
// thread from an already-empty [Barrier].
var ErrInvalidArgument = errors.New("gcl: invalid argument")

// ErrLogic is returned when a precondition is violated in a way that
// reflects a bug in the caller rather than a runtime race, e.g.
// counting a [Latch] down past zero. Unlike the original C++ reference
// this library is translated from, gcl never panics or throws for this
// case: it returns ErrLogic so the caller can decide how to fail.
var ErrLogic = errors.New("gcl: logic error")

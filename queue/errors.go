// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrClosed is returned once a queue has been closed and, for pop-side
// operations, fully drained. It is the only error a blocking Push/Pop
// call can return.
var ErrClosed = errors.New("queue: closed")

// ErrFull is returned by TryPush when the queue currently has no free
// slot.
var ErrFull = errors.New("queue: full")

// ErrEmpty is returned by TryPop when the queue currently holds no
// element.
var ErrEmpty = errors.New("queue: empty")

// ErrBusy is returned by the lock-free implementation's TryPush/TryPop
// when a concurrent operation is contending for the same slot. It is
// advisory: the caller should retry, the same way [iox.ErrWouldBlock]
// callers retry on transient backpressure.
var ErrBusy = errors.New("queue: busy")

// ErrInvalidArgument is returned by constructors given a malformed
// configuration, e.g. a prefill slice longer than the requested
// capacity.
var ErrInvalidArgument = errors.New("queue: invalid argument")

// IsClosed reports whether err is, or wraps, ErrClosed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsBusy reports whether err is, or wraps, ErrBusy.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsNonFailure reports whether err is one of the transient, retryable
// outcomes (ErrFull, ErrEmpty, ErrBusy) rather than a terminal failure.
// Delegates the "is this a control-flow signal" question to the same
// classification [iox.IsNonFailure] uses for ErrWouldBlock, since all
// four mean the same thing to a caller: try again.
func IsNonFailure(err error) bool {
	return errors.Is(err, ErrFull) || errors.Is(err, ErrEmpty) || errors.Is(err, ErrBusy) || iox.IsNonFailure(err)
}

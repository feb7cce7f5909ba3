// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avl

import "errors"

// ErrCapacityExceeded is returned by Insert when an arena store is full and
// cannot grow. The tree is left exactly as it was before the call.
var ErrCapacityExceeded = errors.New("avl: node store capacity exceeded")

// Invariant violations reported by Validate.
var (
	ErrOrderViolation   = errors.New("avl: key ordering violated")
	ErrBalanceViolation = errors.New("avl: balance factor out of range")
	ErrHeightViolation  = errors.New("avl: cached height incorrect")
	ErrSharedNode       = errors.New("avl: node reachable more than once")
	ErrSizeMismatch     = errors.New("avl: reachable nodes differ from live nodes")
)
